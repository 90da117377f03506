package hostfuncs

import (
	"crypto/rand"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"github.com/calimero-network/calimero-sdk-js/domain/ports"
	"github.com/calimero-network/calimero-sdk-js/infrastructure/blobstore"
	"github.com/calimero-network/calimero-sdk-js/infrastructure/kvstore"
	"go.uber.org/zap"
)

// Compile-time interface compliance checks
var (
	_ ports.Host        = (*Runtime)(nil)
	_ ports.Environment = (*Runtime)(nil)
)

// runtimeConfig holds configuration for a Runtime.
type runtimeConfig struct {
	store           ports.KVStore
	blobs           ports.BlobStore
	logger          *zap.Logger
	clock           func() time.Time
	random          io.Reader
	input           []byte
	contextID       entities.ContextID
	executorID      entities.ExecutorID
	maxRegisterSize int
	maxBlobSize     int
}

func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{
		clock:           time.Now,
		random:          rand.Reader,
		maxRegisterSize: DefaultMaxRegisterSize,
		maxBlobSize:     DefaultMaxBlobSize,
	}
}

// Option configures a Runtime.
type Option func(*runtimeConfig)

// WithStore sets the storage backend. Default is a fresh kvstore.Memory.
func WithStore(s ports.KVStore) Option {
	return func(c *runtimeConfig) {
		c.store = s
	}
}

// WithBlobStore sets the blob backend. Default is a fresh blobstore.Memory.
func WithBlobStore(s ports.BlobStore) Option {
	return func(c *runtimeConfig) {
		c.blobs = s
	}
}

// WithLogger sets the logger guest log lines and host warnings go to.
func WithLogger(l *zap.Logger) Option {
	return func(c *runtimeConfig) {
		c.logger = l
	}
}

// WithClock overrides the time source used by TimeNow.
func WithClock(clock func() time.Time) Option {
	return func(c *runtimeConfig) {
		c.clock = clock
	}
}

// WithRandom overrides the source used by RandomBytes.
func WithRandom(src io.Reader) Option {
	return func(c *runtimeConfig) {
		c.random = src
	}
}

// WithContextID sets the id written by ContextID.
func WithContextID(id entities.ContextID) Option {
	return func(c *runtimeConfig) {
		c.contextID = id
	}
}

// WithExecutorID sets the id written by ExecutorID.
func WithExecutorID(id entities.ExecutorID) Option {
	return func(c *runtimeConfig) {
		c.executorID = id
	}
}

// WithInput sets the call input delivered by Input.
func WithInput(input []byte) Option {
	return func(c *runtimeConfig) {
		c.input = input
	}
}

// WithMaxRegisterSize limits the size of data placed in a register.
func WithMaxRegisterSize(n int) Option {
	return func(c *runtimeConfig) {
		c.maxRegisterSize = n
	}
}

// WithMaxBlobSize limits the size of a single blob.
func WithMaxBlobSize(n int) Option {
	return func(c *runtimeConfig) {
		c.maxBlobSize = n
	}
}

// Runtime is an in-process host. Registers, open blob handles and the outcome
// are scoped to one Runtime; storage and blob backends may be shared between
// runtimes.
//
// A Runtime is safe for concurrent use, but guest calls are expected to be
// served one at a time.
type Runtime struct {
	mu        sync.Mutex
	config    runtimeConfig
	logger    *zap.Logger
	registers map[entities.RegisterID][]byte
	handles   map[entities.BlobFd]*blobHandle
	nextFd    entities.BlobFd
	outcome   entities.Outcome
}

// NewRuntime creates a Runtime with the given options.
func NewRuntime(opts ...Option) *Runtime {
	cfg := defaultRuntimeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.store == nil {
		cfg.store = kvstore.NewMemory()
	}
	if cfg.blobs == nil {
		cfg.blobs = blobstore.NewMemory()
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}

	return &Runtime{
		config:    cfg,
		logger:    cfg.logger,
		registers: make(map[entities.RegisterID][]byte),
		handles:   make(map[entities.BlobFd]*blobHandle),
		nextFd:    1,
		outcome:   entities.Outcome{StartedAt: cfg.clock()},
	}
}

// Store returns the storage backend.
func (r *Runtime) Store() ports.KVStore {
	return r.config.store
}

// BlobStore returns the blob backend.
func (r *Runtime) BlobStore() ports.BlobStore {
	return r.config.blobs
}

// Outcome returns a snapshot of what the guest produced so far.
func (r *Runtime) Outcome() entities.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.outcome
	out.Logs = append([]string(nil), r.outcome.Logs...)
	out.Events = append([]entities.EmittedEvent(nil), r.outcome.Events...)
	out.Commits = append([]entities.Commit(nil), r.outcome.Commits...)
	return out
}

// ===========================
// Logging
// ===========================

// LogUTF8 records a guest log line.
func (r *Runtime) LogUTF8(message string) {
	line := strings.Clone(message)

	r.mu.Lock()
	r.outcome.Logs = append(r.outcome.Logs, line)
	r.mu.Unlock()

	r.logger.Info("guest log", zap.String("message", line))
}

// ===========================
// Lifecycle
// ===========================

// Input places the call input into register.
func (r *Runtime) Input(register entities.RegisterID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setRegister(register, r.config.input)
}

// ValueReturn records the value the guest hands back. A later call replaces
// an earlier one.
func (r *Runtime) ValueReturn(value entities.Buffer, failed bool) {
	returned := owned(value)

	r.mu.Lock()
	r.outcome.Returned = returned
	r.outcome.ReturnedError = failed
	r.mu.Unlock()
}

// PanicUTF8 records a guest abort.
func (r *Runtime) PanicUTF8(message, location string) {
	p := &entities.GuestPanicError{
		Message:  strings.Clone(message),
		Location: strings.Clone(location),
	}

	r.mu.Lock()
	r.outcome.Panic = p
	r.mu.Unlock()

	r.logger.Warn("guest panicked", zap.String("message", p.Message), zap.String("location", p.Location))
}
