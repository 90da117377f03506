package wazero

import (
	"context"
	"fmt"
	"sort"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	sdkErrors "github.com/calimero-network/calimero-sdk-js/domain/errors"
	"github.com/calimero-network/calimero-sdk-js/domain/ports"
	"github.com/calimero-network/calimero-sdk-js/hostfuncs"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// DefaultModuleName is the import module guests link against.
const DefaultModuleName = "env"

// DefaultMaxBufferSize limits a single span read from guest memory (16MB).
const DefaultMaxBufferSize uint32 = 16 * 1024 * 1024

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	// ModuleName is the host module name (default: "env").
	ModuleName string

	// MaxBufferSize limits the length of any span taken from guest memory.
	MaxBufferSize uint32

	// DefaultHost serves calls whose context carries no environment.
	DefaultHost ports.Environment

	// Logger receives trap and dispatch diagnostics.
	Logger *zap.Logger

	// Middleware wraps every host function, outermost first.
	Middleware []Middleware

	// CustomHandlers allows adding imports beyond the standard set.
	CustomHandlers []CustomHandler
}

// CustomHandler represents an additional host function.
type CustomHandler struct {
	// Name is the exported function name.
	Name string

	// Handler is the wazero GoModuleFunc implementation.
	Handler api.GoModuleFunc

	// ParamTypes are the WASM parameter types.
	ParamTypes []api.ValueType

	// ResultTypes are the WASM result types.
	ResultTypes []api.ValueType
}

// Middleware wraps the host function registered under name.
type Middleware func(name string, next api.GoModuleFunc) api.GoModuleFunc

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModuleName sets the host module name (default: "env").
func WithModuleName(name string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModuleName = name
	}
}

// WithMaxBufferSize sets the maximum span length read from guest memory.
func WithMaxBufferSize(size uint32) AdapterOption {
	return func(c *AdapterConfig) {
		c.MaxBufferSize = size
	}
}

// WithDefaultHost sets the environment used when the call context has none.
func WithDefaultHost(env ports.Environment) AdapterOption {
	return func(c *AdapterConfig) {
		c.DefaultHost = env
	}
}

// WithLogger sets the adapter logger. Default is hostfuncs.Logger().
func WithLogger(l *zap.Logger) AdapterOption {
	return func(c *AdapterConfig) {
		c.Logger = l
	}
}

// WithMiddleware adds a middleware around every host function.
func WithMiddleware(m Middleware) AdapterOption {
	return func(c *AdapterConfig) {
		c.Middleware = append(c.Middleware, m)
	}
}

// WithCustomHandler adds a custom wazero handler.
func WithCustomHandler(h CustomHandler) AdapterOption {
	return func(c *AdapterConfig) {
		c.CustomHandlers = append(c.CustomHandlers, h)
	}
}

// defaultAdapterConfig returns the default adapter configuration.
func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		ModuleName:    DefaultModuleName,
		MaxBufferSize: DefaultMaxBufferSize,
	}
}

// hostCall is the body of one host function, run against a resolved
// environment and the caller's memory.
type hostCall func(env ports.Environment, mem *guestMemory, stack []uint64)

type hostFunction struct {
	name    string
	params  int
	results []api.ValueType
	call    hostCall
}

var (
	i32 = []api.ValueType{api.ValueTypeI32}
	i64 = []api.ValueType{api.ValueTypeI64}
)

func boolResult(stack []uint64, b entities.Bool) {
	stack[0] = api.EncodeU32(b.Raw())
}

// hostFunctions is the import set a guest may link against.
var hostFunctions = []hostFunction{
	// Lifecycle
	{"input", 1, nil, func(env ports.Environment, _ *guestMemory, s []uint64) {
		env.Input(entities.RegisterID(s[0]))
	}},
	{"value_return", 1, nil, func(env ports.Environment, mem *guestMemory, s []uint64) {
		value, failed := mem.valueReturn(s[0])
		env.ValueReturn(value, failed)
	}},
	{"panic_utf8", 2, nil, func(env ports.Environment, mem *guestMemory, s []uint64) {
		p := &entities.GuestPanicError{Message: mem.text(s[0]), Location: mem.location(s[1])}
		env.PanicUTF8(p.Message, p.Location)
		panic(p)
	}},

	// Logging
	{"log_utf8", 1, nil, func(env ports.Environment, mem *guestMemory, s []uint64) {
		env.LogUTF8(mem.text(s[0]))
	}},

	// Registers
	{"register_len", 1, i64, func(env ports.Environment, _ *guestMemory, s []uint64) {
		s[0] = env.RegisterLen(entities.RegisterID(s[0])).AsUint64()
	}},
	{"read_register", 2, i32, func(env ports.Environment, mem *guestMemory, s []uint64) {
		boolResult(s, env.ReadRegister(entities.RegisterID(s[0]), mem.bufferMut(s[1])))
	}},

	// Context
	{"context_id", 1, nil, func(env ports.Environment, _ *guestMemory, s []uint64) {
		env.ContextID(entities.RegisterID(s[0]))
	}},
	{"executor_id", 1, nil, func(env ports.Environment, _ *guestMemory, s []uint64) {
		env.ExecutorID(entities.RegisterID(s[0]))
	}},

	// Events
	{"emit", 1, nil, func(env ports.Environment, mem *guestMemory, s []uint64) {
		env.Emit(mem.event(s[0]))
	}},
	{"emit_with_handler", 2, nil, func(env ports.Environment, mem *guestMemory, s []uint64) {
		env.EmitWithHandler(mem.event(s[0]), mem.buffer(s[1]))
	}},

	// Storage
	{"storage_read", 2, i32, func(env ports.Environment, mem *guestMemory, s []uint64) {
		boolResult(s, env.StorageRead(mem.buffer(s[0]), entities.RegisterID(s[1])))
	}},
	{"storage_write", 3, i32, func(env ports.Environment, mem *guestMemory, s []uint64) {
		boolResult(s, env.StorageWrite(mem.buffer(s[0]), mem.buffer(s[1]), entities.RegisterID(s[2])))
	}},
	{"storage_remove", 2, i32, func(env ports.Environment, mem *guestMemory, s []uint64) {
		boolResult(s, env.StorageRemove(mem.buffer(s[0]), entities.RegisterID(s[1])))
	}},

	// Delta/Commit
	{"commit", 2, nil, func(env ports.Environment, mem *guestMemory, s []uint64) {
		env.Commit(mem.buffer(s[0]), mem.buffer(s[1]))
	}},

	// Time and crypto
	{"time_now", 1, nil, func(env ports.Environment, mem *guestMemory, s []uint64) {
		env.TimeNow(mem.bufferMut(s[0]))
	}},
	{"random_bytes", 1, nil, func(env ports.Environment, mem *guestMemory, s []uint64) {
		env.RandomBytes(mem.bufferMut(s[0]))
	}},
	{"ed25519_verify", 3, i32, func(env ports.Environment, mem *guestMemory, s []uint64) {
		boolResult(s, env.Ed25519Verify(mem.buffer(s[0]), mem.buffer(s[1]), mem.buffer(s[2])))
	}},

	// Blobs
	{"blob_create", 0, i64, func(env ports.Environment, _ *guestMemory, s []uint64) {
		s[0] = uint64(env.BlobCreate())
	}},
	{"blob_open", 1, i64, func(env ports.Environment, mem *guestMemory, s []uint64) {
		s[0] = uint64(env.BlobOpen(mem.buffer(s[0])))
	}},
	{"blob_read", 2, i64, func(env ports.Environment, mem *guestMemory, s []uint64) {
		s[0] = env.BlobRead(entities.BlobFd(s[0]), mem.bufferMut(s[1])).AsUint64()
	}},
	{"blob_write", 2, i64, func(env ports.Environment, mem *guestMemory, s []uint64) {
		s[0] = env.BlobWrite(entities.BlobFd(s[0]), mem.buffer(s[1])).AsUint64()
	}},
	{"blob_close", 2, i32, func(env ports.Environment, mem *guestMemory, s []uint64) {
		boolResult(s, env.BlobClose(entities.BlobFd(s[0]), mem.bufferMut(s[1])))
	}},
}

// Functions returns the sorted names of the standard host functions.
func Functions() []string {
	names := make([]string, 0, len(hostFunctions))
	for _, f := range hostFunctions {
		names = append(names, f.name)
	}
	sort.Strings(names)
	return names
}

// RegisterWithRuntime instantiates the host module in runtime. The returned
// names are every function the module exports, custom handlers included.
//
// Example:
//
//	names, err := wazero.RegisterWithRuntime(ctx, runtime,
//	    wazero.WithDefaultHost(hostfuncs.NewRuntime()),
//	)
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, opts ...AdapterOption) ([]string, error) {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = hostfuncs.Logger()
	}

	builder := runtime.NewHostModuleBuilder(cfg.ModuleName)
	names := make([]string, 0, len(hostFunctions)+len(cfg.CustomHandlers))

	for _, f := range hostFunctions {
		params := make([]api.ValueType, f.params)
		for i := range params {
			params[i] = api.ValueTypeI64
		}
		builder.NewFunctionBuilder().
			WithGoModuleFunction(wrap(cfg, f.name, dispatch(cfg, f)), params, f.results).
			WithName(f.name).
			Export(f.name)
		names = append(names, f.name)
	}

	for _, ch := range cfg.CustomHandlers {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(wrap(cfg, ch.Name, ch.Handler), ch.ParamTypes, ch.ResultTypes).
			Export(ch.Name)
		names = append(names, ch.Name)
	}

	if _, err := builder.Instantiate(ctx); err != nil {
		return nil, fmt.Errorf("instantiate host module %q: %w", cfg.ModuleName, err)
	}
	sort.Strings(names)
	return names, nil
}

func wrap(cfg AdapterConfig, name string, fn api.GoModuleFunc) api.GoModuleFunc {
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		fn = cfg.Middleware[i](name, fn)
	}
	return fn
}

// dispatch binds a host function to the environment serving the call.
func dispatch(cfg AdapterConfig, f hostFunction) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		env, ok := HostFromContext(ctx)
		if !ok {
			env = cfg.DefaultHost
		}
		if env == nil {
			cfg.Logger.Error("host call without environment", zap.String("function", f.name))
			panic(fmt.Errorf("%s: %w", f.name, sdkErrors.ErrNoHost))
		}

		var mem *guestMemory
		if f.needsMemory() {
			mem = newGuestMemory(mod, f.name, cfg.MaxBufferSize)
		}
		f.call(env, mem, stack)
	}
}

// needsMemory reports whether any argument of f is a guest pointer.
func (f hostFunction) needsMemory() bool {
	switch f.name {
	case "input", "register_len", "context_id", "executor_id", "blob_create":
		return false
	}
	return true
}
