package host

import (
	"github.com/calimero-network/calimero-sdk-js/domain/ports"
	"github.com/calimero-network/calimero-sdk-js/hostfuncs"
	hostmodule "github.com/calimero-network/calimero-sdk-js/infrastructure/wazero"
	"go.uber.org/zap"
)

// executorConfig holds configuration for an Executor.
type executorConfig struct {
	store       ports.KVStore
	blobs       ports.BlobStore
	logger      *zap.Logger
	moduleName  string
	runtimeOpts []hostfuncs.Option
	adapterOpts []hostmodule.AdapterOption
}

// Option defines a functional option for configuring the Executor.
type Option func(*executorConfig)

// WithStore sets the storage backend shared by every call.
func WithStore(s ports.KVStore) Option {
	return func(c *executorConfig) {
		c.store = s
	}
}

// WithBlobStore sets the blob backend shared by every call.
func WithBlobStore(s ports.BlobStore) Option {
	return func(c *executorConfig) {
		c.blobs = s
	}
}

// WithLogger sets the logger for the executor and every call runtime.
func WithLogger(l *zap.Logger) Option {
	return func(c *executorConfig) {
		c.logger = l
	}
}

// WithModuleName sets the import module name guests link against.
func WithModuleName(name string) Option {
	return func(c *executorConfig) {
		c.moduleName = name
	}
}

// WithRuntimeOptions adds options applied to every call runtime.
func WithRuntimeOptions(opts ...hostfuncs.Option) Option {
	return func(c *executorConfig) {
		c.runtimeOpts = append(c.runtimeOpts, opts...)
	}
}

// WithAdapterOptions adds options for the host module.
func WithAdapterOptions(opts ...hostmodule.AdapterOption) Option {
	return func(c *executorConfig) {
		c.adapterOpts = append(c.adapterOpts, opts...)
	}
}
