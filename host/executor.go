package host

import (
	"context"
	stdErrors "errors"
	"fmt"
	"sort"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"github.com/calimero-network/calimero-sdk-js/domain/errors"
	"github.com/calimero-network/calimero-sdk-js/hostfuncs"
	"github.com/calimero-network/calimero-sdk-js/infrastructure/blobstore"
	"github.com/calimero-network/calimero-sdk-js/infrastructure/kvstore"
	hostmodule "github.com/calimero-network/calimero-sdk-js/infrastructure/wazero"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
)

// ErrExportNotFound is returned when a called method is not exported.
var ErrExportNotFound = stdErrors.New("export not found")

// Executor manages the wazero runtime guests are loaded into.
type Executor struct {
	runtime  wazero.Runtime
	config   executorConfig
	provided map[string]struct{}
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	cfg := executorConfig{moduleName: hostmodule.DefaultModuleName}
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
		cfg.logger = hostfuncs.Logger()
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	adapterOpts := append([]hostmodule.AdapterOption{
		hostmodule.WithModuleName(cfg.moduleName),
		hostmodule.WithLogger(cfg.logger),
	}, cfg.adapterOpts...)

	names, err := hostmodule.RegisterWithRuntime(ctx, rt, adapterOpts...)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	provided := make(map[string]struct{}, len(names))
	for _, name := range names {
		provided[name] = struct{}{}
	}

	return &Executor{runtime: rt, config: cfg, provided: provided}, nil
}

// Close releases resources held by the executor.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// newRuntime builds the host serving one call.
func (e *Executor) newRuntime(extra ...hostfuncs.Option) *hostfuncs.Runtime {
	opts := append([]hostfuncs.Option{
		hostfuncs.WithStore(e.config.store),
		hostfuncs.WithBlobStore(e.config.blobs),
		hostfuncs.WithLogger(e.config.logger),
	}, e.config.runtimeOpts...)
	return hostfuncs.NewRuntime(append(opts, extra...)...)
}

// Instance is an instantiated guest module.
type Instance struct {
	executor *Executor
	module   api.Module
}

// LoadModule compiles and instantiates a guest. Guests importing host
// functions the executor does not provide are rejected with an
// *errors.ImportError before instantiation. An exported _initialize is run
// once, with its own call runtime.
func (e *Executor) LoadModule(ctx context.Context, wasmBytes []byte) (*Instance, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}

	if err := e.checkImports(compiled); err != nil {
		_ = compiled.Close(ctx)
		return nil, err
	}

	mod, err := e.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithStartFunctions())
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		rt := e.newRuntime()
		if _, err := init.Call(hostmodule.WithHost(ctx, rt)); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	e.config.logger.Debug("guest loaded", zap.Int("exports", len(mod.ExportedFunctionDefinitions())))
	return &Instance{executor: e, module: mod}, nil
}

func (e *Executor) checkImports(compiled wazero.CompiledModule) error {
	var missing []string
	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		if module != e.config.moduleName {
			continue
		}
		if _, ok := e.provided[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &errors.ImportError{Module: e.config.moduleName, Missing: missing}
}

// Close releases the guest module.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}

// Call runs the zero-argument export method with input available through the
// input import. The outcome is returned even when the call fails; a guest
// abort through panic_utf8 is reported as *entities.GuestPanicError.
func (i *Instance) Call(ctx context.Context, method string, input []byte) (entities.Outcome, error) {
	fn := i.module.ExportedFunction(method)
	if fn == nil {
		return entities.Outcome{}, fmt.Errorf("%q: %w", method, ErrExportNotFound)
	}
	if n := len(fn.Definition().ParamTypes()); n != 0 {
		return entities.Outcome{}, fmt.Errorf("method %q takes %d parameters, want none", method, n)
	}

	rt := i.executor.newRuntime(hostfuncs.WithInput(input))
	_, err := fn.Call(hostmodule.WithHost(ctx, rt))
	outcome := rt.Outcome()
	if err == nil {
		return outcome, nil
	}

	var panicErr *entities.GuestPanicError
	if stdErrors.As(err, &panicErr) {
		return outcome, panicErr
	}
	return outcome, fmt.Errorf("call %q: %w", method, err)
}
