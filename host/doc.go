// Package host runs guest modules against the in-process host runtime.
//
// It owns the wazero runtime, instantiates WASI preview1 and the "env" host
// module once, and serves each guest call with a fresh hostfuncs.Runtime that
// shares the executor's storage and blob backends:
//
//	e, err := host.NewExecutor(ctx, host.WithLogger(logger))
//	inst, err := e.LoadModule(ctx, wasmBytes)
//	outcome, err := inst.Call(ctx, "set", []byte(`{"key":"k"}`))
package host
