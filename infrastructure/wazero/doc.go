// Package wazero serves the guest's host imports from a wazero host module.
//
// The module (named "env" by default) exports the same functions a guest
// built against the shim imports. Every buffer argument is an i64 pointer to
// a 16-byte descriptor in guest memory:
//
//	[ptr u64 LE][len u64 LE]
//
// Events are a 32-byte pair of descriptors {kind, data}. Boolean results are
// i32 and magnitudes are i64.
//
// The environment serving a call is taken from the call context:
//
//	err := wazero.RegisterWithRuntime(ctx, runtime)
//	...
//	rt := hostfuncs.NewRuntime(hostfuncs.WithInput(input))
//	_, err = fn.Call(wazero.WithHost(ctx, rt))
//
// A descriptor or span outside guest memory traps the guest with a
// *errors.MemoryError; it is never reported as a boolean.
package wazero
