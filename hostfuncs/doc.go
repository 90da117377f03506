// Package hostfuncs provides a pure Go implementation of the host interface
// the shim forwards to: registers, storage, identity, events, commits, time
// and blobs, plus the call lifecycle (input, value_return, panic_utf8).
//
// The implementation has NO WASM runtime dependencies. It can back the
// in-process shim.Marshaler directly, or be exposed to guests by the wazero
// adapter in infrastructure/wazero.
package hostfuncs
