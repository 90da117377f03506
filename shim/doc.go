// Package shim implements the boundary marshaler between a guest script engine
// and the host runtime.
//
// The guest can only pass machine words. Every Marshaler method takes plain
// uint64 addresses, lengths and descriptor values and performs the same three
// steps:
//
//  1. reinterpret (address, length) pairs as byte views (internal/rawspan);
//  2. wrap the views and integers in the host's descriptor types
//     (entities.Buffer, entities.BufferMut, entities.RegisterID, ...);
//  3. call the matching ports.Host operation and translate its result back
//     into integers.
//
// # Safety
//
// Addresses are trusted. Passing an address/length pair that is not mapped,
// not writable when the operation writes, or that overlaps another span of
// the same call incompatibly is undefined behaviour. Text parameters (log
// messages, event kinds) are reinterpreted as UTF-8 without validation;
// malformed text is a caller contract violation.
//
// # Results
//
// Boolean results are returned as uint32 through BoolToU32, which keeps any
// raw host value other than false/true untouched. Magnitudes are returned
// unmodified. The marshaler never logs, retries or recovers.
package shim
