// Package rawspan is the unsafe boundary of the module: the only place where
// caller supplied integers are reinterpreted as memory.
//
// # Contract
//
// Every function here trusts its arguments completely. For a call with
// (addr, length) the caller guarantees that:
//
//   - addr is non-zero unless length is zero;
//   - all length bytes starting at addr are mapped and readable, and writable
//     for ViewMut, for the whole duration of the call that uses the view;
//   - within one invocation no read view and write view are built over
//     intersecting memory.
//
// Violating any of these is undefined behaviour at the process level. It is
// not reported and cannot be recovered from. No bounds or alias checking is
// performed, because the lengths cannot be verified against real memory
// bounds without the caller's cooperation.
//
// A mutable view over memory derived from a string constant, including a
// []byte conversion of a literal that is never written directly, may land in
// read-only data. Writing through it is the same undefined behaviour.
//
// Views never outlive the call they were built for: callees that need the
// bytes later must copy them.
package rawspan

import "unsafe"

// View returns a read-only view of length bytes starting at addr.
// The returned slice must not be written to.
func View(addr, length uint64) []byte {
	if length == 0 {
		return nil
	}
	//nolint:gosec // G103: reinterpreting caller memory is the purpose of this package
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), uintptr(length))
}

// ViewMut returns a writable view of length bytes starting at addr.
func ViewMut(addr, length uint64) []byte {
	if length == 0 {
		return nil
	}
	//nolint:gosec // G103: reinterpreting caller memory is the purpose of this package
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), uintptr(length))
}

// String returns the bytes at addr as a string without copying and without
// UTF-8 validation. The memory must stay unmodified while the string is in use.
func String(addr, length uint64) string {
	if length == 0 {
		return ""
	}
	//nolint:gosec // G103: reinterpreting caller memory is the purpose of this package
	return unsafe.String((*byte)(unsafe.Pointer(uintptr(addr))), uintptr(length))
}

// Addr returns the address of the first byte of b, or 0 for an empty slice.
// The caller must keep b alive for as long as the address is in use.
func Addr(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	return uint64(uintptr(unsafe.Pointer(unsafe.SliceData(b))))
}

// AddrOf returns the address of *p. The caller must keep p alive for as long
// as the address is in use.
func AddrOf[T any](p *T) uint64 {
	return uint64(uintptr(unsafe.Pointer(p)))
}

// StringAddr returns the address of the first byte of s, or 0 for an empty
// string. The bytes must not be written through the address.
func StringAddr(s string) uint64 {
	if len(s) == 0 {
		return 0
	}
	return uint64(uintptr(unsafe.Pointer(unsafe.StringData(s))))
}
