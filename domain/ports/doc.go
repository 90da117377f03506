// Package ports defines the host interface the shim forwards to and the
// storage backends a host implementation depends on.
// These ports enable dependency inversion: the marshaler depends on Host, and
// both the in-process runtime and the wasm import bindings implement it.
package ports
