// Command shim is the guest-side boundary shim, built as a wasip1 reactor:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o shim.wasm ./cmd/shim
//
// It exports one shim_* function per host operation. Each takes raw
// (pointer, length) pairs into its own linear memory and forwards them to the
// host's "env" imports.
package main

func main() {}
