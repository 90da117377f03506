//go:build wasip1 || tinygo

package wasm

// Every pointer argument is the address of a descriptor in guest memory.

//go:wasmimport env log_utf8
func host_log_utf8(message uint64)

//go:wasmimport env panic_utf8
func host_panic_utf8(message, location uint64)

//go:wasmimport env input
func host_input(register uint64)

//go:wasmimport env value_return
func host_value_return(value uint64)

//go:wasmimport env register_len
func host_register_len(register uint64) uint64

//go:wasmimport env read_register
func host_read_register(register, buffer uint64) uint32

//go:wasmimport env context_id
func host_context_id(register uint64)

//go:wasmimport env executor_id
func host_executor_id(register uint64)

//go:wasmimport env emit
func host_emit(event uint64)

//go:wasmimport env emit_with_handler
func host_emit_with_handler(event, handler uint64)

//go:wasmimport env storage_read
func host_storage_read(key, register uint64) uint32

//go:wasmimport env storage_write
func host_storage_write(key, value, register uint64) uint32

//go:wasmimport env storage_remove
func host_storage_remove(key, register uint64) uint32

//go:wasmimport env commit
func host_commit(root, artifact uint64)

//go:wasmimport env time_now
func host_time_now(buffer uint64)

//go:wasmimport env random_bytes
func host_random_bytes(buffer uint64)

//go:wasmimport env ed25519_verify
func host_ed25519_verify(signature, publicKey, message uint64) uint32

//go:wasmimport env blob_create
func host_blob_create() uint64

//go:wasmimport env blob_open
func host_blob_open(id uint64) uint64

//go:wasmimport env blob_read
func host_blob_read(fd, buffer uint64) uint64

//go:wasmimport env blob_write
func host_blob_write(fd, data uint64) uint64

//go:wasmimport env blob_close
func host_blob_close(fd, buffer uint64) uint32
