//go:build wasip1

package main

import (
	"github.com/calimero-network/calimero-sdk-js/infrastructure/wasm"
	"github.com/calimero-network/calimero-sdk-js/internal/pinned"
	_ "github.com/calimero-network/calimero-sdk-js/log" // route slog through log_utf8
	"github.com/calimero-network/calimero-sdk-js/shim"
)

var (
	marshaler = shim.New(wasm.NewImportHost())
	arena     = pinned.NewArena(pinned.DefaultLimit)
)

// ===========================
// Memory
// ===========================

//go:wasmexport shim_alloc
func shimAlloc(size uint64) uint64 {
	ptr, err := arena.Alloc(size)
	if err != nil {
		panic(err)
	}
	return ptr
}

//go:wasmexport shim_free
func shimFree(ptr uint64) {
	arena.Free(ptr)
}

// ===========================
// Logging
// ===========================

//go:wasmexport shim_log_utf8
func shimLogUTF8(ptr, length uint64) {
	marshaler.LogUTF8(ptr, length)
}

// ===========================
// Storage
// ===========================

//go:wasmexport shim_storage_read
func shimStorageRead(keyPtr, keyLen, registerID uint64) uint32 {
	return marshaler.StorageRead(keyPtr, keyLen, registerID)
}

//go:wasmexport shim_storage_write
func shimStorageWrite(keyPtr, keyLen, valuePtr, valueLen, registerID uint64) uint32 {
	return marshaler.StorageWrite(keyPtr, keyLen, valuePtr, valueLen, registerID)
}

//go:wasmexport shim_storage_remove
func shimStorageRemove(keyPtr, keyLen, registerID uint64) uint32 {
	return marshaler.StorageRemove(keyPtr, keyLen, registerID)
}

// ===========================
// Context
// ===========================

//go:wasmexport shim_context_id
func shimContextID(registerID uint64) {
	marshaler.ContextID(registerID)
}

//go:wasmexport shim_executor_id
func shimExecutorID(registerID uint64) {
	marshaler.ExecutorID(registerID)
}

// ===========================
// Registers
// ===========================

//go:wasmexport shim_register_len
func shimRegisterLen(registerID uint64) uint64 {
	return marshaler.RegisterLen(registerID)
}

//go:wasmexport shim_read_register
func shimReadRegister(registerID, bufPtr, bufLen uint64) uint32 {
	return marshaler.ReadRegister(registerID, bufPtr, bufLen)
}

// ===========================
// Events
// ===========================

//go:wasmexport shim_emit
func shimEmit(kindPtr, kindLen, dataPtr, dataLen uint64) {
	marshaler.Emit(kindPtr, kindLen, dataPtr, dataLen)
}

//go:wasmexport shim_emit_with_handler
func shimEmitWithHandler(kindPtr, kindLen, dataPtr, dataLen, handlerPtr, handlerLen uint64) {
	marshaler.EmitWithHandler(kindPtr, kindLen, dataPtr, dataLen, handlerPtr, handlerLen)
}

// ===========================
// Delta/Commit
// ===========================

//go:wasmexport shim_commit
func shimCommit(rootPtr, rootLen, artifactPtr, artifactLen uint64) {
	marshaler.Commit(rootPtr, rootLen, artifactPtr, artifactLen)
}

// ===========================
// Time
// ===========================

//go:wasmexport shim_time_now
func shimTimeNow(bufPtr, bufLen uint64) {
	marshaler.TimeNow(bufPtr, bufLen)
}

// ===========================
// Blobs
// ===========================

//go:wasmexport shim_blob_create
func shimBlobCreate() uint64 {
	return marshaler.BlobCreate()
}

//go:wasmexport shim_blob_open
func shimBlobOpen(blobIDPtr, blobIDLen uint64) uint64 {
	return marshaler.BlobOpen(blobIDPtr, blobIDLen)
}

//go:wasmexport shim_blob_read
func shimBlobRead(fd, bufPtr, bufLen uint64) uint64 {
	return marshaler.BlobRead(fd, bufPtr, bufLen)
}

//go:wasmexport shim_blob_write
func shimBlobWrite(fd, dataPtr, dataLen uint64) uint64 {
	return marshaler.BlobWrite(fd, dataPtr, dataLen)
}

//go:wasmexport shim_blob_close
func shimBlobClose(fd, bufPtr, bufLen uint64) uint32 {
	return marshaler.BlobClose(fd, bufPtr, bufLen)
}
