//go:build wasip1 || tinygo

package wasm

import (
	"runtime"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"github.com/calimero-network/calimero-sdk-js/domain/ports"
	"github.com/calimero-network/calimero-sdk-js/internal/rawspan"
)

// Compile-time interface compliance check
var _ ports.Environment = (*ImportHost)(nil)

// ImportHost implements ports.Environment over the host's "env" imports.
// Descriptors live on the stack and are kept alive, together with the bytes
// they describe, until each import call returns.
type ImportHost struct{}

// NewImportHost returns the host bound to the module's imports.
func NewImportHost() *ImportHost {
	return &ImportHost{}
}

func (h *ImportHost) LogUTF8(message string) {
	d := describeString(message)
	host_log_utf8(rawspan.AddrOf(&d))
	runtime.KeepAlive(&d)
	runtime.KeepAlive(message)
}

func (h *ImportHost) Input(register entities.RegisterID) {
	host_input(uint64(register))
}

func (h *ImportHost) ValueReturn(value entities.Buffer, failed bool) {
	r := valueReturn{value: describeBuffer(value)}
	if failed {
		r.discriminant = 1
	}
	host_value_return(rawspan.AddrOf(&r))
	runtime.KeepAlive(&r)
	runtime.KeepAlive(value)
}

func (h *ImportHost) PanicUTF8(message, file string) {
	m := describeString(message)
	loc := location{file: describeString(file)}
	host_panic_utf8(rawspan.AddrOf(&m), rawspan.AddrOf(&loc))
	runtime.KeepAlive(&m)
	runtime.KeepAlive(&loc)
	runtime.KeepAlive(message)
	runtime.KeepAlive(file)
}

func (h *ImportHost) StorageRead(key entities.Buffer, register entities.RegisterID) entities.Bool {
	k := describeBuffer(key)
	res := host_storage_read(rawspan.AddrOf(&k), uint64(register))
	runtime.KeepAlive(&k)
	runtime.KeepAlive(key)
	return entities.Bool(res)
}

func (h *ImportHost) StorageWrite(key, value entities.Buffer, register entities.RegisterID) entities.Bool {
	k, v := describeBuffer(key), describeBuffer(value)
	res := host_storage_write(rawspan.AddrOf(&k), rawspan.AddrOf(&v), uint64(register))
	runtime.KeepAlive(&k)
	runtime.KeepAlive(&v)
	runtime.KeepAlive(key)
	runtime.KeepAlive(value)
	return entities.Bool(res)
}

func (h *ImportHost) StorageRemove(key entities.Buffer, register entities.RegisterID) entities.Bool {
	k := describeBuffer(key)
	res := host_storage_remove(rawspan.AddrOf(&k), uint64(register))
	runtime.KeepAlive(&k)
	runtime.KeepAlive(key)
	return entities.Bool(res)
}

func (h *ImportHost) ContextID(register entities.RegisterID) {
	host_context_id(uint64(register))
}

func (h *ImportHost) ExecutorID(register entities.RegisterID) {
	host_executor_id(uint64(register))
}

func (h *ImportHost) RegisterLen(register entities.RegisterID) entities.PtrSizedInt {
	return entities.PtrSizedInt(host_register_len(uint64(register)))
}

func (h *ImportHost) ReadRegister(register entities.RegisterID, dst entities.BufferMut) entities.Bool {
	d := describeBufferMut(dst)
	res := host_read_register(uint64(register), rawspan.AddrOf(&d))
	runtime.KeepAlive(&d)
	runtime.KeepAlive(dst)
	return entities.Bool(res)
}

func (h *ImportHost) Emit(e entities.Event) {
	ev := describeEvent(e)
	host_emit(rawspan.AddrOf(&ev))
	runtime.KeepAlive(&ev)
	runtime.KeepAlive(e)
}

func (h *ImportHost) EmitWithHandler(e entities.Event, handler entities.Buffer) {
	ev := describeEvent(e)
	hd := describeBuffer(handler)
	host_emit_with_handler(rawspan.AddrOf(&ev), rawspan.AddrOf(&hd))
	runtime.KeepAlive(&ev)
	runtime.KeepAlive(&hd)
	runtime.KeepAlive(e)
	runtime.KeepAlive(handler)
}

func (h *ImportHost) Commit(root, artifact entities.Buffer) {
	r, a := describeBuffer(root), describeBuffer(artifact)
	host_commit(rawspan.AddrOf(&r), rawspan.AddrOf(&a))
	runtime.KeepAlive(&r)
	runtime.KeepAlive(&a)
	runtime.KeepAlive(root)
	runtime.KeepAlive(artifact)
}

func (h *ImportHost) TimeNow(dst entities.BufferMut) {
	d := describeBufferMut(dst)
	host_time_now(rawspan.AddrOf(&d))
	runtime.KeepAlive(&d)
	runtime.KeepAlive(dst)
}

func (h *ImportHost) RandomBytes(dst entities.BufferMut) {
	d := describeBufferMut(dst)
	host_random_bytes(rawspan.AddrOf(&d))
	runtime.KeepAlive(&d)
	runtime.KeepAlive(dst)
}

func (h *ImportHost) Ed25519Verify(signature, publicKey, message entities.Buffer) entities.Bool {
	s, p, m := describeBuffer(signature), describeBuffer(publicKey), describeBuffer(message)
	res := host_ed25519_verify(rawspan.AddrOf(&s), rawspan.AddrOf(&p), rawspan.AddrOf(&m))
	runtime.KeepAlive(&s)
	runtime.KeepAlive(&p)
	runtime.KeepAlive(&m)
	runtime.KeepAlive(signature)
	runtime.KeepAlive(publicKey)
	runtime.KeepAlive(message)
	return entities.Bool(res)
}

func (h *ImportHost) BlobCreate() entities.BlobFd {
	return entities.BlobFd(host_blob_create())
}

func (h *ImportHost) BlobOpen(id entities.Buffer) entities.BlobFd {
	d := describeBuffer(id)
	fd := host_blob_open(rawspan.AddrOf(&d))
	runtime.KeepAlive(&d)
	runtime.KeepAlive(id)
	return entities.BlobFd(fd)
}

func (h *ImportHost) BlobRead(fd entities.BlobFd, dst entities.BufferMut) entities.PtrSizedInt {
	d := describeBufferMut(dst)
	n := host_blob_read(uint64(fd), rawspan.AddrOf(&d))
	runtime.KeepAlive(&d)
	runtime.KeepAlive(dst)
	return entities.PtrSizedInt(n)
}

func (h *ImportHost) BlobWrite(fd entities.BlobFd, data entities.Buffer) entities.PtrSizedInt {
	d := describeBuffer(data)
	n := host_blob_write(uint64(fd), rawspan.AddrOf(&d))
	runtime.KeepAlive(&d)
	runtime.KeepAlive(data)
	return entities.PtrSizedInt(n)
}

func (h *ImportHost) BlobClose(fd entities.BlobFd, dst entities.BufferMut) entities.Bool {
	d := describeBufferMut(dst)
	res := host_blob_close(uint64(fd), rawspan.AddrOf(&d))
	runtime.KeepAlive(&d)
	runtime.KeepAlive(dst)
	return entities.Bool(res)
}
