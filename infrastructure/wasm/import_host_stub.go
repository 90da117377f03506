//go:build !wasip1 && !tinygo

package wasm

import "github.com/calimero-network/calimero-sdk-js/domain/entities"

const nativeBuild = "wasm import host not available in native build"

// ImportHost stub for native builds.
type ImportHost struct{}

func NewImportHost() *ImportHost {
	return &ImportHost{}
}

func (h *ImportHost) LogUTF8(message string) {
	panic(nativeBuild)
}

func (h *ImportHost) Input(register entities.RegisterID) {
	panic(nativeBuild)
}

func (h *ImportHost) ValueReturn(value entities.Buffer, failed bool) {
	panic(nativeBuild)
}

func (h *ImportHost) PanicUTF8(message, file string) {
	panic(nativeBuild)
}

func (h *ImportHost) StorageRead(key entities.Buffer, register entities.RegisterID) entities.Bool {
	panic(nativeBuild)
}

func (h *ImportHost) StorageWrite(key, value entities.Buffer, register entities.RegisterID) entities.Bool {
	panic(nativeBuild)
}

func (h *ImportHost) StorageRemove(key entities.Buffer, register entities.RegisterID) entities.Bool {
	panic(nativeBuild)
}

func (h *ImportHost) ContextID(register entities.RegisterID) {
	panic(nativeBuild)
}

func (h *ImportHost) ExecutorID(register entities.RegisterID) {
	panic(nativeBuild)
}

func (h *ImportHost) RegisterLen(register entities.RegisterID) entities.PtrSizedInt {
	panic(nativeBuild)
}

func (h *ImportHost) ReadRegister(register entities.RegisterID, dst entities.BufferMut) entities.Bool {
	panic(nativeBuild)
}

func (h *ImportHost) Emit(e entities.Event) {
	panic(nativeBuild)
}

func (h *ImportHost) EmitWithHandler(e entities.Event, handler entities.Buffer) {
	panic(nativeBuild)
}

func (h *ImportHost) Commit(root, artifact entities.Buffer) {
	panic(nativeBuild)
}

func (h *ImportHost) TimeNow(dst entities.BufferMut) {
	panic(nativeBuild)
}

func (h *ImportHost) RandomBytes(dst entities.BufferMut) {
	panic(nativeBuild)
}

func (h *ImportHost) Ed25519Verify(signature, publicKey, message entities.Buffer) entities.Bool {
	panic(nativeBuild)
}

func (h *ImportHost) BlobCreate() entities.BlobFd {
	panic(nativeBuild)
}

func (h *ImportHost) BlobOpen(id entities.Buffer) entities.BlobFd {
	panic(nativeBuild)
}

func (h *ImportHost) BlobRead(fd entities.BlobFd, dst entities.BufferMut) entities.PtrSizedInt {
	panic(nativeBuild)
}

func (h *ImportHost) BlobWrite(fd entities.BlobFd, data entities.Buffer) entities.PtrSizedInt {
	panic(nativeBuild)
}

func (h *ImportHost) BlobClose(fd entities.BlobFd, dst entities.BufferMut) entities.Bool {
	panic(nativeBuild)
}
