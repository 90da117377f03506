package ports

import "github.com/calimero-network/calimero-sdk-js/domain/entities"

// Logger receives guest log lines. The message is assumed to be UTF-8.
type Logger interface {
	LogUTF8(message string)
}

// Storage is the key/value surface of the host. Each operation delivers the
// found, previous or removed value through the given register and reports
// whether such a value existed.
type Storage interface {
	StorageRead(key entities.Buffer, register entities.RegisterID) entities.Bool
	StorageWrite(key, value entities.Buffer, register entities.RegisterID) entities.Bool
	StorageRemove(key entities.Buffer, register entities.RegisterID) entities.Bool
}

// Identity writes the current context and executor identifiers into registers.
type Identity interface {
	ContextID(register entities.RegisterID)
	ExecutorID(register entities.RegisterID)
}

// Registers gives access to host-managed output slots.
type Registers interface {
	RegisterLen(register entities.RegisterID) entities.PtrSizedInt
	ReadRegister(register entities.RegisterID, dst entities.BufferMut) entities.Bool
}

// Events is the fire-and-forget event surface.
type Events interface {
	Emit(event entities.Event)
	EmitWithHandler(event entities.Event, handler entities.Buffer)
}

// Committer accepts state commits.
type Committer interface {
	Commit(root, artifact entities.Buffer)
}

// Clock writes the host time into guest memory.
type Clock interface {
	TimeNow(dst entities.BufferMut)
}

// Blobs is the streaming blob surface.
type Blobs interface {
	BlobCreate() entities.BlobFd
	BlobOpen(id entities.Buffer) entities.BlobFd
	BlobRead(fd entities.BlobFd, dst entities.BufferMut) entities.PtrSizedInt
	BlobWrite(fd entities.BlobFd, data entities.Buffer) entities.PtrSizedInt
	BlobClose(fd entities.BlobFd, dst entities.BufferMut) entities.Bool
}

// Host is the complete primitive operation set the shim forwards to.
type Host interface {
	Logger
	Storage
	Identity
	Registers
	Events
	Committer
	Clock
	Blobs
}

// Lifecycle is the call-scoped part of the host used by an executor but not
// exposed through the shim.
type Lifecycle interface {
	// Input places the call input into register.
	Input(register entities.RegisterID)

	// ValueReturn hands back the call result. failed marks an error value.
	ValueReturn(value entities.Buffer, failed bool)

	// PanicUTF8 reports a guest abort. The host must not resume the guest.
	PanicUTF8(message, location string)
}

// Crypto holds the host-provided randomness and signature checks.
type Crypto interface {
	RandomBytes(dst entities.BufferMut)
	Ed25519Verify(signature, publicKey, message entities.Buffer) entities.Bool
}

// Environment is everything a guest may import from the host module.
type Environment interface {
	Host
	Lifecycle
	Crypto
}
