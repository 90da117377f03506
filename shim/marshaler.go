package shim

import (
	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"github.com/calimero-network/calimero-sdk-js/domain/ports"
	"github.com/calimero-network/calimero-sdk-js/internal/rawspan"
)

// Marshaler forwards integer-only entry points to a host.
// It holds no mutable state; one Marshaler may serve any number of calls.
type Marshaler struct {
	host ports.Host
}

// New returns a Marshaler forwarding to host.
func New(host ports.Host) *Marshaler {
	return &Marshaler{host: host}
}

// Host returns the host the marshaler forwards to.
func (m *Marshaler) Host() ports.Host {
	return m.host
}

// BoolToU32 converts a host boolean to the caller's vocabulary: 0 for false,
// 1 for true and the raw value for anything else.
func BoolToU32(b entities.Bool) uint32 {
	if v, ok := b.TryBool(); ok {
		if v {
			return 1
		}
		return 0
	}
	return b.Raw()
}

func buffer(ptr, length uint64) entities.Buffer {
	return entities.BufferFrom(rawspan.View(ptr, length))
}

func bufferMut(ptr, length uint64) entities.BufferMut {
	return entities.BufferMutFrom(rawspan.ViewMut(ptr, length))
}

// ===========================
// Logging
// ===========================

// LogUTF8 forwards a log message. The message must be valid UTF-8.
func (m *Marshaler) LogUTF8(ptr, length uint64) {
	m.host.LogUTF8(rawspan.String(ptr, length))
}

// ===========================
// Storage
// ===========================

// StorageRead looks up key; on success the value is delivered via registerID.
func (m *Marshaler) StorageRead(keyPtr, keyLen, registerID uint64) uint32 {
	return BoolToU32(m.host.StorageRead(buffer(keyPtr, keyLen), entities.RegisterID(registerID)))
}

// StorageWrite stores value under key; a previous value, if any, is delivered
// via registerID.
func (m *Marshaler) StorageWrite(keyPtr, keyLen, valuePtr, valueLen, registerID uint64) uint32 {
	return BoolToU32(m.host.StorageWrite(
		buffer(keyPtr, keyLen),
		buffer(valuePtr, valueLen),
		entities.RegisterID(registerID),
	))
}

// StorageRemove deletes key; the removed value, if any, is delivered via
// registerID.
func (m *Marshaler) StorageRemove(keyPtr, keyLen, registerID uint64) uint32 {
	return BoolToU32(m.host.StorageRemove(buffer(keyPtr, keyLen), entities.RegisterID(registerID)))
}

// ===========================
// Context
// ===========================

// ContextID writes the current context id into registerID.
func (m *Marshaler) ContextID(registerID uint64) {
	m.host.ContextID(entities.RegisterID(registerID))
}

// ExecutorID writes the current executor id into registerID.
func (m *Marshaler) ExecutorID(registerID uint64) {
	m.host.ExecutorID(entities.RegisterID(registerID))
}

// ===========================
// Registers
// ===========================

// RegisterLen returns the byte length held by registerID. No register read is
// performed.
func (m *Marshaler) RegisterLen(registerID uint64) uint64 {
	return m.host.RegisterLen(entities.RegisterID(registerID)).AsUint64()
}

// ReadRegister copies registerID into the destination span. The destination
// should be sized with RegisterLen first.
func (m *Marshaler) ReadRegister(registerID, bufPtr, bufLen uint64) uint32 {
	return BoolToU32(m.host.ReadRegister(entities.RegisterID(registerID), bufferMut(bufPtr, bufLen)))
}

// ===========================
// Events
// ===========================

// Emit forwards an event. There is no status: success means the call returned.
func (m *Marshaler) Emit(kindPtr, kindLen, dataPtr, dataLen uint64) {
	m.host.Emit(entities.NewEvent(rawspan.String(kindPtr, kindLen), buffer(dataPtr, dataLen)))
}

// EmitWithHandler forwards an event with an opaque handler routing token.
func (m *Marshaler) EmitWithHandler(kindPtr, kindLen, dataPtr, dataLen, handlerPtr, handlerLen uint64) {
	event := entities.NewEvent(rawspan.String(kindPtr, kindLen), buffer(dataPtr, dataLen))
	m.host.EmitWithHandler(event, buffer(handlerPtr, handlerLen))
}

// ===========================
// Delta/Commit
// ===========================

// Commit hands a root and artifact to the host.
func (m *Marshaler) Commit(rootPtr, rootLen, artifactPtr, artifactLen uint64) {
	m.host.Commit(buffer(rootPtr, rootLen), buffer(artifactPtr, artifactLen))
}

// ===========================
// Time
// ===========================

// TimeNow lets the host write its timestamp encoding into the destination.
func (m *Marshaler) TimeNow(bufPtr, bufLen uint64) {
	m.host.TimeNow(bufferMut(bufPtr, bufLen))
}

// ===========================
// Blobs
// ===========================

// BlobCreate opens a new blob for writing and returns its descriptor.
func (m *Marshaler) BlobCreate() uint64 {
	return uint64(m.host.BlobCreate())
}

// BlobOpen opens an existing blob for reading. The host returns 0 when the id
// is unknown.
func (m *Marshaler) BlobOpen(blobIDPtr, blobIDLen uint64) uint64 {
	return uint64(m.host.BlobOpen(buffer(blobIDPtr, blobIDLen)))
}

// BlobRead fills the destination from fd and returns the number of bytes read.
func (m *Marshaler) BlobRead(fd, bufPtr, bufLen uint64) uint64 {
	return m.host.BlobRead(entities.BlobFd(fd), bufferMut(bufPtr, bufLen)).AsUint64()
}

// BlobWrite appends the source span to fd and returns the number of bytes
// written.
func (m *Marshaler) BlobWrite(fd, dataPtr, dataLen uint64) uint64 {
	return m.host.BlobWrite(entities.BlobFd(fd), buffer(dataPtr, dataLen)).AsUint64()
}

// BlobClose closes fd; on success the content-addressed blob id is written
// into the destination span.
func (m *Marshaler) BlobClose(fd, bufPtr, bufLen uint64) uint32 {
	return BoolToU32(m.host.BlobClose(entities.BlobFd(fd), bufferMut(bufPtr, bufLen)))
}
