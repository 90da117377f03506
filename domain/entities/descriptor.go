package entities

import (
	"encoding/hex"
	"math"
)

// RegisterID names a host-managed output slot.
type RegisterID uint64

// BlobFd names an open blob handle. Zero is never a valid handle.
type BlobFd uint64

// InvalidBlobFd is returned by the host when a blob cannot be created or opened.
const InvalidBlobFd BlobFd = 0

// PtrSizedInt is a host-sized magnitude: a byte count or a length.
type PtrSizedInt uint64

// RegisterMissing is the length reported for a register that holds no data.
const RegisterMissing PtrSizedInt = math.MaxUint64

// AsUint64 returns the raw magnitude.
func (p PtrSizedInt) AsUint64() uint64 {
	return uint64(p)
}

// IDSize is the width of context, executor and blob identifiers.
const IDSize = 32

// BlobID is the content-addressed identifier of a stored blob.
type BlobID [IDSize]byte

// String returns the lowercase hex encoding of the id.
func (id BlobID) String() string {
	return hex.EncodeToString(id[:])
}

// BlobIDFromBytes converts b into a BlobID. It reports false unless b is
// exactly IDSize bytes long.
func BlobIDFromBytes(b []byte) (BlobID, bool) {
	var id BlobID
	if len(b) != IDSize {
		return id, false
	}
	copy(id[:], b)
	return id, true
}

// ParseBlobID decodes a hex encoded blob id.
func ParseBlobID(s string) (BlobID, bool) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return BlobID{}, false
	}
	return BlobIDFromBytes(raw)
}

// ContextID identifies the application context a call runs in.
type ContextID [IDSize]byte

// ExecutorID identifies the identity executing a call.
type ExecutorID [IDSize]byte
