package hostfuncs

import (
	"bytes"
)

// DefaultMaxBlobSize is the default limit for a single blob (64MB).
const DefaultMaxBlobSize = 64 * 1024 * 1024

// DefaultMaxRegisterSize is the default limit for a single register (16MB).
// Storage values larger than this cannot be delivered through a register.
const DefaultMaxRegisterSize = 16 * 1024 * 1024

// BoundedBuffer is a bytes.Buffer wrapper that limits the size of written data.
// Unlike a plain io.Writer it reports short writes without an error, so the
// caller can hand the exact accepted count back to the guest.
type BoundedBuffer struct {
	buffer    bytes.Buffer
	limit     int
	Truncated bool
}

// NewBoundedBuffer creates a new BoundedBuffer with the specified limit.
func NewBoundedBuffer(limit int) *BoundedBuffer {
	return &BoundedBuffer{
		limit: limit,
	}
}

// Write accepts data up to the limit and returns the number of bytes kept.
// The Truncated field is set to true if any data was refused.
func (b *BoundedBuffer) Write(p []byte) (n int, err error) {
	remaining := b.limit - b.buffer.Len()
	if remaining <= 0 {
		if len(p) > 0 {
			b.Truncated = true
		}
		return 0, nil
	}

	if len(p) > remaining {
		b.Truncated = true
		return b.buffer.Write(p[:remaining])
	}

	return b.buffer.Write(p)
}

// Bytes returns the buffer contents as a byte slice.
func (b *BoundedBuffer) Bytes() []byte {
	return b.buffer.Bytes()
}

// Len returns the current length of the buffer.
func (b *BoundedBuffer) Len() int {
	return b.buffer.Len()
}

// Reset resets the buffer and clears the Truncated flag.
func (b *BoundedBuffer) Reset() {
	b.buffer.Reset()
	b.Truncated = false
}
