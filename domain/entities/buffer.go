package entities

// Buffer is a read-only, non-owning view handed to the host.
// The host must not write through Bytes.
type Buffer struct {
	data []byte
}

// BufferFrom wraps b without copying.
func BufferFrom(b []byte) Buffer {
	return Buffer{data: b}
}

// BufferFromString wraps the bytes of s without validation.
func BufferFromString(s string) Buffer {
	return Buffer{data: []byte(s)}
}

// Bytes returns the underlying view.
func (b Buffer) Bytes() []byte {
	return b.data
}

// Len returns the view length in bytes.
func (b Buffer) Len() int {
	return len(b.data)
}

// Clone returns an owned copy of the viewed bytes.
// Hosts that retain data past the call must clone it.
func (b Buffer) Clone() []byte {
	if b.data == nil {
		return nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// BufferMut is a mutable, non-owning view the host writes into.
type BufferMut struct {
	data []byte
}

// BufferMutFrom wraps b without copying.
func BufferMutFrom(b []byte) BufferMut {
	return BufferMut{data: b}
}

// Bytes returns the underlying view.
func (b BufferMut) Bytes() []byte {
	return b.data
}

// Len returns the view length in bytes.
func (b BufferMut) Len() int {
	return len(b.data)
}
