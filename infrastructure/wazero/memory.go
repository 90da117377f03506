package wazero

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	sdkErrors "github.com/calimero-network/calimero-sdk-js/domain/errors"
	"github.com/tetratelabs/wazero/api"
)

const (
	// DescriptorSize is the size of a buffer descriptor: ptr u64, len u64.
	DescriptorSize = 16

	// EventSize is the size of an event descriptor: kind and data buffers.
	EventSize = 2 * DescriptorSize

	// LocationSize is the size of a panic location: file buffer, line u32, column u32.
	LocationSize = DescriptorSize + 8

	// ValueReturnSize is the size of a value_return result: discriminant u64, buffer.
	ValueReturnSize = 8 + DescriptorSize
)

// guestMemory reads descriptors and spans out of the calling module's memory
// on behalf of one host function. Every failure panics with a
// *errors.MemoryError, which wazero turns into a trap.
type guestMemory struct {
	mem      api.Memory
	function string
	maxSize  uint32
}

func newGuestMemory(mod api.Module, function string, maxSize uint32) *guestMemory {
	mem := mod.Memory()
	if !hasMemory(mem) {
		panic(&sdkErrors.MemoryError{Err: sdkErrors.ErrNoMemory, Function: function, Operation: "memory"})
	}
	return &guestMemory{mem: mem, function: function, maxSize: maxSize}
}

// hasMemory reports whether mem is backed by a memory instance. A module
// without memory hands back a nil *MemoryInstance inside a non-nil interface.
func hasMemory(mem api.Memory) bool {
	if mem == nil {
		return false
	}
	v := reflect.ValueOf(mem)
	return v.Kind() != reflect.Pointer || !v.IsNil()
}

func (g *guestMemory) fail(err error, op string, offset, length uint64) {
	panic(&sdkErrors.MemoryError{
		Err:       err,
		Function:  g.function,
		Operation: op,
		Offset:    offset,
		Length:    length,
	})
}

// read returns a view of length bytes at offset. The view aliases guest
// memory. A zero length yields an empty view without touching memory.
func (g *guestMemory) read(op string, offset, length uint64) []byte {
	if length == 0 {
		return nil
	}
	if length > uint64(g.maxSize) {
		g.fail(sdkErrors.ErrBufferTooLarge, op, offset, length)
	}
	if offset > math.MaxUint32 {
		g.fail(sdkErrors.ErrOutOfBounds, op, offset, length)
	}
	data, ok := g.mem.Read(uint32(offset), uint32(length)) //nolint:gosec // G115: both checked against 32-bit bounds
	if !ok {
		g.fail(sdkErrors.ErrOutOfBounds, op, offset, length)
	}
	return data
}

// fixed reads a host-defined structure of size bytes at ptr.
func (g *guestMemory) fixed(ptr uint64, size uint64) []byte {
	if ptr > math.MaxUint32 {
		g.fail(sdkErrors.ErrOutOfBounds, "descriptor", ptr, size)
	}
	data, ok := g.mem.Read(uint32(ptr), uint32(size)) //nolint:gosec // G115: checked above, size is a small constant
	if !ok {
		g.fail(sdkErrors.ErrOutOfBounds, "descriptor", ptr, size)
	}
	return data
}

func (g *guestMemory) span(desc []byte, op string) []byte {
	return g.read(op, binary.LittleEndian.Uint64(desc[0:8]), binary.LittleEndian.Uint64(desc[8:16]))
}

// buffer decodes the descriptor at ptr into a read-only view.
func (g *guestMemory) buffer(ptr uint64) entities.Buffer {
	return entities.BufferFrom(g.span(g.fixed(ptr, DescriptorSize), "read"))
}

// bufferMut decodes the descriptor at ptr into a view the host writes into.
func (g *guestMemory) bufferMut(ptr uint64) entities.BufferMut {
	return entities.BufferMutFrom(g.span(g.fixed(ptr, DescriptorSize), "write"))
}

// text decodes the descriptor at ptr as UTF-8 without validation.
func (g *guestMemory) text(ptr uint64) string {
	return string(g.buffer(ptr).Bytes())
}

// event decodes the 32-byte event descriptor at ptr.
func (g *guestMemory) event(ptr uint64) entities.Event {
	desc := g.fixed(ptr, EventSize)
	kind := g.span(desc[0:DescriptorSize], "read")
	data := g.span(desc[DescriptorSize:EventSize], "read")
	return entities.NewEvent(string(kind), entities.BufferFrom(data))
}

// location decodes a panic location as "file:line:column".
func (g *guestMemory) location(ptr uint64) string {
	desc := g.fixed(ptr, LocationSize)
	file := g.span(desc[0:DescriptorSize], "read")
	line := binary.LittleEndian.Uint32(desc[16:20])
	column := binary.LittleEndian.Uint32(desc[20:24])
	return fmt.Sprintf("%s:%d:%d", file, line, column)
}

// valueReturn decodes a value_return result. A non-zero discriminant marks an
// error value.
func (g *guestMemory) valueReturn(ptr uint64) (entities.Buffer, bool) {
	desc := g.fixed(ptr, ValueReturnSize)
	failed := binary.LittleEndian.Uint64(desc[0:8]) != 0
	value := g.span(desc[8:ValueReturnSize], "read")
	return entities.BufferFrom(value), failed
}
