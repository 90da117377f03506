package wasm

import (
	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"github.com/calimero-network/calimero-sdk-js/internal/rawspan"
)

// descriptor is the host's view of a buffer: a pointer and a length, both
// u64, in natural alignment.
type descriptor struct {
	ptr uint64
	len uint64
}

// event is the host's view of an event: a kind and a data buffer.
type event struct {
	kind descriptor
	data descriptor
}

// location is the host's view of a panic location.
type location struct {
	file   descriptor
	line   uint32
	column uint32
}

// valueReturn is the host's view of a call result. A zero discriminant marks
// a success value.
type valueReturn struct {
	discriminant uint64
	value        descriptor
}

func describe(b []byte) descriptor {
	return descriptor{ptr: rawspan.Addr(b), len: uint64(len(b))}
}

func describeString(s string) descriptor {
	return descriptor{ptr: rawspan.StringAddr(s), len: uint64(len(s))}
}

func describeBuffer(b entities.Buffer) descriptor {
	return describe(b.Bytes())
}

func describeBufferMut(b entities.BufferMut) descriptor {
	return describe(b.Bytes())
}

func describeEvent(e entities.Event) event {
	return event{kind: describeString(e.Kind), data: describeBuffer(e.Data)}
}
