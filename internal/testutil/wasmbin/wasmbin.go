// Package wasmbin encodes small WebAssembly modules for tests that need a real
// guest: one that imports host functions and exports entry points calling
// them with fixed arguments.
//
// Only the binary format features those tests need are supported: function
// imports, exported functions without locals, one exported memory and active
// data segments.
package wasmbin

import (
	"encoding/binary"
	"fmt"
)

// Value types.
const (
	I32 byte = 0x7f
	I64 byte = 0x7e
)

// Opcodes.
const (
	opUnreachable = 0x00
	opEnd         = 0x0b
	opCall        = 0x10
	opDrop        = 0x1a
	opLocalGet    = 0x20
	opI32Const    = 0x41
	opI64Const    = 0x42
)

const (
	sectionType     = 1
	sectionImport   = 2
	sectionFunction = 3
	sectionMemory   = 5
	sectionExport   = 7
	sectionCode     = 10
	sectionData     = 11

	kindFunc   = 0x00
	kindMemory = 0x02
)

type funcType struct {
	params, results []byte
}

type imported struct {
	module, name string
	typ          int
}

type defined struct {
	export string
	typ    int
	body   []byte
}

type segment struct {
	offset uint32
	data   []byte
}

// Module is a module under construction. Imports must be added before any
// function body refers to them by index.
type Module struct {
	types   []funcType
	imports []imported
	funcs   []defined
	pages   uint32
	memory  bool
	data    []segment
}

// New returns an empty module.
func New() *Module {
	return &Module{}
}

// Memory defines a linear memory of pages 64KiB pages exported as "memory".
func (m *Module) Memory(pages uint32) *Module {
	m.memory = true
	m.pages = pages
	return m
}

// Data places b at offset in memory when the module is instantiated.
func (m *Module) Data(offset uint32, b []byte) *Module {
	m.data = append(m.data, segment{offset: offset, data: b})
	return m
}

// Import declares a function import and returns its function index.
func (m *Module) Import(module, name string, params, results []byte) uint32 {
	if len(m.funcs) > 0 {
		panic("wasmbin: imports must precede defined functions")
	}
	m.imports = append(m.imports, imported{module: module, name: name, typ: m.typeIndex(params, results)})
	return uint32(len(m.imports) - 1) //nolint:gosec // G115: test modules are tiny
}

// Func defines a function exported as name. body is the instruction
// sequence without the final end.
func (m *Module) Func(name string, params, results []byte, body ...[]byte) *Module {
	var code []byte
	for _, b := range body {
		code = append(code, b...)
	}
	m.funcs = append(m.funcs, defined{export: name, typ: m.typeIndex(params, results), body: code})
	return m
}

// Forwarders defines the "call_" exports for every import declared so far.
func (m *Module) Forwarders() *Module {
	for i, imp := range m.imports {
		t := m.types[imp.typ]
		var body []byte
		for p := range t.params {
			body = append(body, LocalGet(uint32(p))...) //nolint:gosec // G115: test modules are tiny
		}
		body = append(body, Call(uint32(i))...) //nolint:gosec // G115: test modules are tiny
		m.Func("call_"+imp.name, t.params, t.results, body)
	}
	return m
}

func (m *Module) typeIndex(params, results []byte) int {
	for i, t := range m.types {
		if string(t.params) == string(params) && string(t.results) == string(results) {
			return i
		}
	}
	m.types = append(m.types, funcType{params: params, results: results})
	return len(m.types) - 1
}

// Encode returns the binary module.
func (m *Module) Encode() []byte {
	out := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}

	if len(m.types) > 0 {
		var s []byte
		s = appendU32(s, uint32(len(m.types))) //nolint:gosec // G115
		for _, t := range m.types {
			s = append(s, 0x60)
			s = appendBytes(s, t.params)
			s = appendBytes(s, t.results)
		}
		out = appendSection(out, sectionType, s)
	}

	if len(m.imports) > 0 {
		var s []byte
		s = appendU32(s, uint32(len(m.imports))) //nolint:gosec // G115
		for _, imp := range m.imports {
			s = appendName(s, imp.module)
			s = appendName(s, imp.name)
			s = append(s, kindFunc)
			s = appendU32(s, uint32(imp.typ)) //nolint:gosec // G115
		}
		out = appendSection(out, sectionImport, s)
	}

	if len(m.funcs) > 0 {
		var s []byte
		s = appendU32(s, uint32(len(m.funcs))) //nolint:gosec // G115
		for _, f := range m.funcs {
			s = appendU32(s, uint32(f.typ)) //nolint:gosec // G115
		}
		out = appendSection(out, sectionFunction, s)
	}

	if m.memory {
		s := []byte{0x01, 0x00}
		s = appendU32(s, m.pages)
		out = appendSection(out, sectionMemory, s)
	}

	exports := len(m.funcs)
	if m.memory {
		exports++
	}
	if exports > 0 {
		var s []byte
		s = appendU32(s, uint32(exports)) //nolint:gosec // G115
		if m.memory {
			s = appendName(s, "memory")
			s = append(s, kindMemory)
			s = appendU32(s, 0)
		}
		for i, f := range m.funcs {
			s = appendName(s, f.export)
			s = append(s, kindFunc)
			s = appendU32(s, uint32(len(m.imports)+i)) //nolint:gosec // G115
		}
		out = appendSection(out, sectionExport, s)
	}

	if len(m.funcs) > 0 {
		var s []byte
		s = appendU32(s, uint32(len(m.funcs))) //nolint:gosec // G115
		for _, f := range m.funcs {
			body := []byte{0x00} // no local declarations
			body = append(body, f.body...)
			body = append(body, opEnd)
			s = appendBytes(s, body)
		}
		out = appendSection(out, sectionCode, s)
	}

	if len(m.data) > 0 {
		if !m.memory {
			panic(fmt.Sprintf("wasmbin: %d data segments without memory", len(m.data)))
		}
		var s []byte
		s = appendU32(s, uint32(len(m.data))) //nolint:gosec // G115
		for _, d := range m.data {
			s = append(s, 0x00, opI32Const)
			s = appendS64(s, int64(d.offset))
			s = append(s, opEnd)
			s = appendBytes(s, d.data)
		}
		out = appendSection(out, sectionData, s)
	}

	return out
}

// LocalGet pushes parameter i.
func LocalGet(i uint32) []byte {
	return appendU32([]byte{opLocalGet}, i)
}

// Call calls function idx.
func Call(idx uint32) []byte {
	return appendU32([]byte{opCall}, idx)
}

// I32Const pushes v.
func I32Const(v int32) []byte {
	return appendS64([]byte{opI32Const}, int64(v))
}

// I64Const pushes v.
func I64Const(v int64) []byte {
	return appendS64([]byte{opI64Const}, v)
}

// Drop discards the top of the stack.
func Drop() []byte {
	return []byte{opDrop}
}

// Unreachable traps.
func Unreachable() []byte {
	return []byte{opUnreachable}
}

func appendSection(out []byte, id byte, contents []byte) []byte {
	out = append(out, id)
	return appendBytes(out, contents)
}

func appendBytes(out, b []byte) []byte {
	out = appendU32(out, uint32(len(b))) //nolint:gosec // G115
	return append(out, b...)
}

func appendName(out []byte, name string) []byte {
	return appendBytes(out, []byte(name))
}

// appendU32 appends v as unsigned LEB128.
func appendU32(out []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

// appendS64 appends v as signed LEB128.
func appendS64(out []byte, v int64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

// Descriptor encodes a buffer descriptor: ptr and len as little-endian u64.
func Descriptor(ptr, length uint64) []byte {
	out := make([]byte, 16)
	binary.LittleEndian.PutUint64(out[0:8], ptr)
	binary.LittleEndian.PutUint64(out[8:16], length)
	return out
}
