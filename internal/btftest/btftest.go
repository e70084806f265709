// Package btftest assembles small raw BTF blobs for tests.
package btftest

import (
	"bytes"
	"encoding/binary"
)

// BTF kinds as encoded in the type info word.
const (
	KindInt      = 1
	KindPtr      = 2
	KindArray    = 3
	KindStruct   = 4
	KindUnion    = 5
	KindEnum     = 6
	KindTypedef  = 8
	KindVolatile = 9
	KindConst    = 10
	KindFloat    = 16
)

// Int encoding bits.
const (
	Signed = 1
	Char   = 2
	Bool   = 4
)

// Builder writes type records and a string table in host byte order.
// Types are numbered from 1 in the order they are added.
type Builder struct {
	types bytes.Buffer
	strs  []byte
}

func New() *Builder {
	return &Builder{strs: []byte{0}}
}

// Str interns s and returns its string table offset.
func (b *Builder) Str(s string) uint32 {
	if s == "" {
		return 0
	}
	off := len(b.strs)
	b.strs = append(b.strs, s...)
	b.strs = append(b.strs, 0)
	return uint32(off)
}

// U32 appends raw words, used for the records following a type header.
func (b *Builder) U32(vals ...uint32) {
	for _, v := range vals {
		_ = binary.Write(&b.types, binary.NativeEndian, v)
	}
}

// Type appends a type header.
func (b *Builder) Type(name string, kind, vlen, sizeOrType uint32) {
	b.U32(b.Str(name), kind<<24|vlen, sizeOrType)
}

func (b *Builder) Int(name string, size, encoding uint32) {
	b.Type(name, KindInt, 0, size)
	b.U32(encoding<<24 | size*8)
}

func (b *Builder) Array(elem, index, count uint32) {
	b.Type("", KindArray, 0, 0)
	b.U32(elem, index, count)
}

// Member appends one struct or union member record.
func (b *Builder) Member(name string, typ, bitOffset uint32) {
	b.U32(b.Str(name), typ, bitOffset)
}

// Value appends one enum value record.
func (b *Builder) Value(name string, v uint32) {
	b.U32(b.Str(name), v)
}

func (b *Builder) Bytes() []byte {
	var out bytes.Buffer
	_ = binary.Write(&out, binary.NativeEndian, uint16(0xeb9f))
	out.WriteByte(1)
	out.WriteByte(0)
	hdr := []uint32{24, 0, uint32(b.types.Len()), uint32(b.types.Len()), uint32(len(b.strs))}
	for _, v := range hdr {
		_ = binary.Write(&out, binary.NativeEndian, v)
	}
	out.Write(b.types.Bytes())
	out.Write(b.strs)
	return out.Bytes()
}

// Sample is an 11-type graph:
//
//	1  unsigned int
//	2  char
//	3  char[4]
//	4  struct S { unsigned int f1; char f2[4]; }
//	5  enum state { A = 0, B = 0xffffffff }
//	6  typedef unsigned int u32_t
//	7  const u32_t
//	8  volatile const u32_t
//	9  struct S *
//	10 double
//	11 union u { unsigned int x; }
func Sample() []byte {
	b := New()
	b.Int("unsigned int", 4, 0) // 1
	b.Int("char", 1, Signed)    // 2
	b.Array(2, 1, 4)            // 3
	b.Type("S", KindStruct, 2, 8)
	b.Member("f1", 1, 0)
	b.Member("f2", 3, 32)
	b.Type("state", KindEnum, 2, 4)
	b.Value("A", 0)
	b.Value("B", 0xffffffff)
	b.Type("u32_t", KindTypedef, 0, 1)
	b.Type("", KindConst, 0, 6)
	b.Type("", KindVolatile, 0, 7)
	b.Type("", KindPtr, 0, 4)
	b.Type("double", KindFloat, 0, 8)
	b.Type("u", KindUnion, 1, 4)
	b.Member("x", 1, 0)
	return b.Bytes()
}
