package abi

import "encoding/binary"

// ByteOrder is the byte order of the host. Every codec uses it.
var ByteOrder = binary.NativeEndian

// LittleEndian reports whether the host stores the low byte first.
var LittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// Uint reads an unsigned integer of len(b) bytes (1, 2, 4 or 8).
func Uint(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(ByteOrder.Uint16(b))
	case 4:
		return uint64(ByteOrder.Uint32(b))
	case 8:
		return ByteOrder.Uint64(b)
	}
	panic("abi: unsupported integer width")
}

// PutUint writes the low len(b) bytes of v.
func PutUint(b []byte, v uint64) {
	switch len(b) {
	case 1:
		b[0] = byte(v)
	case 2:
		ByteOrder.PutUint16(b, uint16(v))
	case 4:
		ByteOrder.PutUint32(b, uint32(v))
	case 8:
		ByteOrder.PutUint64(b, v)
	default:
		panic("abi: unsupported integer width")
	}
}

// Int reads a two's complement integer of len(b) bytes, sign-extended.
func Int(b []byte) int64 {
	return SignExtend(Uint(b), len(b))
}

// SignExtend widens the low size bytes of v to int64.
func SignExtend(v uint64, size int) int64 {
	shift := 64 - 8*uint(size)
	return int64(v<<shift) >> shift
}

// Fits reports whether v is representable as a signed integer of size bytes.
func Fits(v int64, size int) bool {
	return SignExtend(uint64(v), size) == v
}

// Uint128 reads a 16-byte integer as its low and high halves.
func Uint128(b []byte) (lo, hi uint64) {
	if LittleEndian {
		return ByteOrder.Uint64(b[:8]), ByteOrder.Uint64(b[8:16])
	}
	return ByteOrder.Uint64(b[8:16]), ByteOrder.Uint64(b[:8])
}

func PutUint128(b []byte, lo, hi uint64) {
	if LittleEndian {
		ByteOrder.PutUint64(b[:8], lo)
		ByteOrder.PutUint64(b[8:16], hi)
		return
	}
	ByteOrder.PutUint64(b[:8], hi)
	ByteOrder.PutUint64(b[8:16], lo)
}
