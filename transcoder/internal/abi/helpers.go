package abi

import (
	"math"
	"reflect"
)

func SafeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// Window returns b[offset:offset+size], or false if it does not fit.
func Window(b []byte, offset, size uint32) ([]byte, bool) {
	end, ok := SafeAddU32(offset, size)
	if !ok || uint64(end) > uint64(len(b)) {
		return nil, false
	}
	return b[offset:end:end], true
}
