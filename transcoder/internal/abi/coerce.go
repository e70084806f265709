package abi

import (
	"math"
	"reflect"
)

// Unsigned converts any Go integer, or an integral float such as a JSON
// number, to a uint64 that fits in bits.
func Unsigned(value any, bits uint) (uint64, bool) {
	rv := reflect.ValueOf(value)
	var u uint64
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u = rv.Uint()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return 0, false
		}
		u = uint64(i)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f < 0 || f >= 1<<64 || f != math.Trunc(f) {
			return 0, false
		}
		u = uint64(f)
	default:
		return 0, false
	}
	if bits < 64 && u > 1<<bits-1 {
		return 0, false
	}
	return u, true
}

// Signed converts any Go integer, or an integral float, to an int64 that
// fits in bits as two's complement.
func Signed(value any, bits uint) (int64, bool) {
	rv := reflect.ValueOf(value)
	var i int64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		i = int64(u)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f < -(1<<63) || f >= 1<<63 || f != math.Trunc(f) {
			return 0, false
		}
		i = int64(f)
	default:
		return 0, false
	}
	if bits < 64 {
		lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
		if i < lo || i > hi {
			return 0, false
		}
	}
	return i, true
}

// Float converts any Go float or integer to float64.
func Float(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}
