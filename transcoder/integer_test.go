package transcoder

import (
	"bytes"
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
)

func TestIntKind(t *testing.T) {
	tests := []struct {
		name    string
		d       catalog.Int
		want    TypeKind
		wantErr error
	}{
		{"bool", catalog.Int{Name: "_Bool", Bits: 8, Encoding: catalog.Bool}, KindBool, nil},
		{"char", catalog.Int{Name: "char", Bits: 8, Encoding: catalog.Char}, KindU8, nil},
		{"u8", catalog.Int{Name: "unsigned char", Bits: 8}, KindU8, nil},
		{"s8", catalog.Int{Name: "signed char", Bits: 8, Encoding: catalog.Signed}, KindS8, nil},
		{"u16", catalog.Int{Bits: 16}, KindU16, nil},
		{"s16", catalog.Int{Bits: 16, Encoding: catalog.Signed}, KindS16, nil},
		{"u32", catalog.Int{Bits: 32}, KindU32, nil},
		{"s32", catalog.Int{Bits: 32, Encoding: catalog.Signed}, KindS32, nil},
		{"u64", catalog.Int{Bits: 64}, KindU64, nil},
		{"s64", catalog.Int{Bits: 64, Encoding: catalog.Signed}, KindS64, nil},
		{"u128", catalog.Int{Bits: 128}, KindU128, nil},
		{"s128", catalog.Int{Bits: 128, Encoding: catalog.Signed}, KindS128, nil},
		{"bitfield", catalog.Int{Name: "int", Bits: 12, Encoding: catalog.Signed}, 0, errors.ErrUnsupportedBitfield},
		{"wide bool", catalog.Int{Name: "bool32", Bits: 32, Encoding: catalog.Bool}, 0, errors.ErrUnsupportedIntegerEncoding},
		{"wide char", catalog.Int{Name: "wchar", Bits: 16, Encoding: catalog.Char}, 0, errors.ErrUnsupportedIntegerEncoding},
		{"24 bit", catalog.Int{Name: "u24", Bits: 24}, 0, errors.ErrUnsupportedIntegerEncoding},
		{"zero width", catalog.Int{Name: "none"}, 0, errors.ErrUnsupportedIntegerEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := intKind(&tt.d)
			if tt.wantErr != nil {
				if !stderrors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("kind = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		d     *catalog.Int
		bytes []byte
		value any
	}{
		{"u8", &catalog.Int{Bits: 8}, []byte{0xff}, uint8(255)},
		{"s8", &catalog.Int{Bits: 8, Encoding: catalog.Signed}, []byte{0xff}, int8(-1)},
		{"char", &catalog.Int{Name: "char", Bits: 8, Encoding: catalog.Char}, []byte{'A'}, uint8('A')},
		{"u16", &catalog.Int{Bits: 16}, u16Bytes(0xbeef), uint16(0xbeef)},
		{"s16", &catalog.Int{Bits: 16, Encoding: catalog.Signed}, u16Bytes(0x8000), int16(math.MinInt16)},
		{"u32", &catalog.Int{Bits: 32}, u32Bytes(0x12345678), uint32(0x12345678)},
		{"s32", &catalog.Int{Bits: 32, Encoding: catalog.Signed}, u32Bytes(0xfffffffe), int32(-2)},
		{"u64", &catalog.Int{Bits: 64}, u64Bytes(math.MaxUint64), uint64(math.MaxUint64)},
		{"s64", &catalog.Int{Bits: 64, Encoding: catalog.Signed}, u64Bytes(1 << 63), int64(math.MinInt64)},
		{"bool true", &catalog.Int{Bits: 8, Encoding: catalog.Bool}, []byte{1}, true},
		{"bool false", &catalog.Int{Bits: 8, Encoding: catalog.Bool}, []byte{0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := singleType(t, tt.d)
			got, err := u.Decode(tt.bytes)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.value {
				t.Errorf("Decode = %#v, want %#v", got, tt.value)
			}
			enc, err := u.Encode(got)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.Equal(enc, tt.bytes) {
				t.Errorf("Encode = %x, want %x", enc, tt.bytes)
			}
		})
	}
}

func TestBoolDecodePermissive(t *testing.T) {
	u := singleType(t, &catalog.Int{Name: "_Bool", Bits: 8, Encoding: catalog.Bool})
	got, err := u.Decode([]byte{2})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != false {
		t.Errorf("byte 2 decoded as %v, want false", got)
	}
	if _, err := u.Encode(1); !stderrors.Is(err, errors.ErrTypeMismatch) {
		t.Errorf("Encode(1) err = %v, want type mismatch", err)
	}
}

func TestIntegerLengthMismatch(t *testing.T) {
	u := singleType(t, &catalog.Int{Name: "unsigned int", Bits: 32})
	for _, n := range []int{0, 3, 5} {
		_, err := u.Decode(make([]byte, n))
		if !stderrors.Is(err, errors.ErrLengthMismatch) {
			t.Errorf("len %d: err = %v, want length mismatch", n, err)
		}
	}
}

func TestIntegerEncodeCoercion(t *testing.T) {
	u8 := singleType(t, &catalog.Int{Bits: 8})
	s16 := singleType(t, &catalog.Int{Bits: 16, Encoding: catalog.Signed})

	tests := []struct {
		name    string
		unit    *Unit
		value   any
		want    []byte
		wantErr error
	}{
		{"int into u8", u8, 200, []byte{200}, nil},
		{"float64 into u8", u8, float64(7), []byte{7}, nil},
		{"u8 overflow", u8, 256, nil, errors.ErrTypeMismatch},
		{"u8 negative", u8, -1, nil, errors.ErrTypeMismatch},
		{"string into u8", u8, "7", nil, errors.ErrTypeMismatch},
		{"negative s16", s16, int64(-2), u16Bytes(0xfffe), nil},
		{"s16 overflow", s16, 40000, nil, errors.ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.unit.Encode(tt.value)
			if tt.wantErr != nil {
				if !stderrors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestInt128(t *testing.T) {
	s128 := singleType(t, &catalog.Int{Name: "__int128", Bits: 128, Encoding: catalog.Signed})
	u128 := singleType(t, &catalog.Int{Name: "unsigned __int128", Bits: 128})

	t.Run("minus_one", func(t *testing.T) {
		b := bytes.Repeat([]byte{0xff}, 16)
		got, err := s128.Decode(b)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got != (Int128{Lo: math.MaxUint64, Hi: -1}) {
			t.Errorf("Decode = %#v", got)
		}
		if got.(Int128).String() != "-1" {
			t.Errorf("String = %s", got.(Int128).String())
		}
		enc, err := s128.Encode(-1)
		if err != nil || !bytes.Equal(enc, b) {
			t.Errorf("Encode(-1) = %x, %v", enc, err)
		}
	})

	t.Run("decimal_string", func(t *testing.T) {
		enc, err := u128.Encode("18446744073709551616")
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		got, err := u128.Decode(enc)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got != (Uint128{Lo: 0, Hi: 1}) {
			t.Errorf("round trip = %#v", got)
		}
	})

	t.Run("out_of_range", func(t *testing.T) {
		if _, err := u128.Encode("-1"); !stderrors.Is(err, errors.ErrTypeMismatch) {
			t.Errorf("err = %v", err)
		}
		if _, err := s128.Encode(Uint128{Hi: 1 << 63}); !stderrors.Is(err, errors.ErrTypeMismatch) {
			t.Errorf("err = %v", err)
		}
	})
}
