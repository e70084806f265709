package transcoder

import (
	"math"
	"math/big"
	"testing"
)

func TestInt128Text(t *testing.T) {
	tests := []struct {
		in   string
		want Int128
	}{
		{"0", Int128{}},
		{"-1", Int128{Lo: math.MaxUint64, Hi: -1}},
		{"18446744073709551616", Int128{Lo: 0, Hi: 1}},
		{"-170141183460469231731687303715884105728", Int128{Lo: 0, Hi: math.MinInt64}},
		{"170141183460469231731687303715884105727", Int128{Lo: math.MaxUint64, Hi: math.MaxInt64}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInt128(tt.in)
			if !ok || got != tt.want {
				t.Fatalf("ParseInt128 = %#v, %v", got, ok)
			}
			if got.String() != tt.in {
				t.Errorf("String = %s", got.String())
			}
		})
	}

	if _, ok := ParseInt128("170141183460469231731687303715884105728"); ok {
		t.Error("overflow accepted")
	}
	if _, ok := ParseInt128("x"); ok {
		t.Error("garbage accepted")
	}
}

func TestUint128Text(t *testing.T) {
	max := Uint128{Lo: math.MaxUint64, Hi: math.MaxUint64}
	if max.String() != "340282366920938463463374607431768211455" {
		t.Errorf("max = %s", max)
	}
	got, ok := ParseUint128("0xff")
	if !ok || got != (Uint128{Lo: 255}) {
		t.Errorf("ParseUint128(0xff) = %#v, %v", got, ok)
	}

	var v Uint128
	if err := v.UnmarshalText([]byte("42")); err != nil || v.Lo != 42 {
		t.Errorf("UnmarshalText = %#v, %v", v, err)
	}
	if err := v.UnmarshalText([]byte("-1")); err == nil {
		t.Error("negative accepted")
	}
}

func TestInt128Big(t *testing.T) {
	b := big.NewInt(-5)
	v, ok := Int128FromBig(b)
	if !ok || v.Big().Cmp(b) != 0 {
		t.Errorf("round trip -5 = %#v", v)
	}
}

func TestVariantText(t *testing.T) {
	text, _ := Variant{Name: "RUNNING", Value: 1}.MarshalText()
	if string(text) != "RUNNING" {
		t.Errorf("MarshalText = %s", text)
	}
	if (Variant{Value: -3}).String() != "-3" {
		t.Error("anonymous variant should print its value")
	}
}
