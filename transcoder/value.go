package transcoder

import (
	"math/big"
	"strconv"
)

var (
	two64   = new(big.Int).Lsh(big.NewInt(1), 64)
	two128  = new(big.Int).Lsh(big.NewInt(1), 128)
	mask64  = new(big.Int).Sub(two64, big.NewInt(1))
	maxU128 = new(big.Int).Sub(two128, big.NewInt(1))
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Uint128 is an unsigned 128-bit integer split into 64-bit halves.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Int128 is a two's complement 128-bit integer split into 64-bit halves.
type Int128 struct {
	Lo uint64
	Hi int64
}

func (v Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(v.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(v.Lo))
}

func (v Uint128) String() string {
	if v.Hi == 0 {
		return strconv.FormatUint(v.Lo, 10)
	}
	return v.Big().String()
}

func (v Uint128) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Uint128) UnmarshalText(text []byte) error {
	parsed, ok := ParseUint128(string(text))
	if !ok {
		return strconv.ErrSyntax
	}
	*v = parsed
	return nil
}

func (v Int128) Big() *big.Int {
	b := Uint128{Lo: v.Lo, Hi: uint64(v.Hi)}.Big()
	if v.Hi < 0 {
		b.Sub(b, two128)
	}
	return b
}

func (v Int128) String() string {
	return v.Big().String()
}

func (v Int128) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Int128) UnmarshalText(text []byte) error {
	parsed, ok := ParseInt128(string(text))
	if !ok {
		return strconv.ErrSyntax
	}
	*v = parsed
	return nil
}

// Uint128FromBig returns false when b is negative or wider than 128 bits.
func Uint128FromBig(b *big.Int) (Uint128, bool) {
	if b.Sign() < 0 || b.Cmp(maxU128) > 0 {
		return Uint128{}, false
	}
	lo := new(big.Int).And(b, mask64).Uint64()
	hi := new(big.Int).Rsh(b, 64).Uint64()
	return Uint128{Lo: lo, Hi: hi}, true
}

func Int128FromBig(b *big.Int) (Int128, bool) {
	if b.Cmp(minI128) < 0 || b.Cmp(maxI128) > 0 {
		return Int128{}, false
	}
	x := new(big.Int).Set(b)
	if x.Sign() < 0 {
		x.Add(x, two128)
	}
	u, _ := Uint128FromBig(x)
	return Int128{Lo: u.Lo, Hi: int64(u.Hi)}, true
}

// ParseUint128 parses a decimal (or 0x-prefixed hex) string.
func ParseUint128(s string) (Uint128, bool) {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Uint128{}, false
	}
	return Uint128FromBig(b)
}

func ParseInt128(s string) (Int128, bool) {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Int128{}, false
	}
	return Int128FromBig(b)
}

// Variant is a decoded enum value: the first declared variant whose value
// matched.
type Variant struct {
	Name  string
	Value int64
}

func (v Variant) String() string {
	if v.Name == "" {
		return strconv.FormatInt(v.Value, 10)
	}
	return v.Name
}

// MarshalText renders the variant name so decoded values serialize as
// their symbolic form.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
