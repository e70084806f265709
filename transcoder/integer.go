package transcoder

import (
	"fmt"
	"math/big"

	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
	"github.com/wippyai/structbind/transcoder/internal/abi"
)

// intKind maps a width and encoding to a codec kind. Only byte multiples are
// supported; an 8-bit char decodes as an unsigned byte.
func intKind(d *catalog.Int) (TypeKind, error) {
	if d.Bits%8 != 0 {
		return 0, errors.UnsupportedBitfield(d.Name, fmt.Sprintf("integer of %d bits", d.Bits))
	}

	switch d.Encoding {
	case catalog.Bool:
		if d.Bits == 8 {
			return KindBool, nil
		}
	case catalog.Char:
		if d.Bits == 8 {
			return KindU8, nil
		}
	case catalog.Signed:
		switch d.Bits {
		case 8:
			return KindS8, nil
		case 16:
			return KindS16, nil
		case 32:
			return KindS32, nil
		case 64:
			return KindS64, nil
		case 128:
			return KindS128, nil
		}
	case catalog.Unsigned:
		switch d.Bits {
		case 8:
			return KindU8, nil
		case 16:
			return KindU16, nil
		case 32:
			return KindU32, nil
		case 64:
			return KindU64, nil
		case 128:
			return KindU128, nil
		}
	}

	return 0, errors.UnsupportedIntegerEncoding(d.Name, d.Bits, d.Encoding.String())
}

func (c *Compiler) compileInt(d *catalog.Int) (*CompiledType, error) {
	kind, err := intKind(d)
	if err != nil {
		return nil, err
	}
	return &CompiledType{Kind: kind, Size: d.Bits / 8}, nil
}

func decodeInt(ct *CompiledType, b []byte) any {
	switch ct.Kind {
	case KindBool:
		return b[0] == 1
	case KindU8:
		return b[0]
	case KindS8:
		return int8(b[0])
	case KindU16:
		return uint16(abi.Uint(b))
	case KindS16:
		return int16(abi.Int(b))
	case KindU32:
		return uint32(abi.Uint(b))
	case KindS32:
		return int32(abi.Int(b))
	case KindU64:
		return abi.Uint(b)
	case KindS64:
		return abi.Int(b)
	case KindU128:
		lo, hi := abi.Uint128(b)
		return Uint128{Lo: lo, Hi: hi}
	case KindS128:
		lo, hi := abi.Uint128(b)
		return Int128{Lo: lo, Hi: int64(hi)}
	}
	panic("transcoder: decodeInt on " + ct.Kind.String())
}

func encodeInt(ct *CompiledType, v any, dst []byte, path []string) error {
	switch ct.Kind {
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return mismatch(errors.PhaseEncode, ct, v, path)
		}
		dst[0] = 0
		if b {
			dst[0] = 1
		}
		return nil

	case KindU128:
		u, ok := toUint128(v)
		if !ok {
			return outOfRange(ct, v, path)
		}
		abi.PutUint128(dst, u.Lo, u.Hi)
		return nil

	case KindS128:
		i, ok := toInt128(v)
		if !ok {
			return outOfRange(ct, v, path)
		}
		abi.PutUint128(dst, i.Lo, uint64(i.Hi))
		return nil
	}

	bits := uint(ct.Size) * 8
	if ct.Kind.IsSigned() {
		i, ok := abi.Signed(v, bits)
		if !ok {
			return outOfRange(ct, v, path)
		}
		abi.PutUint(dst, uint64(i))
		return nil
	}

	u, ok := abi.Unsigned(v, bits)
	if !ok {
		return outOfRange(ct, v, path)
	}
	abi.PutUint(dst, u)
	return nil
}

func toUint128(v any) (Uint128, bool) {
	switch x := v.(type) {
	case Uint128:
		return x, true
	case Int128:
		if x.Hi < 0 {
			return Uint128{}, false
		}
		return Uint128{Lo: x.Lo, Hi: uint64(x.Hi)}, true
	case string:
		return ParseUint128(x)
	case *big.Int:
		if x == nil {
			return Uint128{}, false
		}
		return Uint128FromBig(x)
	}
	u, ok := abi.Unsigned(v, 64)
	return Uint128{Lo: u}, ok
}

func toInt128(v any) (Int128, bool) {
	switch x := v.(type) {
	case Int128:
		return x, true
	case Uint128:
		if x.Hi>>63 != 0 {
			return Int128{}, false
		}
		return Int128{Lo: x.Lo, Hi: int64(x.Hi)}, true
	case string:
		return ParseInt128(x)
	case *big.Int:
		if x == nil {
			return Int128{}, false
		}
		return Int128FromBig(x)
	}
	i, ok := abi.Signed(v, 64)
	return Int128{Lo: uint64(i), Hi: i >> 63}, ok
}
