package transcoder

import (
	"math"

	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
	"github.com/wippyai/structbind/transcoder/internal/abi"
)

func (c *Compiler) compileFloat(d *catalog.Float) (*CompiledType, error) {
	switch d.Size {
	case 4:
		return &CompiledType{Kind: KindF32, Size: 4}, nil
	case 8:
		return &CompiledType{Kind: KindF64, Size: 8}, nil
	}
	return nil, errors.UnsupportedFloatSize(d.Name, d.Size)
}

// Floats are copied bit for bit; NaN payloads survive a round trip.
func decodeFloat(ct *CompiledType, b []byte) any {
	if ct.Kind == KindF32 {
		return math.Float32frombits(uint32(abi.Uint(b)))
	}
	return math.Float64frombits(abi.Uint(b))
}

func encodeFloat(ct *CompiledType, v any, dst []byte, path []string) error {
	if ct.Kind == KindF32 {
		if f, ok := v.(float32); ok {
			abi.PutUint(dst, uint64(math.Float32bits(f)))
			return nil
		}
		f, ok := abi.Float(v)
		if !ok {
			return mismatch(errors.PhaseEncode, ct, v, path)
		}
		narrow := float32(f)
		if math.IsInf(float64(narrow), 0) && !math.IsInf(f, 0) {
			return outOfRange(ct, v, path)
		}
		abi.PutUint(dst, uint64(math.Float32bits(narrow)))
		return nil
	}

	f, ok := abi.Float(v)
	if !ok {
		return mismatch(errors.PhaseEncode, ct, v, path)
	}
	abi.PutUint(dst, math.Float64bits(f))
	return nil
}
