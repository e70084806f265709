package transcoder

import (
	"reflect"

	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
	"github.com/wippyai/structbind/transcoder/internal/abi"
)

// compileEnum maps the enum size to a signed integer width. Duplicate
// values are kept; decoding reports the first declared variant.
func (c *Compiler) compileEnum(id catalog.TypeID, d *catalog.Enum) (*CompiledType, error) {
	switch d.Size {
	case 1, 2, 4, 8:
	default:
		return nil, errors.UnsupportedEnumSize(RepresentationName(id), d.Name, d.Size)
	}

	cases := make([]CompiledCase, len(d.Values))
	for i, v := range d.Values {
		if !abi.Fits(v.Value, int(d.Size)) {
			return nil, errors.MalformedTypeGraph("enum %s variant %s value %d does not fit %d bytes",
				enumLabel(d.Name, id), v.Name, v.Value, d.Size)
		}
		cases[i] = CompiledCase{Name: v.Name, Value: v.Value}
	}

	return &CompiledType{Kind: KindEnum, Size: d.Size, Cases: cases}, nil
}

func enumLabel(name string, id catalog.TypeID) string {
	if name != "" {
		return name
	}
	return RepresentationName(id)
}

func decodeEnum(ct *CompiledType, b []byte, path []string) (any, error) {
	v := abi.Int(b)
	c, ok := ct.CaseByValue(v)
	if !ok {
		return nil, errors.InvalidEnumValue(errors.PhaseDecode, path, v, enumLabel(ct.Decl, catalog.TypeID(ct.ID)))
	}
	return Variant{Name: c.Name, Value: c.Value}, nil
}

// encodeEnum accepts a Variant, a variant name or a declared integer value.
func encodeEnum(ct *CompiledType, v any, dst []byte, path []string) error {
	var (
		c     CompiledCase
		found bool
	)

	switch x := v.(type) {
	case Variant:
		if x.Name != "" {
			c, found = ct.CaseByName(x.Name)
		} else {
			c, found = ct.CaseByValue(x.Value)
		}
	case *Variant:
		if x == nil {
			return mismatch(errors.PhaseEncode, ct, v, path)
		}
		return encodeEnum(ct, *x, dst, path)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.String {
			c, found = ct.CaseByName(rv.String())
			break
		}
		i, ok := abi.Signed(v, 64)
		if !ok {
			return mismatch(errors.PhaseEncode, ct, v, path)
		}
		c, found = ct.CaseByValue(i)
	}

	if !found {
		return errors.InvalidEnumValue(errors.PhaseEncode, path, v, enumLabel(ct.Decl, catalog.TypeID(ct.ID)))
	}
	abi.PutUint(dst, uint64(c.Value))
	return nil
}
