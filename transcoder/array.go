package transcoder

import (
	"bytes"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
	"github.com/wippyai/structbind/transcoder/internal/layout"
)

// IsText reports whether an array of d is a zero-terminated string: the
// element is an 8-bit integer with char encoding or a name ending in "char".
func IsText(d catalog.Descriptor) bool {
	i, ok := d.(*catalog.Int)
	if !ok || i.Bits != 8 {
		return false
	}
	return i.Encoding == catalog.Char || strings.HasSuffix(i.Name, "char")
}

func (c *Compiler) compileArray(id catalog.TypeID, d *catalog.Array) (*CompiledType, error) {
	elemID, elemDesc, err := ResolveQualifiers(c.cat, d.Elem)
	if err != nil {
		return nil, err
	}

	if IsText(elemDesc) {
		return &CompiledType{
			Kind:   KindText,
			ElemID: uint32(elemID),
			Count:  d.Count,
			Size:   d.Count,
		}, nil
	}

	elem, err := c.Compile(elemID)
	if err != nil {
		return nil, err
	}
	elemSize, err := c.sizes.Resolve(d.Elem)
	if err != nil {
		return nil, err
	}
	if elemSize != elem.Size {
		return nil, errors.MalformedTypeGraph("array %d element size %d disagrees with %s size %d",
			id, elemSize, elem.Name, elem.Size)
	}
	size, err := layout.Array(RepresentationName(id), d.Count, elemSize)
	if err != nil {
		return nil, err
	}

	return &CompiledType{
		Kind:   KindArray,
		Elem:   elem,
		ElemID: uint32(elemID),
		Count:  d.Count,
		Size:   size,
	}, nil
}

func decodeText(b []byte, path []string) (any, error) {
	n := bytes.IndexByte(b, 0)
	if n < 0 {
		return nil, errors.MissingTerminator(path, len(b))
	}
	if !utf8.Valid(b[:n]) {
		return nil, errors.InvalidText(errors.PhaseDecode, path, b[:n])
	}
	return string(b[:n]), nil
}

// encodeText writes the string, one zero byte and zero padding. The string
// plus its terminator must fit the capacity.
func encodeText(ct *CompiledType, v any, dst []byte, path []string) error {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.String {
			return mismatch(errors.PhaseEncode, ct, v, path)
		}
		s = rv.String()
	}

	if len(s)+1 > len(dst) {
		return errors.TextTooLong(path, len(s), len(dst))
	}
	n := copy(dst, s)
	clear(dst[n:])
	return nil
}

func decodeArray(ct *CompiledType, b []byte, path []string) (any, error) {
	es := ct.Elem.Size
	out := make([]any, ct.Count)
	for i := range out {
		off := uint32(i) * es
		v, err := decodeValue(ct.Elem, b[off:off+es], indexPath(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func encodeArray(ct *CompiledType, v any, dst []byte, path []string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return mismatch(errors.PhaseEncode, ct, v, path)
	}
	if rv.Len() != int(ct.Count) {
		return errors.LengthMismatch(errors.PhaseEncode, path, ct.Name, int(ct.Count), rv.Len())
	}

	es := ct.Elem.Size
	for i := 0; i < rv.Len(); i++ {
		off := uint32(i) * es
		if err := encodeValue(ct.Elem, rv.Index(i).Interface(), dst[off:off+es], indexPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}
