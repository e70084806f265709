package transcoder

import (
	"reflect"
	"strconv"

	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
	"github.com/wippyai/structbind/transcoder/internal/layout"
)

// compileStruct places every member inside the declared size. The member
// codec comes from the qualifier-resolved type, the member size from the
// size of the type as written.
func (c *Compiler) compileStruct(id catalog.TypeID, d *catalog.Struct) (*CompiledType, error) {
	label := d.Name
	if label == "" {
		label = RepresentationName(id)
	}

	fields := make([]CompiledField, 0, len(d.Members))
	for i, m := range d.Members {
		key := m.Name
		if key == "" {
			key = "_" + strconv.Itoa(i)
		}

		resolved, _, err := ResolveQualifiers(c.cat, m.Type)
		if err != nil {
			return nil, errors.Prefix(err, key)
		}
		ft, err := c.Compile(resolved)
		if err != nil {
			return nil, errors.Prefix(err, key)
		}
		size, err := c.sizes.Resolve(m.Type)
		if err != nil {
			return nil, errors.Prefix(err, key)
		}
		if size != ft.Size {
			return nil, errors.MalformedTypeGraph("member %q of %s has size %d but %s has size %d",
				key, label, size, ft.Name, ft.Size)
		}

		p, err := layout.Place(label, d.Size, layout.Member{
			Name:      key,
			BitOffset: m.BitOffset,
			BitSize:   m.BitSize,
			Size:      size,
		})
		if err != nil {
			return nil, err
		}

		fields = append(fields, CompiledField{
			Type:   ft,
			Name:   m.Name,
			Key:    key,
			TypeID: uint32(m.Type),
			Offset: p.Offset,
			Size:   p.Size,
		})
	}

	return &CompiledType{Kind: KindStruct, Size: d.Size, Fields: fields}, nil
}

func decodeStruct(ct *CompiledType, b []byte, path []string) (any, error) {
	out := make(map[string]any, len(ct.Fields))
	for i := range ct.Fields {
		f := &ct.Fields[i]
		v, err := decodeValue(f.Type, b[f.Offset:f.Offset+f.Size], childPath(path, f.Key))
		if err != nil {
			return nil, err
		}
		out[f.Key] = v
	}
	return out, nil
}

// encodeStruct zero-fills dst and writes each member at its offset, so
// padding is always zero. Keys without a member are ignored.
func encodeStruct(ct *CompiledType, v any, dst []byte, path []string) error {
	lookup, ok := structLookup(v)
	if !ok {
		return mismatch(errors.PhaseEncode, ct, v, path)
	}

	clear(dst)
	for i := range ct.Fields {
		f := &ct.Fields[i]
		fv, ok := lookup(f.Key)
		if !ok {
			return errors.FieldMissing(errors.PhaseEncode, path, f.Key)
		}
		if err := encodeValue(f.Type, fv, dst[f.Offset:f.Offset+f.Size], childPath(path, f.Key)); err != nil {
			return err
		}
	}
	return nil
}

func structLookup(v any) (func(string) (any, bool), bool) {
	if m, ok := v.(map[string]any); ok {
		return func(k string) (any, bool) {
			fv, ok := m[k]
			return fv, ok
		}, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	keyType := rv.Type().Key()
	return func(k string) (any, bool) {
		fv := rv.MapIndex(reflect.ValueOf(k).Convert(keyType))
		if !fv.IsValid() {
			return nil, false
		}
		return fv.Interface(), true
	}, true
}
