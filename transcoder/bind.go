package transcoder

import (
	"math/big"
	"reflect"
	"strings"

	"github.com/wippyai/structbind/errors"
	"github.com/wippyai/structbind/transcoder/internal/abi"
)

var (
	variantType = reflect.TypeOf(Variant{})
	bigIntType  = reflect.TypeOf((*big.Int)(nil))
)

// Unmarshal decodes b into the Go value dst points to. Struct members are
// matched by `btf:"name"` tag, otherwise by name ignoring case and
// underscores. Members without a Go field are skipped.
func (p *Public) Unmarshal(b []byte, dst any) error {
	return p.Unit.Unmarshal(b, dst)
}

// Marshal encodes a Go value bound the same way as Unmarshal.
func (p *Public) Marshal(src any) ([]byte, error) {
	return p.Unit.Marshal(src)
}

func (u *Unit) Unmarshal(b []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.InvalidInput(errors.PhaseDecode, "Unmarshal needs a non-nil pointer, got "+abi.TypeName(dst))
	}
	v, err := u.Decode(b)
	if err != nil {
		return err
	}
	return assign(rv.Elem(), u.Type, v, nil)
}

func (u *Unit) Marshal(src any) ([]byte, error) {
	v, err := toDynamic(reflect.ValueOf(src), u.Type, nil)
	if err != nil {
		return nil, err
	}
	return u.Encode(v)
}

func assign(dst reflect.Value, ct *CompiledType, v any, path []string) error {
	if dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(dst.Elem(), ct, v, path)
	}
	if dst.Kind() == reflect.Interface && dst.NumMethod() == 0 {
		dst.Set(reflect.ValueOf(v))
		return nil
	}

	fail := func() error {
		return errors.TypeMismatch(errors.PhaseDecode, path, dst.Type().String(), ct.Name)
	}

	switch ct.Kind {
	case KindBool:
		if dst.Kind() != reflect.Bool {
			return fail()
		}
		dst.SetBool(v.(bool))
		return nil

	case KindU128, KindS128:
		rv := reflect.ValueOf(v)
		switch {
		case dst.Type() == rv.Type():
			dst.Set(rv)
		case dst.Type() == bigIntType:
			dst.Set(reflect.ValueOf(v.(interface{ Big() *big.Int }).Big()))
		case dst.Kind() == reflect.String:
			dst.SetString(v.(interface{ String() string }).String())
		default:
			return fail()
		}
		return nil

	case KindF32, KindF64:
		if dst.Kind() != reflect.Float32 && dst.Kind() != reflect.Float64 {
			return fail()
		}
		dst.SetFloat(reflect.ValueOf(v).Float())
		return nil

	case KindText:
		switch {
		case dst.Kind() == reflect.String:
			dst.SetString(v.(string))
		case dst.Kind() == reflect.Slice && dst.Type().Elem().Kind() == reflect.Uint8:
			dst.SetBytes([]byte(v.(string)))
		default:
			return fail()
		}
		return nil

	case KindArray:
		elems := v.([]any)
		switch dst.Kind() {
		case reflect.Slice:
			dst.Set(reflect.MakeSlice(dst.Type(), len(elems), len(elems)))
		case reflect.Array:
			if dst.Len() != len(elems) {
				return fail()
			}
		default:
			return fail()
		}
		for i, e := range elems {
			if err := assign(dst.Index(i), ct.Elem, e, indexPath(path, i)); err != nil {
				return err
			}
		}
		return nil

	case KindEnum:
		variant := v.(Variant)
		switch {
		case dst.Type() == variantType:
			dst.Set(reflect.ValueOf(variant))
			return nil
		case dst.Kind() == reflect.String:
			dst.SetString(variant.Name)
			return nil
		}
		return assignInteger(dst, variant.Value, fail)

	case KindStruct:
		m := v.(map[string]any)
		switch dst.Kind() {
		case reflect.Map:
			if dst.Type().Key().Kind() != reflect.String {
				return fail()
			}
			rv := reflect.ValueOf(m)
			if !rv.Type().AssignableTo(dst.Type()) {
				return fail()
			}
			dst.Set(rv)
			return nil
		case reflect.Struct:
			index := fieldIndex(dst.Type(), ct)
			for i := range ct.Fields {
				if index[i] < 0 {
					continue
				}
				f := &ct.Fields[i]
				if err := assign(dst.Field(index[i]), f.Type, m[f.Key], childPath(path, f.Key)); err != nil {
					return err
				}
			}
			return nil
		}
		return fail()
	}

	return assignInteger(dst, v, fail)
}

func assignInteger(dst reflect.Value, v any, fail func() error) error {
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := abi.Signed(v, uint(dst.Type().Bits()))
		if !ok {
			return fail()
		}
		dst.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, ok := abi.Unsigned(v, uint(dst.Type().Bits()))
		if !ok {
			return fail()
		}
		dst.SetUint(u)
		return nil
	}
	return fail()
}

// toDynamic converts a Go value to the dynamic form the encoders accept.
// Scalars pass through; the encoders coerce them.
func toDynamic(src reflect.Value, ct *CompiledType, path []string) (any, error) {
	for src.Kind() == reflect.Pointer || src.Kind() == reflect.Interface {
		if src.IsNil() {
			return nil, errors.TypeMismatch(errors.PhaseEncode, path, src.Type().String(), ct.Name)
		}
		src = src.Elem()
	}
	if !src.IsValid() {
		return nil, errors.TypeMismatch(errors.PhaseEncode, path, "nil", ct.Name)
	}

	switch ct.Kind {
	case KindStruct:
		if src.Kind() != reflect.Struct {
			return src.Interface(), nil
		}
		index := fieldIndex(src.Type(), ct)
		out := make(map[string]any, len(ct.Fields))
		for i := range ct.Fields {
			f := &ct.Fields[i]
			if index[i] < 0 {
				return nil, errors.FieldMissing(errors.PhaseEncode, path, f.Key)
			}
			fv, err := toDynamic(src.Field(index[i]), f.Type, childPath(path, f.Key))
			if err != nil {
				return nil, err
			}
			out[f.Key] = fv
		}
		return out, nil

	case KindArray:
		if src.Kind() != reflect.Slice && src.Kind() != reflect.Array {
			return src.Interface(), nil
		}
		out := make([]any, src.Len())
		for i := range out {
			ev, err := toDynamic(src.Index(i), ct.Elem, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	}

	return src.Interface(), nil
}

// fieldIndex returns, per compiled field, the index of the matching field
// of Go struct type t, or -1 when t has none.
func fieldIndex(t reflect.Type, ct *CompiledType) []int {
	return ct.Binding(t, func() []int {
		index := make([]int, len(ct.Fields))
		for i := range ct.Fields {
			index[i] = matchField(t, &ct.Fields[i])
		}
		return index
	})
}

func matchField(t reflect.Type, f *CompiledField) int {
	byName := -1
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if tag, ok := sf.Tag.Lookup("btf"); ok {
			if tag == "-" {
				continue
			}
			if tag == f.Name || tag == f.Key {
				return i
			}
			continue
		}
		if byName < 0 && normalize(sf.Name) == normalize(f.Key) {
			byName = i
		}
	}
	return byName
}

func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}
