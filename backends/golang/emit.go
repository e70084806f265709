package golang

import (
	"sort"
	"strconv"

	"github.com/wippyai/structbind/errors"
	"github.com/wippyai/structbind/transcoder"
)

// scalar describes how a fixed-width kind is read and written.
type scalar struct {
	goType string
	get    string // expression over b
	put    string // statement over out and v
}

var scalars = map[transcoder.TypeKind]scalar{
	transcoder.KindU8:      {"uint8", "b[0]", "out[0] = v"},
	transcoder.KindS8:      {"int8", "int8(b[0])", "out[0] = byte(v)"},
	transcoder.KindU16:     {"uint16", "binary.NativeEndian.Uint16(b)", "binary.NativeEndian.PutUint16(out, v)"},
	transcoder.KindS16:     {"int16", "int16(binary.NativeEndian.Uint16(b))", "binary.NativeEndian.PutUint16(out, uint16(v))"},
	transcoder.KindU32:     {"uint32", "binary.NativeEndian.Uint32(b)", "binary.NativeEndian.PutUint32(out, v)"},
	transcoder.KindS32:     {"int32", "int32(binary.NativeEndian.Uint32(b))", "binary.NativeEndian.PutUint32(out, uint32(v))"},
	transcoder.KindU64:     {"uint64", "binary.NativeEndian.Uint64(b)", "binary.NativeEndian.PutUint64(out, v)"},
	transcoder.KindS64:     {"int64", "int64(binary.NativeEndian.Uint64(b))", "binary.NativeEndian.PutUint64(out, uint64(v))"},
	transcoder.KindPointer: {"uint64", "binary.NativeEndian.Uint64(b)", "binary.NativeEndian.PutUint64(out, v)"},
	transcoder.KindU128:    {"[2]uint64", "getUint128(b)", "putUint128(out, v)"},
	transcoder.KindS128:    {"[2]uint64", "getUint128(b)", "putUint128(out, v)"},
	transcoder.KindF32:     {"float32", "math.Float32frombits(binary.NativeEndian.Uint32(b))", "binary.NativeEndian.PutUint32(out, math.Float32bits(v))"},
	transcoder.KindF64:     {"float64", "math.Float64frombits(binary.NativeEndian.Uint64(b))", "binary.NativeEndian.PutUint64(out, math.Float64bits(v))"},
}

// enum storage by size: Go type and the unsigned read/write pair.
var enumWidths = map[uint32]struct{ goType, get, put string }{
	1: {"int8", "int8(b[0])", "out[0] = byte(v)"},
	2: {"int16", "int16(binary.NativeEndian.Uint16(b))", "binary.NativeEndian.PutUint16(out, uint16(v))"},
	4: {"int32", "int32(binary.NativeEndian.Uint32(b))", "binary.NativeEndian.PutUint32(out, uint32(v))"},
	8: {"int64", "int64(binary.NativeEndian.Uint64(b))", "binary.NativeEndian.PutUint64(out, uint64(v))"},
}

func (g *generator) generateUnit(p printFn, u *transcoder.Unit) error {
	ct := u.Type
	typ := g.types[uint32(u.ID)]

	switch ct.Kind {
	case transcoder.KindBool:
		g.generateBool(p, u, typ)
	case transcoder.KindU8, transcoder.KindS8, transcoder.KindU16, transcoder.KindS16,
		transcoder.KindU32, transcoder.KindS32, transcoder.KindU64, transcoder.KindS64,
		transcoder.KindU128, transcoder.KindS128, transcoder.KindF32, transcoder.KindF64,
		transcoder.KindPointer:
		g.generateScalar(p, u, typ)
	case transcoder.KindText:
		g.generateText(p, u, typ)
	case transcoder.KindArray:
		g.generateArray(p, u, typ)
	case transcoder.KindEnum:
		return g.generateEnum(p, u, typ)
	case transcoder.KindStruct:
		return g.generateStruct(p, u, typ)
	default:
		return errors.New(errors.PhaseEmit, errors.KindUnsupportedType).
			Type(u.Name).
			Detail("no Go representation for kind %s", ct.Kind).
			Build()
	}
	return nil
}

func generateLengthCheck(p printFn, u *transcoder.Unit, zero string) {
	p("\tif len(b) != %d {", u.Type.Size)
	p("\t\treturn %s, fmt.Errorf(\"%s: %%w: want %d bytes, got %%d\", ErrLength, len(b))", zero, u.Name, u.Type.Size)
	p("\t}")
}

func (g *generator) generateBool(p printFn, u *transcoder.Unit, typ string) {
	p("type %s = bool", typ)
	p("")
	p("func %s(b []byte) (%s, error) {", decodeFunc(typ), typ)
	generateLengthCheck(p, u, "false")
	p("\treturn b[0] == 1, nil")
	p("}")
	p("")
	p("func %s(v %s) ([]byte, error) {", encodeFunc(typ), typ)
	p("\tout := make([]byte, 1)")
	p("\tif v {")
	p("\t\tout[0] = 1")
	p("\t}")
	p("\treturn out, nil")
	p("}")
	p("")
}

func (g *generator) generateScalar(p printFn, u *transcoder.Unit, typ string) {
	s := scalars[u.Type.Kind]
	zero := "0"
	if u.Type.Kind == transcoder.KindU128 || u.Type.Kind == transcoder.KindS128 {
		g.wide = true
		zero = typ + "{}"
	}

	p("type %s = %s", typ, s.goType)
	p("")
	p("func %s(b []byte) (%s, error) {", decodeFunc(typ), typ)
	generateLengthCheck(p, u, zero)
	p("\treturn %s, nil", s.get)
	p("}")
	p("")
	p("func %s(v %s) ([]byte, error) {", encodeFunc(typ), typ)
	p("\tout := make([]byte, %d)", u.Type.Size)
	p("\t%s", s.put)
	p("\treturn out, nil")
	p("}")
	p("")
}

func (g *generator) generateText(p printFn, u *transcoder.Unit, typ string) {
	capacity := u.Type.Count
	p("// %s holds at most %d bytes plus a zero terminator.", typ, max(int(capacity)-1, 0))
	p("type %s = string", typ)
	p("")
	p("func %s(b []byte) (%s, error) {", decodeFunc(typ), typ)
	generateLengthCheck(p, u, `""`)
	p("\tn := bytes.IndexByte(b, 0)")
	p("\tif n < 0 {")
	p("\t\treturn \"\", fmt.Errorf(\"%s: %%w\", ErrMissingTerminator)", u.Name)
	p("\t}")
	p("\tif !utf8.Valid(b[:n]) {")
	p("\t\treturn \"\", fmt.Errorf(\"%s: %%w\", ErrInvalidText)", u.Name)
	p("\t}")
	p("\treturn string(b[:n]), nil")
	p("}")
	p("")
	p("func %s(v %s) ([]byte, error) {", encodeFunc(typ), typ)
	p("\tif len(v)+1 > %d {", capacity)
	p("\t\treturn nil, fmt.Errorf(\"%s: %%w: %%d bytes, only %d allowed\", ErrTextTooLong, len(v))", u.Name, max(int(capacity)-1, 0))
	p("\t}")
	p("\tout := make([]byte, %d)", capacity)
	p("\tcopy(out, v)")
	p("\treturn out, nil")
	p("}")
	p("")
}

func (g *generator) generateArray(p printFn, u *transcoder.Unit, typ string) {
	ct := u.Type
	elem := g.types[ct.Elem.ID]
	es := ct.Elem.Size

	p("type %s = [%d]%s", typ, ct.Count, elem)
	p("")
	p("func %s(b []byte) (%s, error) {", decodeFunc(typ), typ)
	p("\tvar v %s", typ)
	generateLengthCheck(p, u, "v")
	p("\tvar err error")
	p("\tfor i := range v {")
	p("\t\tif v[i], err = %s(b[i*%d : (i+1)*%d]); err != nil {", decodeFunc(elem), es, es)
	p("\t\t\treturn v, fmt.Errorf(\"[%%d]: %%w\", i, err)")
	p("\t\t}")
	p("\t}")
	p("\treturn v, nil")
	p("}")
	p("")
	p("func %s(v %s) ([]byte, error) {", encodeFunc(typ), typ)
	p("\tout := make([]byte, %d)", ct.Size)
	p("\tfor i := range v {")
	p("\t\teb, err := %s(v[i])", encodeFunc(elem))
	p("\t\tif err != nil {")
	p("\t\t\treturn nil, fmt.Errorf(\"[%%d]: %%w\", i, err)")
	p("\t\t}")
	p("\t\tcopy(out[i*%d:], eb)", es)
	p("\t}")
	p("\treturn out, nil")
	p("}")
	p("")
}

func (g *generator) generateEnum(p printFn, u *transcoder.Unit, typ string) error {
	ct := u.Type
	w, ok := enumWidths[ct.Size]
	if !ok {
		return errors.UnsupportedEnumSize(u.Name, ct.Decl, ct.Size)
	}

	prefix := typ
	for _, pub := range g.publics {
		if pub.p.Unit == u {
			prefix = pub.alias
		}
	}

	p("type %s %s", typ, w.goType)
	p("")
	if len(ct.Cases) > 0 {
		p("const (")
		for _, c := range ct.Cases {
			p("\t%s%s %s = %d", prefix, exportedName(c.Name), typ, c.Value)
		}
		p(")")
		p("")
	}

	// duplicate values are legal in the catalog but not in a case list
	seen := make(map[int64]bool)
	var values []int64
	for _, c := range ct.Cases {
		if !seen[c.Value] {
			seen[c.Value] = true
			values = append(values, c.Value)
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	check := func(ret string) {
		if len(values) > 0 {
			p("\tswitch v {")
			p("\tcase %s:", joinValues(values))
			p("\tdefault:")
			p("\t\treturn %s, fmt.Errorf(\"%s: %%w: %%d\", ErrInvalidEnumValue, v)", ret, u.Name)
			p("\t}")
			return
		}
		p("\treturn %s, fmt.Errorf(\"%s: %%w: %%d\", ErrInvalidEnumValue, v)", ret, u.Name)
	}

	p("func %s(b []byte) (%s, error) {", decodeFunc(typ), typ)
	generateLengthCheck(p, u, "0")
	p("\tv := %s(%s)", typ, w.get)
	check("v")
	if len(values) > 0 {
		p("\treturn v, nil")
	}
	p("}")
	p("")
	p("func %s(v %s) ([]byte, error) {", encodeFunc(typ), typ)
	check("nil")
	if len(values) > 0 {
		p("\tout := make([]byte, %d)", ct.Size)
		p("\t%s", w.put)
		p("\treturn out, nil")
	}
	p("}")
	p("")
	return nil
}

func joinValues(values []int64) string {
	var b []byte
	for i, v := range values {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = strconv.AppendInt(b, v, 10)
	}
	return string(b)
}

func (g *generator) generateStruct(p printFn, u *transcoder.Unit, typ string) error {
	ct := u.Type
	fields := make(scope)
	names := make([]string, len(ct.Fields))
	for i, f := range ct.Fields {
		names[i] = exportedName(f.Key)
		if err := fields.declare(names[i], u.Name+"."+f.Key); err != nil {
			return err
		}
	}

	if ct.Decl != "" {
		p("// %s is struct %s.", typ, ct.Decl)
	}
	p("type %s struct {", typ)
	for i, f := range ct.Fields {
		p("\t%s %s `btf:%q`", names[i], g.types[f.Type.ID], f.Key)
	}
	p("}")
	p("")

	p("func %s(b []byte) (%s, error) {", decodeFunc(typ), typ)
	p("\tvar v %s", typ)
	generateLengthCheck(p, u, "v")
	if len(ct.Fields) > 0 {
		p("\tvar err error")
	}
	for i, f := range ct.Fields {
		ft := g.types[f.Type.ID]
		p("\tif v.%s, err = %s(b[%d:%d]); err != nil {", names[i], decodeFunc(ft), f.Offset, f.Offset+f.Size)
		p("\t\treturn v, fmt.Errorf(\"%s: %%w\", err)", f.Key)
		p("\t}")
	}
	p("\treturn v, nil")
	p("}")
	p("")

	p("func %s(v %s) ([]byte, error) {", encodeFunc(typ), typ)
	p("\tout := make([]byte, %d)", ct.Size)
	if len(ct.Fields) > 0 {
		p("\tvar (")
		p("\t\tfb  []byte")
		p("\t\terr error")
		p("\t)")
	}
	for i, f := range ct.Fields {
		ft := g.types[f.Type.ID]
		p("\tif fb, err = %s(v.%s); err != nil {", encodeFunc(ft), names[i])
		p("\t\treturn nil, fmt.Errorf(\"%s: %%w\", err)", f.Key)
		p("\t}")
		p("\tcopy(out[%d:%d], fb)", f.Offset, f.Offset+f.Size)
	}
	p("\treturn out, nil")
	p("}")
	p("")
	return nil
}
