package btfspec

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/cilium/ebpf/btf"

	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
)

// Load reads BTF from an ELF object with a .BTF section or from a raw BTF
// blob and converts it into a catalog table with the same type ids.
func Load(r io.ReaderAt) (*catalog.Table, error) {
	spec, err := btf.LoadSpecFromReader(r)
	if err != nil {
		return nil, errors.Load("cannot parse BTF", err)
	}
	return FromSpec(spec)
}

// FromSpec converts every type of spec, in id order.
func FromSpec(spec *btf.Spec) (*catalog.Table, error) {
	tbl := catalog.NewTable()
	c := converter{spec: spec}

	for id := btf.TypeID(1); ; id++ {
		typ, err := spec.TypeByID(id)
		if stderrors.Is(err, btf.ErrNotFound) {
			break
		}
		if err != nil {
			return nil, errors.Load(fmt.Sprintf("type %d", id), err)
		}

		d, err := c.convert(typ)
		if err != nil {
			return nil, errors.Load(fmt.Sprintf("type %d (%s)", id, typ.TypeName()), err)
		}
		if got := tbl.Add(d); uint32(got) != uint32(id) {
			return nil, errors.MalformedTypeGraph("BTF type %d stored as %d", id, got)
		}
	}

	return tbl, nil
}

type converter struct {
	spec *btf.Spec
}

func (c converter) id(t btf.Type) (catalog.TypeID, error) {
	if _, ok := t.(*btf.Void); ok || t == nil {
		return 0, nil
	}
	id, err := c.spec.TypeID(t)
	if err != nil {
		return 0, err
	}
	return catalog.TypeID(id), nil
}

func (c converter) convert(typ btf.Type) (catalog.Descriptor, error) {
	switch t := typ.(type) {
	case *btf.Int:
		return &catalog.Int{Name: t.Name, Bits: t.Size * 8, Encoding: intEncoding(t.Encoding)}, nil

	case *btf.Float:
		return &catalog.Float{Name: t.Name, Size: t.Size}, nil

	case *btf.Pointer:
		target, err := c.id(t.Target)
		if err != nil {
			return nil, err
		}
		return &catalog.Pointer{Target: target}, nil

	case *btf.Array:
		elem, err := c.id(t.Type)
		if err != nil {
			return nil, err
		}
		return &catalog.Array{Elem: elem, Count: t.Nelems}, nil

	case *btf.Struct:
		members := make([]catalog.Member, len(t.Members))
		for i, m := range t.Members {
			mt, err := c.id(m.Type)
			if err != nil {
				return nil, err
			}
			members[i] = catalog.Member{
				Name:      m.Name,
				Type:      mt,
				BitOffset: uint32(m.Offset),
				BitSize:   uint32(m.BitfieldSize),
			}
		}
		return &catalog.Struct{Name: t.Name, Size: t.Size, Members: members}, nil

	case *btf.Enum:
		values := make([]catalog.EnumValue, len(t.Values))
		for i, v := range t.Values {
			values[i] = catalog.EnumValue{Name: v.Name, Value: signExtend(v.Value, t.Size)}
		}
		return &catalog.Enum{Name: t.Name, Size: t.Size, Values: values}, nil

	case *btf.Typedef:
		return c.qualifier(catalog.Typedef, t.Name, t.Type)
	case *btf.Const:
		return c.qualifier(catalog.Const, "", t.Type)
	case *btf.Volatile:
		return c.qualifier(catalog.Volatile, "", t.Type)
	case *btf.Restrict:
		return c.qualifier(catalog.Restrict, "", t.Type)

	case *btf.Union:
		return &catalog.Other{Name: t.Name, What: "union"}, nil
	case *btf.Fwd:
		return &catalog.Other{Name: t.Name, What: "forward declaration"}, nil
	case *btf.Func:
		return &catalog.Other{Name: t.Name, What: "function"}, nil
	case *btf.FuncProto:
		return &catalog.Other{What: "function prototype"}, nil
	case *btf.Var:
		return &catalog.Other{Name: t.Name, What: "variable"}, nil
	case *btf.Datasec:
		return &catalog.Other{Name: t.Name, What: "data section"}, nil
	default:
		return &catalog.Other{Name: typ.TypeName(), What: fmt.Sprintf("%T", typ)}, nil
	}
}

func (c converter) qualifier(kind catalog.QualifierKind, name string, target btf.Type) (catalog.Descriptor, error) {
	id, err := c.id(target)
	if err != nil {
		return nil, err
	}
	return &catalog.Qualifier{Qual: kind, Name: name, Target: id}, nil
}

func intEncoding(e btf.IntEncoding) catalog.IntEncoding {
	switch {
	case e&btf.Bool != 0:
		return catalog.Bool
	case e&btf.Char != 0:
		return catalog.Char
	case e&btf.Signed != 0:
		return catalog.Signed
	}
	return catalog.Unsigned
}

// signExtend reinterprets the low size bytes of v as two's complement, so
// an unsigned 0xffffffff in a 4-byte enum reads back as -1.
func signExtend(v uint64, size uint32) int64 {
	if size == 0 || size >= 8 {
		return int64(v)
	}
	shift := 64 - 8*size
	return int64(v<<shift) >> shift
}
