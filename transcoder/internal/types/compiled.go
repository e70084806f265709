package types

import (
	"reflect"
	"sync"
)

// CompiledType is the representation of one catalog type: its kind, its
// declared size and, for aggregates, the layout of its parts.
type CompiledType struct {
	Elem   *CompiledType
	Cases  []Case
	Fields []Field
	Name   string // representation name, btf_type_<id>
	Decl   string // declared name, empty when anonymous
	ID     uint32
	ElemID uint32
	Size   uint32
	Count  uint32
	Kind   Kind

	bindings sync.Map // reflect.Type -> []int
}

type Field struct {
	Type   *CompiledType
	Name   string // declared member name
	Key    string // value key, "_<index>" for anonymous members
	TypeID uint32
	Offset uint32
	Size   uint32
}

type Case struct {
	Name  string
	Value int64
}

func (ct *CompiledType) IsPrimitive() bool {
	return ct.Kind.IsPrimitive()
}

// CaseByValue returns the first case declared with v.
func (ct *CompiledType) CaseByValue(v int64) (Case, bool) {
	for _, c := range ct.Cases {
		if c.Value == v {
			return c, true
		}
	}
	return Case{}, false
}

func (ct *CompiledType) CaseByName(name string) (Case, bool) {
	for _, c := range ct.Cases {
		if c.Name == name {
			return c, true
		}
	}
	return Case{}, false
}

func (ct *CompiledType) FieldByKey(key string) (*Field, bool) {
	for i := range ct.Fields {
		if ct.Fields[i].Key == key {
			return &ct.Fields[i], true
		}
	}
	return nil, false
}

// Binding returns the Go field index of each field for goType, calling
// build on first use. The memo lives and dies with the compiled type.
func (ct *CompiledType) Binding(goType reflect.Type, build func() []int) []int {
	if v, ok := ct.bindings.Load(goType); ok {
		return v.([]int)
	}
	v, _ := ct.bindings.LoadOrStore(goType, build())
	return v.([]int)
}
