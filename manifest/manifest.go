package manifest

import (
	"github.com/wippyai/structbind/transcoder"
)

// Version is bumped whenever the manifest layout changes.
const Version = 1

// Manifest describes a generated bundle without its codecs.
type Manifest struct {
	Units   []Unit     `json:"units" yaml:"units" msgpack:"units"`
	Public  []Artifact `json:"public" yaml:"public" msgpack:"public"`
	Version int        `json:"version" yaml:"version" msgpack:"version"`
}

type Unit struct {
	Name     string    `json:"name" yaml:"name" msgpack:"name"`
	Decode   string    `json:"decode" yaml:"decode" msgpack:"decode"`
	Encode   string    `json:"encode" yaml:"encode" msgpack:"encode"`
	Kind     string    `json:"kind" yaml:"kind" msgpack:"kind"`
	Declared string    `json:"declared,omitempty" yaml:"declared,omitempty" msgpack:"declared,omitempty"`
	Elem     string    `json:"elem,omitempty" yaml:"elem,omitempty" msgpack:"elem,omitempty"`
	Fields   []Field   `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
	Variants []Variant `json:"variants,omitempty" yaml:"variants,omitempty" msgpack:"variants,omitempty"`
	ID       uint32    `json:"id" yaml:"id" msgpack:"id"`
	Size     uint32    `json:"size" yaml:"size" msgpack:"size"`
	Count    uint32    `json:"count,omitempty" yaml:"count,omitempty" msgpack:"count,omitempty"`
}

type Field struct {
	Key    string `json:"key" yaml:"key" msgpack:"key"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Type   string `json:"type" yaml:"type" msgpack:"type"`
	Offset uint32 `json:"offset" yaml:"offset" msgpack:"offset"`
	Size   uint32 `json:"size" yaml:"size" msgpack:"size"`
}

type Variant struct {
	Name  string `json:"name" yaml:"name" msgpack:"name"`
	Value int64  `json:"value" yaml:"value" msgpack:"value"`
}

// Artifact is a public name bound to a unit.
type Artifact struct {
	Name string `json:"name" yaml:"name" msgpack:"name"`
	Unit string `json:"unit" yaml:"unit" msgpack:"unit"`
	Kind string `json:"kind" yaml:"kind" msgpack:"kind"`
}

// Build describes every unit and public artifact of b, in bundle order.
func Build(b *transcoder.Bundle) *Manifest {
	m := &Manifest{
		Version: Version,
		Units:   make([]Unit, 0, len(b.Internal)),
		Public:  make([]Artifact, 0, len(b.Public)),
	}
	for _, u := range b.Internal {
		m.Units = append(m.Units, describe(u))
	}
	for _, p := range b.Public {
		m.Public = append(m.Public, Artifact{
			Name: p.Name,
			Unit: p.Unit.Name,
			Kind: p.Kind().String(),
		})
	}
	return m
}

func describe(u *transcoder.Unit) Unit {
	ct := u.Type
	out := Unit{
		ID:       uint32(u.ID),
		Name:     u.Name,
		Decode:   u.DecodeName,
		Encode:   u.EncodeName,
		Kind:     ct.Kind.String(),
		Declared: ct.Decl,
		Size:     ct.Size,
	}

	switch ct.Kind {
	case transcoder.KindText:
		out.Count = ct.Count
	case transcoder.KindArray:
		out.Count = ct.Count
		out.Elem = ct.Elem.Name
	case transcoder.KindStruct:
		out.Fields = make([]Field, len(ct.Fields))
		for i, f := range ct.Fields {
			out.Fields[i] = Field{
				Key:    f.Key,
				Name:   f.Name,
				Type:   f.Type.Name,
				Offset: f.Offset,
				Size:   f.Size,
			}
		}
	case transcoder.KindEnum:
		out.Variants = make([]Variant, len(ct.Cases))
		for i, c := range ct.Cases {
			out.Variants[i] = Variant{Name: c.Name, Value: c.Value}
		}
	}
	return out
}

// Unit returns the unit described under a representation name.
func (m *Manifest) Unit(name string) (Unit, bool) {
	for _, u := range m.Units {
		if u.Name == name {
			return u, true
		}
	}
	return Unit{}, false
}
