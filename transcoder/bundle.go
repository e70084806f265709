package transcoder

import (
	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
)

type Visibility uint8

const (
	VisibilityInternal Visibility = iota
	VisibilityPublic
)

func (v Visibility) String() string {
	if v == VisibilityPublic {
		return "public"
	}
	return "internal"
}

// Unit is the codec for one catalog type. Units are immutable and safe for
// concurrent use.
type Unit struct {
	Type       *CompiledType
	Name       string
	DecodeName string
	EncodeName string
	ID         catalog.TypeID
}

func newUnit(id catalog.TypeID, ct *CompiledType) *Unit {
	dec, enc := OperationNames(id)
	return &Unit{
		Type:       ct,
		Name:       RepresentationName(id),
		DecodeName: dec,
		EncodeName: enc,
		ID:         id,
	}
}

func (u *Unit) Visibility() Visibility {
	return VisibilityInternal
}

func (u *Unit) Size() uint32 {
	return u.Type.Size
}

// Decode requires exactly Size bytes.
func (u *Unit) Decode(b []byte) (any, error) {
	return decodeValue(u.Type, b, nil)
}

// Encode always returns exactly Size bytes.
func (u *Unit) Encode(v any) ([]byte, error) {
	dst := make([]byte, u.Type.Size)
	if err := encodeValue(u.Type, v, dst, nil); err != nil {
		return nil, err
	}
	return dst, nil
}

// EncodeInto encodes v into dst, which must be exactly Size bytes long.
func (u *Unit) EncodeInto(dst []byte, v any) error {
	return encodeValue(u.Type, v, dst, nil)
}

// Public is the named artifact of a struct or enum.
type Public struct {
	Unit *Unit
	Name string
}

func (p *Public) Visibility() Visibility {
	return VisibilityPublic
}

func (p *Public) Kind() TypeKind {
	return p.Unit.Type.Kind
}

func (p *Public) FromBytes(b []byte) (any, error) {
	return p.Unit.Decode(b)
}

func (p *Public) ToBytes(v any) ([]byte, error) {
	return p.Unit.Encode(v)
}

// Bundle is the output of one generation run.
type Bundle struct {
	byID     map[catalog.TypeID]*Unit
	byName   map[string]*Public
	Internal []*Unit
	Public   []*Public
}

func newBundle() *Bundle {
	return &Bundle{
		byID:   make(map[catalog.TypeID]*Unit),
		byName: make(map[string]*Public),
	}
}

func (b *Bundle) addUnit(u *Unit) {
	b.byID[u.ID] = u
	b.Internal = append(b.Internal, u)
}

func (b *Bundle) addPublic(name string, u *Unit) error {
	if prev, dup := b.byName[name]; dup {
		return errors.DuplicateName(errors.PhaseGenerate, name, prev.Unit.Name, u.Name)
	}
	p := &Public{Unit: u, Name: name}
	b.byName[name] = p
	b.Public = append(b.Public, p)
	return nil
}

func (b *Bundle) Unit(id catalog.TypeID) (*Unit, bool) {
	u, ok := b.byID[id]
	return u, ok
}

func (b *Bundle) Lookup(name string) (*Public, bool) {
	p, ok := b.byName[name]
	return p, ok
}

// Find resolves a public name or a representation name to its unit.
func (b *Bundle) Find(name string) (*Unit, bool) {
	if p, ok := b.byName[name]; ok {
		return p.Unit, true
	}
	if id, ok := ParseRepresentationName(name); ok {
		return b.Unit(id)
	}
	return nil, false
}
