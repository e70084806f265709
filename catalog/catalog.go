package catalog

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	"github.com/wippyai/structbind/errors"
)

// Catalog is the read-only query surface of a type graph.
type Catalog interface {
	// Get returns the descriptor for id.
	Get(id TypeID) (Descriptor, error)
	// SizeOf returns the byte size of id, looking through qualifiers.
	SizeOf(id TypeID) (uint32, error)
	// All returns every descriptor in ascending id order.
	All() []Entry
}

type Entry struct {
	Type Descriptor
	ID   TypeID
}

// PointerSize is the size of every pointer in the graph.
const PointerSize = 8

// Table is an in-memory Catalog. ID 0 holds void; Add assigns ids from 1.
type Table struct {
	types []Descriptor
}

func NewTable() *Table {
	return &Table{
		types: []Descriptor{&Other{Name: "void", What: "void"}},
	}
}

// Add appends d and returns its id. Descriptors may reference ids that
// have not been added yet.
func (t *Table) Add(d Descriptor) TypeID {
	t.types = append(t.types, d)
	slot, err := safecast.Conv[uint32](len(t.types) - 1)
	if err != nil {
		panic(fmt.Errorf("type table overflow: %w", err))
	}
	return TypeID(slot)
}

// Set replaces the descriptor at an existing id.
func (t *Table) Set(id TypeID, d Descriptor) error {
	if int(id) >= len(t.types) {
		return errors.NotFound(errors.PhaseLoad, "type", id.String())
	}
	t.types[id] = d
	return nil
}

func (t *Table) Len() int {
	return len(t.types)
}

func (t *Table) Get(id TypeID) (Descriptor, error) {
	if int(id) >= len(t.types) || t.types[id] == nil {
		return nil, errors.MalformedTypeGraph("dangling type id %d", id)
	}
	return t.types[id], nil
}

func (t *Table) All() []Entry {
	entries := make([]Entry, len(t.types))
	for i, d := range t.types {
		entries[i] = Entry{ID: TypeID(i), Type: d}
	}
	return entries
}

func (t *Table) SizeOf(id TypeID) (uint32, error) {
	return t.sizeOf(id, make(map[TypeID]bool))
}

func (t *Table) sizeOf(id TypeID, visiting map[TypeID]bool) (uint32, error) {
	if visiting[id] {
		return 0, errors.MalformedTypeGraph("type %d refers to itself", id)
	}
	visiting[id] = true
	defer delete(visiting, id)

	d, err := t.Get(id)
	if err != nil {
		return 0, err
	}

	switch typ := d.(type) {
	case *Int:
		return (typ.Bits + 7) / 8, nil
	case *Float:
		return typ.Size, nil
	case *Pointer:
		return PointerSize, nil
	case *Array:
		elem, err := t.sizeOf(typ.Elem, visiting)
		if err != nil {
			return 0, err
		}
		if elem != 0 && typ.Count > math.MaxUint32/elem {
			return 0, errors.MalformedTypeGraph("array %d of %d x %d bytes overflows", id, typ.Count, elem)
		}
		return typ.Count * elem, nil
	case *Struct:
		return typ.Size, nil
	case *Enum:
		return typ.Size, nil
	case *Qualifier:
		return t.sizeOf(typ.Target, visiting)
	case *Other:
		return 0, errors.New(errors.PhaseLoad, errors.KindUnsupportedType).
			Type(typ.Name).
			Detail("type %d (%s) has no size", id, typ.What).
			Build()
	default:
		return 0, errors.MalformedTypeGraph("type %d has unknown descriptor %T", id, d)
	}
}
