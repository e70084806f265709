package catalog

import "strconv"

// TypeID addresses a descriptor within one catalog. ID 0 is void.
type TypeID uint32

func (id TypeID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindPointer
	KindArray
	KindStruct
	KindEnum
	KindQualifier
	KindOther
)

var kindNames = [...]string{
	KindInt:       "int",
	KindFloat:     "float",
	KindPointer:   "pointer",
	KindArray:     "array",
	KindStruct:    "struct",
	KindEnum:      "enum",
	KindQualifier: "qualifier",
	KindOther:     "other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds lists every descriptor kind, in declaration order.
func Kinds() []Kind {
	return []Kind{KindInt, KindFloat, KindPointer, KindArray, KindStruct, KindEnum, KindQualifier, KindOther}
}

// Descriptor is one node of the type graph. The set of implementations is
// closed: *Int, *Float, *Pointer, *Array, *Struct, *Enum, *Qualifier, *Other.
type Descriptor interface {
	Kind() Kind
	TypeName() string
	sealed()
}

type IntEncoding uint8

const (
	Unsigned IntEncoding = iota
	Signed
	Char
	Bool
)

var encodingNames = [...]string{
	Unsigned: "unsigned",
	Signed:   "signed",
	Char:     "char",
	Bool:     "bool",
}

func (e IntEncoding) String() string {
	if int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return "unknown"
}

type Int struct {
	Name     string
	Bits     uint32
	Encoding IntEncoding
}

type Float struct {
	Name string
	Size uint32
}

// Pointer is any pointer; the target is kept for reference only.
type Pointer struct {
	Target TypeID
}

type Array struct {
	Elem  TypeID
	Count uint32
}

type Member struct {
	Name      string
	Type      TypeID
	BitOffset uint32
	BitSize   uint32
}

type Struct struct {
	Name    string
	Size    uint32
	Members []Member
}

type EnumValue struct {
	Name  string
	Value int64
}

type Enum struct {
	Name   string
	Size   uint32
	Values []EnumValue
}

type QualifierKind uint8

const (
	Typedef QualifierKind = iota
	Const
	Volatile
	Restrict
)

var qualifierNames = [...]string{
	Typedef:  "typedef",
	Const:    "const",
	Volatile: "volatile",
	Restrict: "restrict",
}

func (q QualifierKind) String() string {
	if int(q) < len(qualifierNames) {
		return qualifierNames[q]
	}
	return "unknown"
}

// Qualifier denotes the same layout as Target. Name is set for typedefs;
// Qual tells which qualifier it is.
type Qualifier struct {
	Name   string
	Target TypeID
	Qual   QualifierKind
}

// Other is a descriptor with no codec: void, unions, functions and the like.
type Other struct {
	Name string
	What string
}

func (*Int) Kind() Kind       { return KindInt }
func (*Float) Kind() Kind     { return KindFloat }
func (*Pointer) Kind() Kind   { return KindPointer }
func (*Array) Kind() Kind     { return KindArray }
func (*Struct) Kind() Kind    { return KindStruct }
func (*Enum) Kind() Kind      { return KindEnum }
func (*Qualifier) Kind() Kind { return KindQualifier }
func (*Other) Kind() Kind     { return KindOther }

func (t *Int) TypeName() string       { return t.Name }
func (t *Float) TypeName() string     { return t.Name }
func (*Pointer) TypeName() string     { return "" }
func (*Array) TypeName() string       { return "" }
func (t *Struct) TypeName() string    { return t.Name }
func (t *Enum) TypeName() string      { return t.Name }
func (t *Qualifier) TypeName() string { return t.Name }
func (t *Other) TypeName() string     { return t.Name }

func (*Int) sealed()       {}
func (*Float) sealed()     {}
func (*Pointer) sealed()   {}
func (*Array) sealed()     {}
func (*Struct) sealed()    {}
func (*Enum) sealed()      {}
func (*Qualifier) sealed() {}
func (*Other) sealed()     {}
