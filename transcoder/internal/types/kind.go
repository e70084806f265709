package types

type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
	KindU128
	KindS128
	KindF32
	KindF64
	KindPointer
	KindText
	KindArray
	KindEnum
	KindStruct
)

var kindNames = [...]string{
	KindBool:    "bool",
	KindU8:      "u8",
	KindS8:      "s8",
	KindU16:     "u16",
	KindS16:     "s16",
	KindU32:     "u32",
	KindS32:     "s32",
	KindU64:     "u64",
	KindS64:     "s64",
	KindU128:    "u128",
	KindS128:    "s128",
	KindF32:     "f32",
	KindF64:     "f64",
	KindPointer: "pointer",
	KindText:    "text",
	KindArray:   "array",
	KindEnum:    "enum",
	KindStruct:  "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k is a scalar with a fixed Go value type.
func (k Kind) IsPrimitive() bool {
	return k <= KindPointer
}

func (k Kind) IsInteger() bool {
	return k >= KindU8 && k <= KindS128
}

func (k Kind) IsSigned() bool {
	switch k {
	case KindS8, KindS16, KindS32, KindS64, KindS128:
		return true
	}
	return false
}
