package transcoder

import (
	"github.com/wippyai/structbind/transcoder/internal/types"
)

type TypeKind = types.Kind

const (
	KindBool    = types.KindBool
	KindU8      = types.KindU8
	KindS8      = types.KindS8
	KindU16     = types.KindU16
	KindS16     = types.KindS16
	KindU32     = types.KindU32
	KindS32     = types.KindS32
	KindU64     = types.KindU64
	KindS64     = types.KindS64
	KindU128    = types.KindU128
	KindS128    = types.KindS128
	KindF32     = types.KindF32
	KindF64     = types.KindF64
	KindPointer = types.KindPointer
	KindText    = types.KindText
	KindArray   = types.KindArray
	KindEnum    = types.KindEnum
	KindStruct  = types.KindStruct
)

type CompiledType = types.CompiledType
type CompiledField = types.Field
type CompiledCase = types.Case
