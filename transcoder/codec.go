package transcoder

import (
	"strconv"

	"github.com/wippyai/structbind/errors"
	"github.com/wippyai/structbind/transcoder/internal/abi"
)

// decodeValue decodes b, which must be exactly ct.Size bytes long.
func decodeValue(ct *CompiledType, b []byte, path []string) (any, error) {
	if len(b) != int(ct.Size) {
		return nil, errors.LengthMismatch(errors.PhaseDecode, path, ct.Name, int(ct.Size), len(b))
	}

	switch ct.Kind {
	case KindBool, KindU8, KindS8, KindU16, KindS16, KindU32, KindS32,
		KindU64, KindS64, KindU128, KindS128:
		return decodeInt(ct, b), nil
	case KindF32, KindF64:
		return decodeFloat(ct, b), nil
	case KindPointer:
		return decodePointer(b), nil
	case KindText:
		return decodeText(b, path)
	case KindArray:
		return decodeArray(ct, b, path)
	case KindEnum:
		return decodeEnum(ct, b, path)
	case KindStruct:
		return decodeStruct(ct, b, path)
	default:
		return nil, errors.New(errors.PhaseDecode, errors.KindUnsupportedType).
			Path(path...).
			Type(ct.Name).
			Detail("no decoder for kind %s", ct.Kind).
			Build()
	}
}

// encodeValue encodes v into dst, which must be exactly ct.Size bytes long.
// Every byte of dst is written.
func encodeValue(ct *CompiledType, v any, dst []byte, path []string) error {
	if len(dst) != int(ct.Size) {
		return errors.LengthMismatch(errors.PhaseEncode, path, ct.Name, int(ct.Size), len(dst))
	}

	switch ct.Kind {
	case KindBool, KindU8, KindS8, KindU16, KindS16, KindU32, KindS32,
		KindU64, KindS64, KindU128, KindS128:
		return encodeInt(ct, v, dst, path)
	case KindF32, KindF64:
		return encodeFloat(ct, v, dst, path)
	case KindPointer:
		return encodePointer(ct, v, dst, path)
	case KindText:
		return encodeText(ct, v, dst, path)
	case KindArray:
		return encodeArray(ct, v, dst, path)
	case KindEnum:
		return encodeEnum(ct, v, dst, path)
	case KindStruct:
		return encodeStruct(ct, v, dst, path)
	default:
		return errors.New(errors.PhaseEncode, errors.KindUnsupportedType).
			Path(path...).
			Type(ct.Name).
			Detail("no encoder for kind %s", ct.Kind).
			Build()
	}
}

func childPath(path []string, elem string) []string {
	p := make([]string, len(path)+1)
	copy(p, path)
	p[len(path)] = elem
	return p
}

func indexPath(path []string, i int) []string {
	return childPath(path, "["+strconv.Itoa(i)+"]")
}

func mismatch(phase errors.Phase, ct *CompiledType, v any, path []string) *errors.Error {
	return errors.TypeMismatch(phase, path, abi.TypeName(v), ct.Name)
}

func outOfRange(ct *CompiledType, v any, path []string) *errors.Error {
	return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		Path(path...).
		GoType(abi.TypeName(v)).
		Type(ct.Name).
		Detail("cannot represent %v as %s", v, ct.Kind).
		Value(v).
		Build()
}
