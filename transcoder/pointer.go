package transcoder

import (
	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/transcoder/internal/abi"
)

// Pointers are opaque 64-bit addresses; the target type is never followed.
func (c *Compiler) compilePointer(*catalog.Pointer) (*CompiledType, error) {
	return &CompiledType{Kind: KindPointer, Size: catalog.PointerSize}, nil
}

func decodePointer(b []byte) any {
	return abi.Uint(b)
}

func encodePointer(ct *CompiledType, v any, dst []byte, path []string) error {
	u, ok := abi.Unsigned(v, 64)
	if !ok {
		return outOfRange(ct, v, path)
	}
	abi.PutUint(dst, u)
	return nil
}
