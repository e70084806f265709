package transcoder

import (
	"encoding/binary"
	"testing"

	"github.com/wippyai/structbind/catalog"
)

func unitFor(t *testing.T, tbl *catalog.Table, id catalog.TypeID) *Unit {
	t.Helper()
	ct, err := NewCompiler(tbl).Compile(id)
	if err != nil {
		t.Fatalf("Compile(%d): %v", id, err)
	}
	return newUnit(id, ct)
}

func singleType(t *testing.T, d catalog.Descriptor) *Unit {
	t.Helper()
	tbl := catalog.NewTable()
	return unitFor(t, tbl, tbl.Add(d))
}

func u32Bytes(v uint32) []byte {
	b := make([]byte, 4)
	binary.NativeEndian.PutUint32(b, v)
	return b
}

func u16Bytes(v uint16) []byte {
	b := make([]byte, 2)
	binary.NativeEndian.PutUint16(b, v)
	return b
}

func u64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.NativeEndian.PutUint64(b, v)
	return b
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
