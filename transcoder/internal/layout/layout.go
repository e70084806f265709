package layout

import (
	"fmt"

	"github.com/wippyai/structbind/errors"
	"github.com/wippyai/structbind/transcoder/internal/abi"
)

// Member is a struct member as declared in the catalog, with the byte size
// of its type already resolved.
type Member struct {
	Name      string
	BitOffset uint32
	BitSize   uint32
	Size      uint32
}

type Placement struct {
	Offset uint32
	Size   uint32
}

// Place converts m to a byte placement inside a struct of structSize bytes.
// Sub-byte offsets or widths are bit-fields and are rejected.
func Place(structName string, structSize uint32, m Member) (Placement, error) {
	if m.BitOffset%8 != 0 || m.BitSize%8 != 0 {
		return Placement{}, errors.UnsupportedBitfield(structName,
			fmt.Sprintf("member %q at bit offset %d with bit size %d", m.Name, m.BitOffset, m.BitSize))
	}

	offset := m.BitOffset / 8
	end, ok := abi.SafeAddU32(offset, m.Size)
	if !ok || end > structSize {
		return Placement{}, errors.MalformedTypeGraph("member %q of %s spans [%d, %d) beyond size %d",
			m.Name, structName, offset, uint64(offset)+uint64(m.Size), structSize)
	}

	return Placement{Offset: offset, Size: m.Size}, nil
}

// Array returns the byte size of count elements of elemSize bytes.
func Array(typeName string, count, elemSize uint32) (uint32, error) {
	total, ok := abi.SafeMulU32(count, elemSize)
	if !ok {
		return 0, errors.MalformedTypeGraph("array %s of %d x %d bytes overflows", typeName, count, elemSize)
	}
	return total, nil
}
