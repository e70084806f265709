package runtime

import (
	"reflect"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/structbind"
	"github.com/wippyai/structbind/errors"
)

// WrapMemory adapts a wazero memory to structbind.Memory. A nil memory,
// including a typed nil from api.Module.Memory, yields nil.
func WrapMemory(mem api.Memory) structbind.Memory {
	if mem == nil {
		return nil
	}
	if v := reflect.ValueOf(mem); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// Wrapper adapts wazero api.Memory to the structbind.Memory interface.
// Reads return views into linear memory that are invalidated by growth.
type Wrapper struct {
	Mem api.Memory
}

func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseDecode, offset, int(length))
	}
	return data, nil
}

func (m *Wrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseEncode, offset, len(data))
	}
	return nil
}

func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}

var _ structbind.MemorySizer = (*Wrapper)(nil)
