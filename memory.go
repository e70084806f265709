package structbind

import "github.com/wippyai/structbind/errors"

// Memory is a flat, byte-addressed region that codec units read from and
// write to, such as WASM linear memory or a plain byte slice.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of a Memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Bytes is a Memory backed by a byte slice.
type Bytes []byte

func (m Bytes) Read(offset uint32, length uint32) ([]byte, error) {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(m)) {
		return nil, errors.OutOfBounds(errors.PhaseDecode, offset, int(length))
	}
	return m[offset:end:end], nil
}

func (m Bytes) Write(offset uint32, data []byte) error {
	end := uint64(offset) + uint64(len(data))
	if end > uint64(len(m)) {
		return errors.OutOfBounds(errors.PhaseEncode, offset, len(data))
	}
	copy(m[offset:end], data)
	return nil
}

func (m Bytes) Size() uint32 {
	return uint32(len(m))
}
