package transcoder

import (
	"github.com/wippyai/structbind"
)

type Memory = structbind.Memory

// DecodeFrom reads exactly Size bytes at addr and decodes them.
func (u *Unit) DecodeFrom(mem Memory, addr uint32) (any, error) {
	b, err := mem.Read(addr, u.Type.Size)
	if err != nil {
		return nil, err
	}
	return u.Decode(b)
}

// EncodeTo encodes v and writes the Size bytes at addr.
func (u *Unit) EncodeTo(mem Memory, addr uint32, v any) error {
	b, err := u.Encode(v)
	if err != nil {
		return err
	}
	return mem.Write(addr, b)
}

// UnmarshalFrom reads exactly Size bytes at addr into dst.
func (p *Public) UnmarshalFrom(mem Memory, addr uint32, dst any) error {
	b, err := mem.Read(addr, p.Unit.Type.Size)
	if err != nil {
		return err
	}
	return p.Unmarshal(b, dst)
}
