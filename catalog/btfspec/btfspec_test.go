package btfspec

import (
	"bytes"
	"context"
	"encoding/binary"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/cilium/ebpf/btf"

	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
	"github.com/wippyai/structbind/internal/btftest"
	"github.com/wippyai/structbind/transcoder"
)

func TestLoad(t *testing.T) {
	tbl, err := Load(bytes.NewReader(btftest.Sample()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := map[catalog.TypeID]catalog.Descriptor{
		1:  &catalog.Int{Name: "unsigned int", Bits: 32, Encoding: catalog.Unsigned},
		2:  &catalog.Int{Name: "char", Bits: 8, Encoding: catalog.Signed},
		3:  &catalog.Array{Elem: 2, Count: 4},
		5:  &catalog.Enum{Name: "state", Size: 4, Values: []catalog.EnumValue{{Name: "A", Value: 0}, {Name: "B", Value: -1}}},
		6:  &catalog.Qualifier{Qual: catalog.Typedef, Name: "u32_t", Target: 1},
		7:  &catalog.Qualifier{Qual: catalog.Const, Target: 6},
		8:  &catalog.Qualifier{Qual: catalog.Volatile, Target: 7},
		9:  &catalog.Pointer{Target: 4},
		10: &catalog.Float{Name: "double", Size: 8},
		11: &catalog.Other{Name: "u", What: "union"},
	}

	for id, d := range want {
		got, err := tbl.Get(id)
		if err != nil {
			t.Fatalf("Get(%d): %v", id, err)
		}
		if !reflect.DeepEqual(got, d) {
			t.Errorf("type %d = %#v, want %#v", id, got, d)
		}
	}

	s, err := tbl.Get(4)
	if err != nil {
		t.Fatalf("Get(4): %v", err)
	}
	st, ok := s.(*catalog.Struct)
	if !ok || st.Name != "S" || st.Size != 8 || len(st.Members) != 2 {
		t.Fatalf("struct = %#v", s)
	}
	if st.Members[1] != (catalog.Member{Name: "f2", Type: 3, BitOffset: 32}) {
		t.Errorf("member f2 = %#v", st.Members[1])
	}

	if size, err := tbl.SizeOf(8); err != nil || size != 4 {
		t.Errorf("SizeOf(volatile) = %d, %v", size, err)
	}
}

func TestLoadGenerate(t *testing.T) {
	tbl, err := Load(bytes.NewReader(btftest.Sample()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := transcoder.Generate(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	s, ok := b.Lookup("S")
	if !ok {
		t.Fatal("S not generated")
	}
	in := make([]byte, 8)
	binary.NativeEndian.PutUint32(in, 0x12345678)
	copy(in[4:], "hi")

	v, err := s.FromBytes(in)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	want := map[string]any{"f1": uint32(0x12345678), "f2": "hi"}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("FromBytes = %#v", v)
	}

	state, ok := b.Lookup("state")
	if !ok {
		t.Fatal("state not generated")
	}
	out, err := state.ToBytes("B")
	if err != nil || !bytes.Equal(out, []byte{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("ToBytes(B) = %x, %v", out, err)
	}
}

func TestLoadGarbage(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("definitely not BTF")))
	if !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("err = %v, want invalid input", err)
	}
}

func TestSignExtend(t *testing.T) {
	tests := []struct {
		v    uint64
		size uint32
		want int64
	}{
		{0xff, 1, -1},
		{0x7f, 1, 127},
		{0xffffffff, 4, -1},
		{0xffffffffffffffff, 4, -1},
		{0x80000000, 8, 0x80000000},
		{5, 0, 5},
	}
	for _, tt := range tests {
		if got := signExtend(tt.v, tt.size); got != tt.want {
			t.Errorf("signExtend(%#x, %d) = %d, want %d", tt.v, tt.size, got, tt.want)
		}
	}
}

func TestConvertWithoutCodec(t *testing.T) {
	tests := []struct {
		typ  btf.Type
		what string
	}{
		{&btf.Union{Name: "u"}, "union"},
		{&btf.Fwd{Name: "task_struct"}, "forward declaration"},
		{&btf.FuncProto{}, "function prototype"},
		{&btf.Var{Name: "counter"}, "variable"},
		{&btf.Datasec{Name: ".bss"}, "data section"},
		{&btf.Void{}, "*btf.Void"},
	}
	for _, tt := range tests {
		t.Run(tt.what, func(t *testing.T) {
			d, err := converter{}.convert(tt.typ)
			if err != nil {
				t.Fatalf("convert: %v", err)
			}
			o, ok := d.(*catalog.Other)
			if !ok || o.What != tt.what || o.Name != tt.typ.TypeName() {
				t.Errorf("convert = %#v", d)
			}
		})
	}
}
