package transcoder

import (
	"bytes"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
)

func textArray(t *testing.T, count uint32) *Unit {
	t.Helper()
	tbl := catalog.NewTable()
	ch := tbl.Add(&catalog.Int{Name: "char", Bits: 8, Encoding: catalog.Signed})
	return unitFor(t, tbl, tbl.Add(&catalog.Array{Elem: ch, Count: count}))
}

func TestIsText(t *testing.T) {
	tests := []struct {
		name string
		d    catalog.Descriptor
		want bool
	}{
		{"char encoding", &catalog.Int{Name: "u8", Bits: 8, Encoding: catalog.Char}, true},
		{"signed char name", &catalog.Int{Name: "char", Bits: 8, Encoding: catalog.Signed}, true},
		{"unsigned char name", &catalog.Int{Name: "unsigned char", Bits: 8}, true},
		{"plain u8", &catalog.Int{Name: "__u8", Bits: 8}, false},
		{"wide char name", &catalog.Int{Name: "wchar", Bits: 32}, false},
		{"float", &catalog.Float{Name: "char", Size: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsText(tt.d); got != tt.want {
				t.Errorf("IsText = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextDecode(t *testing.T) {
	u := textArray(t, 4)
	if u.Type.Kind != KindText || u.Size() != 4 {
		t.Fatalf("kind %s size %d", u.Type.Kind, u.Size())
	}

	tests := []struct {
		name    string
		in      []byte
		want    string
		wantErr error
	}{
		{"short", []byte{'h', 'i', 0, 0}, "hi", nil},
		{"full", []byte{'a', 'b', 'c', 0}, "abc", nil},
		{"empty", []byte{0, 'x', 'y', 'z'}, "", nil},
		{"garbage after terminator", []byte{'o', 0, 0xff, 0xfe}, "o", nil},
		{"no terminator", []byte{'a', 'b', 'c', 'd'}, "", errors.ErrMissingTerminator},
		{"invalid utf8", []byte{0xff, 0xfe, 0, 0}, "", errors.ErrInvalidText},
		{"wrong length", []byte{'a', 0}, "", errors.ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := u.Decode(tt.in)
			if tt.wantErr != nil {
				if !stderrors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextEncode(t *testing.T) {
	u := textArray(t, 4)

	tests := []struct {
		name    string
		in      any
		want    []byte
		wantErr error
	}{
		{"pads with zero", "hi", []byte{'h', 'i', 0, 0}, nil},
		{"fills capacity", "abc", []byte{'a', 'b', 'c', 0}, nil},
		{"empty", "", []byte{0, 0, 0, 0}, nil},
		{"bytes", []byte("ok"), []byte{'o', 'k', 0, 0}, nil},
		{"too long", "abcd", nil, errors.ErrTextTooLong},
		{"not text", 42, nil, errors.ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := u.Encode(tt.in)
			if tt.wantErr != nil {
				if !stderrors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextZeroCapacity(t *testing.T) {
	u := textArray(t, 0)
	if _, err := u.Decode(nil); !stderrors.Is(err, errors.ErrMissingTerminator) {
		t.Errorf("Decode err = %v", err)
	}
	if _, err := u.Encode(""); !stderrors.Is(err, errors.ErrTextTooLong) {
		t.Errorf("Encode err = %v", err)
	}
}

func TestTextThroughQualifiedElement(t *testing.T) {
	tbl := catalog.NewTable()
	ch := tbl.Add(&catalog.Int{Name: "char", Bits: 8, Encoding: catalog.Signed})
	cch := tbl.Add(&catalog.Qualifier{Qual: catalog.Const, Target: ch})
	arr := tbl.Add(&catalog.Array{Elem: cch, Count: 8})

	u := unitFor(t, tbl, arr)
	if u.Type.Kind != KindText {
		t.Errorf("kind = %s, want text", u.Type.Kind)
	}
}

func TestGeneralArray(t *testing.T) {
	tbl := catalog.NewTable()
	u16 := tbl.Add(&catalog.Int{Name: "unsigned short", Bits: 16})
	arr := tbl.Add(&catalog.Array{Elem: u16, Count: 3})
	u := unitFor(t, tbl, arr)

	in := concat(u16Bytes(1), u16Bytes(2), u16Bytes(0xffff))
	got, err := u.Decode(in)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []any{uint16(1), uint16(2), uint16(0xffff)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %#v, want %#v", got, want)
	}

	enc, err := u.Encode([]uint16{1, 2, 0xffff})
	if err != nil || !bytes.Equal(enc, in) {
		t.Errorf("Encode([]uint16) = %x, %v", enc, err)
	}
	enc, err = u.Encode([3]int{1, 2, 0xffff})
	if err != nil || !bytes.Equal(enc, in) {
		t.Errorf("Encode([3]int) = %x, %v", enc, err)
	}
}

func TestGeneralArrayErrors(t *testing.T) {
	tbl := catalog.NewTable()
	u8 := tbl.Add(&catalog.Int{Name: "__u8", Bits: 8})
	arr := tbl.Add(&catalog.Array{Elem: u8, Count: 2})
	u := unitFor(t, tbl, arr)

	if _, err := u.Encode([]any{1}); !stderrors.Is(err, errors.ErrLengthMismatch) {
		t.Errorf("short slice err = %v", err)
	}
	if _, err := u.Encode("ab"); !stderrors.Is(err, errors.ErrTypeMismatch) {
		t.Errorf("string err = %v", err)
	}

	_, err := u.Encode([]any{1, 300})
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("err = %v, want *errors.Error", err)
	}
	if len(e.Path) != 1 || e.Path[0] != "[1]" {
		t.Errorf("path = %v, want [[1]]", e.Path)
	}
}

func TestNestedArrays(t *testing.T) {
	tbl := catalog.NewTable()
	ch := tbl.Add(&catalog.Int{Name: "char", Bits: 8, Encoding: catalog.Char})
	name := tbl.Add(&catalog.Array{Elem: ch, Count: 4})
	names := tbl.Add(&catalog.Array{Elem: name, Count: 2})
	u := unitFor(t, tbl, names)

	if u.Size() != 8 || u.Type.Elem.Kind != KindText {
		t.Fatalf("size %d elem %s", u.Size(), u.Type.Elem.Kind)
	}

	in := []byte{'a', 0, 0, 0, 'b', 'c', 0, 0}
	got, err := u.Decode(in)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, []any{"a", "bc"}) {
		t.Errorf("Decode = %#v", got)
	}

	_, err = u.Decode([]byte{'a', 0, 0, 0, 'b', 'c', 'd', 'e'})
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindMissingTerminator {
		t.Fatalf("err = %v", err)
	}
	if len(e.Path) != 1 || e.Path[0] != "[1]" {
		t.Errorf("path = %v", e.Path)
	}
}

func TestArrayOfUnsupported(t *testing.T) {
	tbl := catalog.NewTable()
	un := tbl.Add(&catalog.Other{Name: "u", What: "union"})
	arr := tbl.Add(&catalog.Array{Elem: un, Count: 2})
	if _, err := NewCompiler(tbl).Compile(arr); !stderrors.Is(err, errors.ErrUnsupportedType) {
		t.Errorf("err = %v", err)
	}
}
