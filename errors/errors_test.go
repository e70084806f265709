package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindTypeMismatch,
				Path:   []string{"event", "header", "pid"},
				GoType: "string",
				Type:   "btf_type_3",
				Detail: "cannot convert",
			},
			contains: []string{"[encode]", "type_mismatch", "event.header.pid", "string", "btf_type_3", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindLengthMismatch,
			},
			contains: []string{"[decode]", "length_mismatch"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidInput,
				Detail: "parse BTF",
				Cause:  errors.New("bad magic"),
			},
			contains: []string{"[load]", "invalid_input", "parse BTF", "caused by", "bad magic"},
		},
		{
			name: "index path",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindMissingTerminator,
				Path:  []string{"names", "[3]"},
			},
			contains: []string{"at names[3]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Load("read catalog", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindTypeMismatch,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindLengthMismatch}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrTypeMismatch) {
		t.Error("sentinel without phase should match any phase")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindTypeMismatch).
		Path("event", "pid").
		GoType("string").
		Type("btf_type_2").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "uint32", "string").
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[1] != "pid" {
		t.Errorf("Path = %v", err.Path)
	}
	if err.Type != "btf_type_2" {
		t.Errorf("Type = %q", err.Type)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v", err.Value)
	}
	if err.Detail != "expected uint32, got string" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not chained")
	}
}

func TestPrefix(t *testing.T) {
	inner := MissingTerminator([]string{"[2]"}, 8)
	outer := Prefix(Prefix(inner, "names"), "event")

	var e *Error
	if !errors.As(outer, &e) {
		t.Fatal("Prefix should keep *Error")
	}
	if got := strings.Join(e.Path, ","); got != "event,names,[2]" {
		t.Errorf("Path = %q", got)
	}
	if len(inner.Path) != 1 {
		t.Error("Prefix must not mutate the original error")
	}

	plain := errors.New("plain")
	if Prefix(plain, "x") != plain {
		t.Error("non-structured errors pass through")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err      *Error
		sentinel *Error
		contains string
	}{
		{LengthMismatch(PhaseDecode, nil, "btf_type_1", 4, 3), ErrLengthMismatch, "expected 4 bytes, got 3"},
		{UnsupportedBitfield("btf_type_1", "bit offset 3"), ErrUnsupportedBitfield, "bit offset 3"},
		{UnsupportedIntegerEncoding("btf_type_1", 16, "bool"), ErrUnsupportedIntegerEncoding, "bits 16"},
		{UnsupportedFloatSize("btf_type_1", 16), ErrUnsupportedFloatSize, "16"},
		{UnsupportedEnumSize("btf_type_1", "E", 3), ErrUnsupportedEnumSize, `enum "E"`},
		{UnsupportedType(nil, "btf_type_9", "union"), ErrUnsupportedType, "union"},
		{MissingTerminator(nil, 4), ErrMissingTerminator, "4 bytes"},
		{InvalidText(PhaseDecode, nil, []byte{0xff}), ErrInvalidText, "ff"},
		{TextTooLong(nil, 9, 8), ErrTextTooLong, "only 7 allowed"},
		{InvalidEnumValue(PhaseDecode, nil, int64(7), "E"), ErrInvalidEnumValue, "7"},
		{MalformedTypeGraph("cycle at %d", 4), ErrMalformedTypeGraph, "cycle at 4"},
		{DuplicateName(PhaseGenerate, "S", "btf_type_1", "btf_type_2"), ErrDuplicateName, `"S"`},
		{FieldMissing(PhaseEncode, nil, "pid"), ErrFieldMissing, "pid"},
		{OutOfBounds(PhaseDecode, 65536, 8), ErrOutOfBounds, "offset=65536"},
		{NotFound(PhaseLoad, "type", "S"), ErrNotFound, `type "S"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("%v does not match sentinel %s", tt.err, tt.sentinel.Kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("%q does not contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}
