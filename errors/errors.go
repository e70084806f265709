package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseGenerate Phase = "generate" // building codecs from the catalog
	PhaseDecode   Phase = "decode"   // bytes to value
	PhaseEncode   Phase = "encode"   // value to bytes
	PhaseLoad     Phase = "load"     // reading a type catalog
	PhaseEmit     Phase = "emit"     // Go source generation
	PhaseRuntime  Phase = "runtime"  // WASM instance access
)

// Kind categorizes the error
type Kind string

const (
	KindLengthMismatch             Kind = "length_mismatch"
	KindUnsupportedBitfield        Kind = "unsupported_bitfield"
	KindUnsupportedIntegerEncoding Kind = "unsupported_integer_encoding"
	KindUnsupportedFloatSize       Kind = "unsupported_float_size"
	KindUnsupportedEnumSize        Kind = "unsupported_enum_size"
	KindUnsupportedType            Kind = "unsupported_type"
	KindMissingTerminator          Kind = "missing_terminator"
	KindInvalidText                Kind = "invalid_text"
	KindTextTooLong                Kind = "text_too_long"
	KindInvalidEnumValue           Kind = "invalid_enum_value"
	KindMalformedTypeGraph         Kind = "malformed_type_graph"
	KindDuplicateName              Kind = "duplicate_name"
	KindTypeMismatch               Kind = "type_mismatch"
	KindFieldMissing               Kind = "field_missing"
	KindNotFound                   Kind = "not_found"
	KindInvalidInput               Kind = "invalid_input"
	KindOutOfBounds                Kind = "out_of_bounds"
)

// Sentinels for errors.Is. They match any phase.
var (
	ErrLengthMismatch             = &Error{Kind: KindLengthMismatch}
	ErrUnsupportedBitfield        = &Error{Kind: KindUnsupportedBitfield}
	ErrUnsupportedIntegerEncoding = &Error{Kind: KindUnsupportedIntegerEncoding}
	ErrUnsupportedFloatSize       = &Error{Kind: KindUnsupportedFloatSize}
	ErrUnsupportedEnumSize        = &Error{Kind: KindUnsupportedEnumSize}
	ErrUnsupportedType            = &Error{Kind: KindUnsupportedType}
	ErrMissingTerminator          = &Error{Kind: KindMissingTerminator}
	ErrInvalidText                = &Error{Kind: KindInvalidText}
	ErrTextTooLong                = &Error{Kind: KindTextTooLong}
	ErrInvalidEnumValue           = &Error{Kind: KindInvalidEnumValue}
	ErrMalformedTypeGraph         = &Error{Kind: KindMalformedTypeGraph}
	ErrDuplicateName              = &Error{Kind: KindDuplicateName}
	ErrTypeMismatch               = &Error{Kind: KindTypeMismatch}
	ErrFieldMissing               = &Error{Kind: KindFieldMissing}
	ErrNotFound                   = &Error{Kind: KindNotFound}
	ErrOutOfBounds                = &Error{Kind: KindOutOfBounds}
	ErrInvalidInput               = &Error{Kind: KindInvalidInput}
)

// Error is the structured error type used throughout structbind
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Type   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(joinPath(e.Path))
	}

	if e.GoType != "" || e.Type != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Type != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", type ")
			b.WriteString(e.Type)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("type ")
			b.WriteString(e.Type)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// joinPath renders index elements ("[3]") without a leading dot.
func joinPath(path []string) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 && !strings.HasPrefix(p, "[") {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. An empty Phase on the
// target matches every phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind && (t.Phase == "" || e.Phase == t.Phase)
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Type sets the catalog type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Prefix returns err with elem prepended to its path. Errors that are not
// *Error are returned unchanged.
func Prefix(err error, elem string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	cp := *e
	cp.Path = append([]string{elem}, e.Path...)
	return &cp
}

// Convenience constructors for common error patterns

// LengthMismatch creates an error for a buffer whose length differs from
// the declared size of its type.
func LengthMismatch(phase Phase, path []string, typeName string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLengthMismatch,
		Path:   path,
		Type:   typeName,
		Detail: fmt.Sprintf("expected %d bytes, got %d", want, got),
		Value:  got,
	}
}

// UnsupportedBitfield creates an error for sub-byte offsets or widths.
func UnsupportedBitfield(typeName, detail string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindUnsupportedBitfield,
		Type:   typeName,
		Detail: detail,
	}
}

// UnsupportedIntegerEncoding creates an error for an unknown width/encoding pair.
func UnsupportedIntegerEncoding(typeName string, bits uint32, encoding string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindUnsupportedIntegerEncoding,
		Type:   typeName,
		Detail: fmt.Sprintf("unsupported integer bits %d and encoding %s pair", bits, encoding),
	}
}

// UnsupportedFloatSize creates an error for a float that is neither 4 nor 8 bytes.
func UnsupportedFloatSize(typeName string, size uint32) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindUnsupportedFloatSize,
		Type:   typeName,
		Detail: fmt.Sprintf("unsupported float size: %d", size),
		Value:  size,
	}
}

// UnsupportedEnumSize creates an error for an enum whose size has no integer representation.
func UnsupportedEnumSize(typeName, enumName string, size uint32) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindUnsupportedEnumSize,
		Type:   typeName,
		Detail: fmt.Sprintf("unsupported enum size %d in enum %q", size, enumName),
		Value:  size,
	}
}

// UnsupportedType creates an error for a member or element of a kind that has no codec.
func UnsupportedType(path []string, typeName, what string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindUnsupportedType,
		Path:   path,
		Type:   typeName,
		Detail: fmt.Sprintf("no codec for %s", what),
	}
}

// MissingTerminator creates an error for a text field without a zero byte.
func MissingTerminator(path []string, capacity int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMissingTerminator,
		Path:   path,
		Detail: fmt.Sprintf("zero byte not found within %d bytes", capacity),
	}
}

// InvalidText creates an invalid UTF-8 error
func InvalidText(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidText,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// TextTooLong creates an error for text that does not fit its fixed capacity.
func TextTooLong(path []string, length, capacity int) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindTextTooLong,
		Path:   path,
		Detail: fmt.Sprintf("string is too long: %d bytes, only %d allowed", length, capacity-1),
		Value:  length,
	}
}

// InvalidEnumValue creates an invalid enum value error
func InvalidEnumValue(phase Phase, path []string, value any, enumName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEnumValue,
		Path:   path,
		Type:   enumName,
		Detail: fmt.Sprintf("invalid enum value %v for enum %s", value, enumName),
		Value:  value,
	}
}

// MalformedTypeGraph creates an error for qualifier cycles, dangling ids
// and layouts that do not fit their declared size.
func MalformedTypeGraph(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindMalformedTypeGraph,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// DuplicateName creates an error for two artifacts sharing one name.
func DuplicateName(phase Phase, name string, first, second string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateName,
		Detail: fmt.Sprintf("name %q used by %s and %s", name, first, second),
		Value:  name,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, typeName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Type:   typeName,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// OutOfBounds creates an out of bounds error for memory access
func OutOfBounds(phase Phase, addr uint32, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("memory access out of bounds: offset=%d, length=%d", addr, length),
		Value:  addr,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Load creates a catalog loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
