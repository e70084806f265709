// Package transcoder generates binary codecs from a type catalog.
//
// For every supported catalog type the transcoder produces a Unit: a
// decoder from bytes to a dynamic Go value and an encoder back, both
// reproducing the exact native memory layout of the type.
//
//	┌────────────────────────────────────────────────────────────┐
//	│ Catalog ──► SizeCache / names ──► generators ──► Bundle     │
//	└────────────────────────────────────────────────────────────┘
//
// # Value Model
//
//	Type                      Size      Go value
//	────────────────────────────────────────────────────────
//	8-bit bool                1         bool
//	8..64-bit integer         1/2/4/8   int8..int64, uint8..uint64
//	8-bit char                1         uint8
//	128-bit integer           16        Int128, Uint128
//	float                     4/8       float32, float64
//	pointer                   8         uint64
//	char array                count     string (zero-terminated)
//	other array               n*elem    []any
//	enum                      1/2/4/8   Variant
//	struct                    declared  map[string]any
//
// Anonymous struct members use the key "_<index>".
//
// # Generation
//
//	bundle, err := transcoder.Generate(ctx, cat)
//
// Generate walks the catalog once in ascending id order. Integers, floats,
// pointers and arrays yield internal units; structs and enums additionally
// yield a Public artifact under their declared name. Qualifiers and
// unsupported kinds yield nothing. A type referenced before its own id is
// compiled on demand and memoized, so every id compiles once. The first
// error aborts the run and no partial bundle is returned.
//
// # Naming
//
//	RepresentationName(12) = "btf_type_12"
//	OperationNames(12)     = "deserialize_btf_type_12", "serialize_btf_type_12"
//
// # Encoding
//
// Encoders coerce compatible inputs: any Go integer or integral float for
// integers, a variant name, Variant or declared value for enums, a decimal
// string for 128-bit integers, any slice or array for general arrays. Struct
// encoding starts from a zero buffer so padding bytes are always zero.
//
// # Typed Binding
//
// Public.Unmarshal and Public.Marshal bind Go structs, matching members by
// `btf:"name"` tag or by name ignoring case and underscores.
//
// # Thread Safety
//
// A Compiler serves one run and is not safe for concurrent use. Bundles and
// units are immutable and safe for concurrent use.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[decode] missing_terminator at f2: zero byte not found within 4 bytes
//	[encode] text_too_long at name: string is too long: 9 bytes, only 7 allowed
package transcoder
