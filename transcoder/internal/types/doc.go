// Package types defines the compiled type structures the codecs run on.
//
// CompiledType holds the precomputed layout of one catalog type (size,
// member offsets, array shape, enum cases) so that decoding and encoding
// never go back to the catalog.
//
// # Key Types
//
//   - CompiledType: Layout of one type
//   - Kind: Codec discriminator (integer width, float, pointer, text, array, enum, struct)
//
// This package is internal to the transcoder.
package types
