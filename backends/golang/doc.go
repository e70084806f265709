// Package golang emits Go source for a generated bundle.
//
// Every unit becomes an unexported type with a decoder and an encoder
// (btf_type_12 becomes btfType12, decodeBtfType12 and encodeBtfType12).
// Every public artifact becomes an exported alias implementing
// encoding.BinaryUnmarshaler and encoding.BinaryMarshaler. The emitted
// code performs the same length, terminator, capacity and enum checks as
// the transcoder and reads integers in host byte order.
package golang
