// Package abi holds the low-level helpers shared by the codecs: native byte
// order access, overflow-checked arithmetic and numeric coercion.
package abi
