// Package catalog models a debug-info type graph.
//
// A graph is a list of descriptors addressed by TypeID. Descriptors refer
// to each other by id, so forward and back references are both allowed.
// The Catalog interface is the only surface the transcoder uses:
//
//	Get(id)    descriptor lookup
//	SizeOf(id) byte size, looking through typedef/const/volatile/restrict
//	All()      every descriptor in ascending id order
//
// Table is the in-memory implementation. Build it by hand or load it from
// BTF with the btfspec subpackage.
package catalog
