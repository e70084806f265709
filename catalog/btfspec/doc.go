// Package btfspec loads BTF type information into a catalog.Table.
//
// BTF ids are preserved, so btf_type_<id> names in generated bundles match
// the ids reported by bpftool and the kernel. Unions, forward declarations,
// functions, variables, data sections and tags become catalog.Other.
package btfspec
