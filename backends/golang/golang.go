package golang

import (
	"bytes"
	"fmt"

	"golang.org/x/tools/imports"

	"github.com/wippyai/structbind/errors"
	"github.com/wippyai/structbind/transcoder"
)

// DefaultPackage is used when Options.Package is empty.
const DefaultPackage = "bindings"

type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Source names the input in the generated header.
	Source string
}

// sentinel errors declared once per generated file.
var sentinels = []struct{ name, text string }{
	{"ErrLength", "length mismatch"},
	{"ErrMissingTerminator", "missing terminator"},
	{"ErrInvalidText", "invalid text"},
	{"ErrTextTooLong", "text too long"},
	{"ErrInvalidEnumValue", "invalid enum value"},
}

type printFn func(format string, args ...any)

type generator struct {
	bundle  *transcoder.Bundle
	idents  scope
	types   map[uint32]string
	wide    bool
	publics []public
}

type public struct {
	p     *transcoder.Public
	alias string
}

// Generate emits one Go source file holding a type, a decoder and an
// encoder for every unit of b, plus an exported alias with
// UnmarshalBinary and MarshalBinary for every public artifact.
func Generate(b *transcoder.Bundle, opts Options) ([]byte, error) {
	if opts.Package == "" {
		opts.Package = DefaultPackage
	}

	g := &generator{
		bundle: b,
		idents: make(scope),
		types:  make(map[uint32]string),
	}
	if err := g.declare(); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	p := func(format string, args ...any) {
		fmt.Fprintf(&body, format, args...)
		body.WriteByte('\n')
	}

	source := opts.Source
	if source == "" {
		source = "a BTF type catalog"
	}
	p("// Code generated by structbind from %s. DO NOT EDIT.", source)
	p("")
	p("package %s", opts.Package)
	p("")
	g.generateSentinels(p)

	for _, u := range b.Internal {
		if err := g.generateUnit(p, u); err != nil {
			return nil, err
		}
	}
	for _, pub := range g.publics {
		g.generatePublic(p, pub)
	}
	if g.wide {
		g.generateWideHelpers(p)
	}

	src, err := imports.Process("", body.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEmit, errors.KindInvalidInput, err, "format generated source")
	}
	return src, nil
}

// declare assigns every identifier up front so collisions are reported
// before any code is written.
func (g *generator) declare() error {
	for _, s := range sentinels {
		if err := g.idents.declare(s.name, "error "+s.text); err != nil {
			return err
		}
	}
	for _, name := range []string{"nativeLittle", "getUint128", "putUint128"} {
		if err := g.idents.declare(name, "helper "+name); err != nil {
			return err
		}
	}

	for _, u := range g.bundle.Internal {
		typ := internalName(u.Name)
		g.types[uint32(u.ID)] = typ
		for _, ident := range []string{typ, decodeFunc(typ), encodeFunc(typ)} {
			if err := g.idents.declare(ident, u.Name); err != nil {
				return err
			}
		}
	}

	for _, p := range g.bundle.Public {
		alias := exportedName(p.Name)
		if err := g.idents.declare(alias, p.Name); err != nil {
			return err
		}
		g.publics = append(g.publics, public{p: p, alias: alias})
	}

	// enum constants, prefixed by the public alias when there is one
	prefixes := make(map[uint32]string)
	for _, pub := range g.publics {
		prefixes[uint32(pub.p.Unit.ID)] = pub.alias
	}
	for _, u := range g.bundle.Internal {
		if u.Type.Kind != transcoder.KindEnum {
			continue
		}
		prefix, ok := prefixes[uint32(u.ID)]
		if !ok {
			prefix = g.types[uint32(u.ID)]
		}
		for _, c := range u.Type.Cases {
			if err := g.idents.declare(prefix+exportedName(c.Name), u.Name+"."+c.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeFunc(typ string) string {
	return "decode" + exportedName(typ)
}

func encodeFunc(typ string) string {
	return "encode" + exportedName(typ)
}

func (g *generator) generateSentinels(p printFn) {
	p("var (")
	for _, s := range sentinels {
		p("\t%s = errors.New(%q)", s.name, s.text)
	}
	p(")")
	p("")
}

func (g *generator) generatePublic(p printFn, pub public) {
	typ := g.types[uint32(pub.p.Unit.ID)]
	p("// %s is the %s %s.", pub.alias, pub.p.Kind(), pub.p.Name)
	p("type %s = %s", pub.alias, typ)
	p("")
	p("func (v *%s) UnmarshalBinary(b []byte) error {", pub.alias)
	p("\tx, err := %s(b)", decodeFunc(typ))
	p("\tif err != nil {")
	p("\t\treturn err")
	p("\t}")
	p("\t*v = x")
	p("\treturn nil")
	p("}")
	p("")
	p("func (v %s) MarshalBinary() ([]byte, error) {", pub.alias)
	p("\treturn %s(v)", encodeFunc(typ))
	p("}")
	p("")
}

func (g *generator) generateWideHelpers(p printFn) {
	p("var nativeLittle = binary.NativeEndian.Uint16([]byte{1, 0}) == 1")
	p("")
	p("func getUint128(b []byte) [2]uint64 {")
	p("\tif nativeLittle {")
	p("\t\treturn [2]uint64{binary.NativeEndian.Uint64(b[:8]), binary.NativeEndian.Uint64(b[8:])}")
	p("\t}")
	p("\treturn [2]uint64{binary.NativeEndian.Uint64(b[8:]), binary.NativeEndian.Uint64(b[:8])}")
	p("}")
	p("")
	p("func putUint128(b []byte, v [2]uint64) {")
	p("\tif nativeLittle {")
	p("\t\tbinary.NativeEndian.PutUint64(b[:8], v[0])")
	p("\t\tbinary.NativeEndian.PutUint64(b[8:], v[1])")
	p("\t\treturn")
	p("\t}")
	p("\tbinary.NativeEndian.PutUint64(b[:8], v[1])")
	p("\tbinary.NativeEndian.PutUint64(b[8:], v[0])")
	p("}")
}
