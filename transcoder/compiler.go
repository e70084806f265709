package transcoder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
)

// Compiler turns catalog types into compiled representations. One Compiler
// serves one generation run and is not safe for concurrent use.
type Compiler struct {
	cat      catalog.Catalog
	sizes    *SizeCache
	log      *zap.Logger
	compiled map[catalog.TypeID]*CompiledType
	pending  map[catalog.TypeID]struct{}
}

type Option func(*Compiler)

// WithLogger overrides the package logger for one run.
func WithLogger(l *zap.Logger) Option {
	return func(c *Compiler) {
		c.log = l
	}
}

func NewCompiler(cat catalog.Catalog, opts ...Option) *Compiler {
	c := &Compiler{
		cat:      cat,
		sizes:    NewSizeCache(cat),
		compiled: make(map[catalog.TypeID]*CompiledType),
		pending:  make(map[catalog.TypeID]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = Logger()
	}
	return c
}

func (c *Compiler) Sizes() *SizeCache {
	return c.sizes
}

// Compile returns the representation of id, compiling it and everything it
// references on first use. Qualifiers compile to their resolved target.
func (c *Compiler) Compile(id catalog.TypeID) (*CompiledType, error) {
	if ct, ok := c.compiled[id]; ok {
		return ct, nil
	}
	if _, busy := c.pending[id]; busy {
		return nil, errors.MalformedTypeGraph("type %d contains itself", id)
	}

	d, err := c.cat.Get(id)
	if err != nil {
		return nil, err
	}

	c.pending[id] = struct{}{}
	ct, err := c.compile(id, d)
	delete(c.pending, id)
	if err != nil {
		return nil, err
	}

	c.compiled[id] = ct
	return ct, nil
}

func (c *Compiler) compile(id catalog.TypeID, d catalog.Descriptor) (*CompiledType, error) {
	var (
		ct  *CompiledType
		err error
	)

	switch d.Kind() {
	case catalog.KindInt:
		ct, err = c.compileInt(d.(*catalog.Int))
	case catalog.KindFloat:
		ct, err = c.compileFloat(d.(*catalog.Float))
	case catalog.KindPointer:
		ct, err = c.compilePointer(d.(*catalog.Pointer))
	case catalog.KindArray:
		ct, err = c.compileArray(id, d.(*catalog.Array))
	case catalog.KindStruct:
		ct, err = c.compileStruct(id, d.(*catalog.Struct))
	case catalog.KindEnum:
		ct, err = c.compileEnum(id, d.(*catalog.Enum))
	case catalog.KindQualifier:
		resolved, _, rerr := ResolveQualifiers(c.cat, id)
		if rerr != nil {
			return nil, rerr
		}
		return c.Compile(resolved)
	case catalog.KindOther:
		return nil, errors.UnsupportedType(nil, RepresentationName(id), d.(*catalog.Other).What)
	default:
		return nil, errors.MalformedTypeGraph("type %d has unknown kind %s", id, d.Kind())
	}
	if err != nil {
		return nil, err
	}

	ct.ID = uint32(id)
	ct.Name = RepresentationName(id)
	ct.Decl = d.TypeName()
	return ct, nil
}

// Generate produces a bundle for every supported type of the catalog, in
// ascending id order. The first error aborts the run.
func (c *Compiler) Generate(ctx context.Context) (*Bundle, error) {
	start := time.Now()
	b := newBundle()

	for _, e := range c.cat.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch e.Type.Kind() {
		case catalog.KindInt, catalog.KindFloat, catalog.KindPointer, catalog.KindArray:
			u, err := c.unit(e.ID)
			if err != nil {
				return nil, err
			}
			b.addUnit(u)

		case catalog.KindStruct, catalog.KindEnum:
			u, err := c.unit(e.ID)
			if err != nil {
				return nil, err
			}
			b.addUnit(u)

			name := e.Type.TypeName()
			if name == "" {
				continue
			}
			if err := b.addPublic(name, u); err != nil {
				return nil, err
			}

		case catalog.KindQualifier, catalog.KindOther:

		default:
			return nil, errors.MalformedTypeGraph("type %d has unknown kind %s", e.ID, e.Type.Kind())
		}
	}

	c.log.Info("generated bundle",
		zap.Int("internal", len(b.Internal)),
		zap.Int("public", len(b.Public)),
		zap.Int("sizes", c.sizes.Len()),
		zap.Duration("elapsed", time.Since(start)))

	return b, nil
}

func (c *Compiler) unit(id catalog.TypeID) (*Unit, error) {
	ct, err := c.Compile(id)
	if err != nil {
		return nil, err
	}
	u := newUnit(id, ct)
	c.log.Debug("compiled unit",
		zap.String("name", u.Name),
		zap.Stringer("kind", ct.Kind),
		zap.Uint32("size", ct.Size))
	return u, nil
}

// Generate runs a fresh Compiler over cat.
func Generate(ctx context.Context, cat catalog.Catalog, opts ...Option) (*Bundle, error) {
	return NewCompiler(cat, opts...).Generate(ctx)
}
