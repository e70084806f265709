package main

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/wippyai/structbind/catalog/btfspec"
	"github.com/wippyai/structbind/transcoder"
)

// loadBundle reads a BTF file (ELF object or raw blob) and generates its
// codec bundle.
func (a *app) loadBundle(ctx context.Context, path string) (*transcoder.Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open input")
	}
	defer f.Close()

	tbl, err := btfspec.Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	b, err := transcoder.Generate(ctx, tbl, transcoder.WithLogger(a.log.Named("generate")))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to generate codecs for %s", path)
	}
	return b, nil
}

// findUnit resolves a public name or a btf_type_<id> name.
func findUnit(b *transcoder.Bundle, name string) (*transcoder.Unit, error) {
	u, ok := b.Find(name)
	if !ok {
		return nil, errors.Newf("no type named %q", name)
	}
	return u, nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, errors.Wrap(err, "failed to read stdin")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return data, nil
}
