package main

import (
	"bytes"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/structbind/backends/golang"
	"github.com/wippyai/structbind/manifest"
	"github.com/wippyai/structbind/transcoder"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <input>...",
		Short: "Generate Go bindings or a manifest from BTF files",
		Long: `Generate reads each BTF input and writes Go source (--format go) or a
manifest of every unit (--format json|yaml|msgpack). A single input is
written to stdout or -o; several inputs need --out-dir, where Go source
for each input goes to its own package directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			return a.runGenerate(cmd, args, out)
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file for a single input")
	cmd.Flags().String("out-dir", "", "directory for one output file per input")
	cmd.Flags().String("format", "go", "output format (go|json|yaml|msgpack)")
	cmd.Flags().String("package", "bindings", "package name of generated Go source")
	cmd.Flags().Int("jobs", 0, "max parallel inputs (0=auto)")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, inputs []string, output string) error {
	if output != "" && a.cfg.OutDir != "" {
		return errors.New("-o and --out-dir are mutually exclusive")
	}
	if len(inputs) > 1 && a.cfg.OutDir == "" {
		return errors.New("several inputs need --out-dir")
	}

	dsts, err := a.outputPaths(inputs, output)
	if err != nil {
		return err
	}

	jobs := a.cfg.Jobs
	if jobs <= 0 {
		jobs = goruntime.GOMAXPROCS(0)
	}

	results := make([][]byte, len(inputs))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(inputs)))

	for i, path := range inputs {
		g.Go(func() error {
			b, err := a.loadBundle(gctx, path)
			if err != nil {
				return err
			}
			src, err := a.render(b, path)
			if err != nil {
				return errors.Wrapf(err, "failed to render %s", path)
			}
			results[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range inputs {
		dst := dsts[i]
		if dst != "" {
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				return errors.Wrap(err, "failed to create output directory")
			}
		}
		if err := writeOutput(cmd, dst, results[i]); err != nil {
			return err
		}
		a.log.Info("generated", zap.String("input", path), zap.String("output", dst), zap.Int("bytes", len(results[i])))
	}
	return nil
}

func (a *app) render(b *transcoder.Bundle, source string) ([]byte, error) {
	if a.cfg.Format == "go" {
		return golang.Generate(b, golang.Options{
			Package: a.cfg.Package,
			Source:  filepath.Base(source),
		})
	}

	format, err := manifest.ParseFormat(a.cfg.Format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := manifest.Write(&buf, manifest.Build(b), format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// outputName derives the output file name from the input: vmlinux.btf
// becomes vmlinux_btf.go for Go source and vmlinux.json for a manifest.
func outputName(input, format string) string {
	return inputBase(input) + outputSuffix(format)
}

func inputBase(input string) string {
	return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
}

func outputSuffix(format string) string {
	if format == "go" {
		return "_btf.go"
	}
	return "." + format
}

// outputPaths maps every input to its destination; "" is stdout. With
// several inputs Go source goes to one directory per input, since each
// file declares the same helpers and sentinel errors. Two inputs that
// would write the same file are rejected.
func (a *app) outputPaths(inputs []string, output string) ([]string, error) {
	dsts := make([]string, len(inputs))
	if a.cfg.OutDir == "" {
		dsts[0] = output
		return dsts, nil
	}

	perDir := a.cfg.Format == "go" && len(inputs) > 1
	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		dst := filepath.Join(a.cfg.OutDir, outputName(in, a.cfg.Format))
		if perDir {
			dst = filepath.Join(a.cfg.OutDir, inputBase(in), outputName(in, a.cfg.Format))
		}
		if prev, dup := seen[dst]; dup {
			return nil, errors.Newf("inputs %s and %s both write %s", prev, in, dst)
		}
		seen[dst] = in
		dsts[i] = dst
	}
	return dsts, nil
}

// writeOutput writes data to path, or to the command's stdout when path
// is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
