package main

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/wippyai/structbind/runtime"
	"github.com/wippyai/structbind/transcoder"
)

type decodeOptions struct {
	typeName string
	data     string
	format   string
	wasm     string
	export   string
	hex      bool
	addr     uint32
}

func newDecodeCmd(a *app) *cobra.Command {
	var opts decodeOptions
	cmd := &cobra.Command{
		Use:   "decode <input> --type NAME (--data FILE | --wasm FILE)",
		Short: "Decode binary data as one type",
		Long: `Decode reads exactly the size of --type from --data (a file, or - for
stdin) and prints the value. With --wasm the bytes come from the linear
memory of a WebAssembly module instead, at --addr or at the address
returned by calling --export.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDecode(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.typeName, "type", "t", "", "public type name or btf_type_<id>")
	cmd.Flags().StringVar(&opts.data, "data", "", "file holding the bytes, - for stdin")
	cmd.Flags().BoolVar(&opts.hex, "hex", false, "data is hex text rather than raw bytes")
	cmd.Flags().StringVar(&opts.format, "format", "yaml", "value format (yaml|json)")
	cmd.Flags().StringVar(&opts.wasm, "wasm", "", "core wasm module whose memory holds the value")
	cmd.Flags().Uint32Var(&opts.addr, "addr", 0, "address in wasm memory")
	cmd.Flags().StringVar(&opts.export, "export", "", "wasm export returning the address")
	cmd.Flags().Bool("raw", false, "print enum variants as integers")
	_ = cmd.MarkFlagRequired("type")
	cmd.MarkFlagsMutuallyExclusive("data", "wasm")
	cmd.MarkFlagsOneRequired("data", "wasm")
	cmd.MarkFlagsMutuallyExclusive("addr", "export")
	return cmd
}

func (a *app) runDecode(cmd *cobra.Command, input string, opts decodeOptions) error {
	ctx := cmd.Context()
	b, err := a.loadBundle(ctx, input)
	if err != nil {
		return err
	}
	u, err := findUnit(b, opts.typeName)
	if err != nil {
		return err
	}

	var v any
	if opts.wasm != "" {
		v, err = decodeFromWasm(ctx, u, opts)
	} else {
		var data []byte
		data, err = readInput(opts.data)
		if err == nil && opts.hex {
			data, err = parseHex(string(data))
		}
		if err == nil {
			v, err = u.Decode(data)
		}
	}
	if err != nil {
		return err
	}

	out, err := formatValue(u, v, opts.format, a.cfg.Raw)
	if err != nil {
		return err
	}
	return writeOutput(cmd, "", out)
}

func decodeFromWasm(ctx context.Context, u *transcoder.Unit, opts decodeOptions) (any, error) {
	module, err := readInput(opts.wasm)
	if err != nil {
		return nil, err
	}
	inst, err := runtime.Open(ctx, module, runtime.WithWASI())
	if err != nil {
		return nil, err
	}
	defer inst.Close(ctx)

	addr := opts.addr
	if opts.export != "" {
		res, err := inst.Call(ctx, opts.export)
		if err != nil {
			return nil, err
		}
		if len(res) != 1 {
			return nil, errors.Newf("export %s returned %d values, want an address", opts.export, len(res))
		}
		addr = uint32(res[0])
	}

	mem, err := inst.Memory()
	if err != nil {
		return nil, err
	}
	return u.DecodeFrom(mem, addr)
}

// parseHex accepts hex digits separated by any whitespace.
func parseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex")
	}
	return b, nil
}
