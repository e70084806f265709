package runtime

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/structbind/errors"
)

// Runtime owns a wazero runtime and the modules instantiated in it.
type Runtime struct {
	rt   wazero.Runtime
	log  *zap.Logger
	wasi bool
}

type Option func(*Runtime)

// WithWASI instantiates wasi_snapshot_preview1 so modules built for WASI
// can be opened.
func WithWASI() Option {
	return func(r *Runtime) { r.wasi = true }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) { r.log = l }
}

func New(ctx context.Context, opts ...Option) (*Runtime, error) {
	r := &Runtime{log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}

	r.rt = wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))
	if r.wasi {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, r.rt); err != nil {
			_ = r.rt.Close(ctx)
			return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidInput, err, "instantiate WASI")
		}
	}
	return r, nil
}

// Close releases the runtime and every instance opened from it.
func (r *Runtime) Close(ctx context.Context) error {
	return r.rt.Close(ctx)
}

// Open compiles and instantiates a core WASM module. The start function,
// if any, runs before Open returns.
func (r *Runtime) Open(ctx context.Context, wasm []byte) (*Instance, error) {
	compiled, err := r.rt.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidInput, err, "compile module")
	}

	cfg := wazero.NewModuleConfig().WithName("").WithStartFunctions()
	if r.wasi {
		cfg = cfg.WithStartFunctions("_initialize")
	}
	mod, err := r.rt.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidInput, err, "instantiate module")
	}

	r.log.Debug("opened module",
		zap.Int("bytes", len(wasm)),
		zap.Int("exports", len(compiled.ExportedFunctions())),
		zap.Bool("memory", hasMemory(compiled)))

	return &Instance{mod: mod, compiled: compiled}, nil
}

// Open is a convenience for a single module in its own runtime. Closing
// the instance closes the runtime.
func Open(ctx context.Context, wasm []byte, opts ...Option) (*Instance, error) {
	r, err := New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	inst, err := r.Open(ctx, wasm)
	if err != nil {
		_ = r.Close(ctx)
		return nil, err
	}
	inst.owner = r
	return inst, nil
}
