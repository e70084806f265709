package runtime

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/structbind"
	"github.com/wippyai/structbind/errors"
)

// DefaultMemory is the export name Memory tries first.
const DefaultMemory = "memory"

type Instance struct {
	mod      api.Module
	compiled wazero.CompiledModule
	owner    *Runtime
}

// Memory returns the instance's linear memory as a structbind.Memory. The
// export named "memory" is preferred; any other exported or imported
// memory is used otherwise.
func (i *Instance) Memory() (structbind.Memory, error) {
	if _, ok := i.compiled.ExportedMemories()[DefaultMemory]; ok {
		return WrapMemory(i.mod.ExportedMemory(DefaultMemory)), nil
	}
	if hasMemory(i.compiled) {
		return WrapMemory(i.mod.Memory()), nil
	}
	return nil, errors.NotFound(errors.PhaseRuntime, "memory export", DefaultMemory)
}

// ExportedMemory returns the memory exported under name.
func (i *Instance) ExportedMemory(name string) (structbind.Memory, error) {
	if _, ok := i.compiled.ExportedMemories()[name]; !ok {
		return nil, errors.NotFound(errors.PhaseRuntime, "memory export", name)
	}
	return WrapMemory(i.mod.ExportedMemory(name)), nil
}

// hasMemory reports whether the module defines or imports a memory.
// api.Module.Memory cannot tell: it returns a typed nil when there is none.
func hasMemory(compiled wazero.CompiledModule) bool {
	return len(compiled.ExportedMemories()) > 0 || len(compiled.ImportedMemories()) > 0
}

// Call invokes an exported function with raw wasm values. Exports that
// hand back a struct usually return its address in linear memory.
func (i *Instance) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	fn := i.mod.ExportedFunction(name)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseRuntime, "function export", name)
	}
	results, err := fn.Call(ctx, params...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidInput, err, "call "+name)
	}
	return results, nil
}

// Exports lists the exported function names.
func (i *Instance) Exports() []string {
	defs := i.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	return names
}

func (i *Instance) Close(ctx context.Context) error {
	err := i.mod.Close(ctx)
	if cerr := i.compiled.Close(ctx); err == nil {
		err = cerr
	}
	if i.owner != nil {
		if cerr := i.owner.Close(ctx); err == nil {
			err = cerr
		}
	}
	return err
}
