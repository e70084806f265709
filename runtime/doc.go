// Package runtime opens core WebAssembly modules with wazero and exposes
// their linear memory to transcoder units.
//
//	inst, err := runtime.Open(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Close(ctx)
//
//	mem, err := inst.Memory()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, _ := inst.Call(ctx, "current_event")
//	v, err := unit.DecodeFrom(mem, uint32(res[0]))
//
// Linear memory is little-endian; units use the host byte order, so the
// two agree on little-endian hosts only.
package runtime
