// Package structbind generates binary codecs from a debug-info type graph.
//
// Given a BTF-style catalog of integers, floats, pointers, fixed arrays,
// structs, enums and typedef/const/volatile/restrict qualifiers, structbind
// produces for every supported type a decoder (bytes to value) and an
// encoder (value to bytes) that reproduce the exact native memory layout.
//
// # Architecture Overview
//
//	structbind/          Root package with the Memory interface
//	├── catalog/         Type graph model and in-memory Table
//	│   └── btfspec/     BTF loader (ELF .BTF section or raw blob)
//	├── transcoder/      Type-directed codec generator and runtime codecs
//	├── backends/golang/ Go source emitter for a generated bundle
//	├── manifest/        JSON/YAML/msgpack description of a bundle
//	├── runtime/         wazero guest memory adapter
//	├── config/          viper-backed CLI configuration
//	├── errors/          Structured error types
//	└── cmd/structbind/  Command line tool
//
// # Quick Start
//
//	f, _ := os.Open("prog.o")
//	cat, err := btfspec.Load(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bundle, err := transcoder.Generate(ctx, cat)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	event, _ := bundle.Lookup("event")
//	v, err := event.FromBytes(raw)
//
// # Byte Order
//
// All codecs use the byte order of the host. Decoding rejects any buffer
// whose length differs from the declared size; encoding always produces
// exactly the declared size with padding bytes zeroed.
//
// # Thread Safety
//
// A generation run is single-threaded. The resulting Bundle is immutable and
// its units are safe for concurrent use.
package structbind
