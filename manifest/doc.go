// Package manifest describes a generated bundle as data: every unit with
// its operation names, kind, size and layout, and the public names bound
// to them. Manifests are written as JSON, YAML or msgpack.
package manifest
