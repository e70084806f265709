package transcoder

import (
	"strconv"

	"github.com/wippyai/structbind/catalog"
	"github.com/wippyai/structbind/errors"
)

const namePrefix = "btf_type_"

// RepresentationName is the name of the value representation for id.
func RepresentationName(id catalog.TypeID) string {
	return namePrefix + strconv.FormatUint(uint64(id), 10)
}

// OperationNames returns the decode and encode operation names for id.
func OperationNames(id catalog.TypeID) (decode, encode string) {
	name := RepresentationName(id)
	return "deserialize_" + name, "serialize_" + name
}

// ParseRepresentationName is the inverse of RepresentationName.
func ParseRepresentationName(name string) (catalog.TypeID, bool) {
	if len(name) <= len(namePrefix) || name[:len(namePrefix)] != namePrefix {
		return 0, false
	}
	n, err := strconv.ParseUint(name[len(namePrefix):], 10, 32)
	if err != nil {
		return 0, false
	}
	return catalog.TypeID(n), true
}

// ResolveQualifiers follows typedef, const, volatile and restrict links
// from id until it reaches a descriptor of another kind.
func ResolveQualifiers(cat catalog.Catalog, id catalog.TypeID) (catalog.TypeID, catalog.Descriptor, error) {
	visited := make(map[catalog.TypeID]struct{})
	for {
		if _, seen := visited[id]; seen {
			return 0, nil, errors.MalformedTypeGraph("qualifier cycle through type %d", id)
		}
		visited[id] = struct{}{}

		d, err := cat.Get(id)
		if err != nil {
			return 0, nil, err
		}
		q, ok := d.(*catalog.Qualifier)
		if !ok {
			return id, d, nil
		}
		id = q.Target
	}
}
