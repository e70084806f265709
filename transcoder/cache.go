package transcoder

import "github.com/wippyai/structbind/catalog"

// SizeCache memoizes catalog sizes for the duration of one generation run.
// Failed lookups are not cached.
type SizeCache struct {
	cat   catalog.Catalog
	sizes map[catalog.TypeID]uint32
}

func NewSizeCache(cat catalog.Catalog) *SizeCache {
	return &SizeCache{
		cat:   cat,
		sizes: make(map[catalog.TypeID]uint32),
	}
}

// Resolve returns the byte size of id, asking the catalog on first use.
func (c *SizeCache) Resolve(id catalog.TypeID) (uint32, error) {
	if size, ok := c.sizes[id]; ok {
		return size, nil
	}
	size, err := c.cat.SizeOf(id)
	if err != nil {
		return 0, err
	}
	c.sizes[id] = size
	return size, nil
}

func (c *SizeCache) Len() int {
	return len(c.sizes)
}
