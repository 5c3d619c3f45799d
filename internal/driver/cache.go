package driver

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryEntries bounds the in-memory layer of Cache.
const DefaultMemoryEntries = 256

// Cache keeps recent translations in memory in front of an optional disk
// cache. Safe for concurrent use.
type Cache struct {
	mem  *lru.Cache[Digest, *DiskPayload]
	disk *DiskCache
}

// NewCache builds a cache holding up to entries payloads in memory. disk may
// be nil for a memory-only cache.
func NewCache(entries int, disk *DiskCache) (*Cache, error) {
	if entries <= 0 {
		entries = DefaultMemoryEntries
	}
	mem, err := lru.New[Digest, *DiskPayload](entries)
	if err != nil {
		return nil, err
	}
	return &Cache{mem: mem, disk: disk}, nil
}

// Get looks the key up in memory, then on disk. Disk hits are promoted.
func (c *Cache) Get(key Digest) (*DiskPayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	if p, ok := c.mem.Get(key); ok {
		return p, true, nil
	}
	var p DiskPayload
	ok, err := c.disk.Get(key, &p)
	if err != nil || !ok {
		return nil, false, err
	}
	c.mem.Add(key, &p)
	return &p, true, nil
}

// Put stores payload in both layers.
func (c *Cache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	payload.Schema = diskCacheSchemaVersion
	c.mem.Add(key, payload)
	return c.disk.Put(key, payload)
}

// Len returns the number of payloads held in memory.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.mem.Len()
}

// Purge empties the memory layer and drops the disk cache.
func (c *Cache) Purge() error {
	if c == nil {
		return nil
	}
	c.mem.Purge()
	return c.disk.DropAll()
}
