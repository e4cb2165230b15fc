// Package cache keeps recently decoded cities in memory, keyed by the hash of
// the file contents.
package cache

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/seiflotfy/sc2"
)

type key struct {
	sum   uint64
	quick bool
}

// Cache decodes SC2 files and remembers the results. It is safe for
// concurrent use.
type Cache struct {
	entries *lru.Cache[key, *sc2.City]
	opts    []sc2.Option
}

// New returns a cache holding at most size cities. opts are applied to every
// decode the cache performs.
func New(size int, opts ...sc2.Option) (*Cache, error) {
	entries, err := lru.New[key, *sc2.City](size)
	if err != nil {
		return nil, fmt.Errorf("create city cache: %w", err)
	}
	return &Cache{entries: entries, opts: opts}, nil
}

// Decode returns the city stored in data, decoding it on a miss. Failed
// decodes are not cached.
func (c *Cache) Decode(data []byte) (*sc2.City, error) {
	return c.decode(data, false)
}

// DecodeQuick is Decode restricted to the city name, statistics and mayor.
// Quick and full results are cached separately.
func (c *Cache) DecodeQuick(data []byte) (*sc2.City, error) {
	return c.decode(data, true)
}

func (c *Cache) decode(data []byte, quick bool) (*sc2.City, error) {
	k := key{sum: xxhash.Sum64(data), quick: quick}
	if city, ok := c.entries.Get(k); ok {
		return city, nil
	}

	opts := c.opts
	if quick {
		opts = append(opts[:len(opts):len(opts)], sc2.WithQuick())
	}
	city, err := sc2.DecodeBytes(data, opts...)
	if err != nil {
		return nil, err
	}
	c.entries.Add(k, city)
	return city, nil
}

// Len reports the number of cached cities.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached city.
func (c *Cache) Purge() {
	c.entries.Purge()
}
