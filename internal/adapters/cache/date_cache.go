package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// RistrettoDateCache remembers publication dates confirmed present in
// the store, sparing the backfill walk a DB round-trip per date. Rates
// are never deleted, so entries need no invalidation.
type RistrettoDateCache struct {
	cache *ristretto.Cache
}

func NewDateCache(maxDates int64) (*RistrettoDateCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxDates,
		MaxCost:     maxDates,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create date cache failed: %w", err)
	}
	return &RistrettoDateCache{cache: c}, nil
}

func (c *RistrettoDateCache) Seen(date string) bool {
	_, ok := c.cache.Get(date)
	return ok
}

func (c *RistrettoDateCache) MarkSeen(date string) {
	c.cache.Set(date, struct{}{}, 1)
}

func (c *RistrettoDateCache) Close() { c.cache.Close() }
