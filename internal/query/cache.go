package query

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// DefaultCacheSize bounds the per-id cache.
const DefaultCacheSize = 256

// cache holds the list view and per-id entries. Every invalidation bumps the
// generation; a fill computed under an older generation is dropped so a slow
// read can never resurrect data a mutation already replaced.
type cache struct {
	mu        sync.Mutex
	gen       uint64
	list      []types.Achievement
	listValid bool
	byID      *lru.Cache[int, types.Achievement]
}

func newCache(size int) *cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	byID, err := lru.New[int, types.Achievement](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &cache{byID: byID}
}

// generation returns the current generation for a later fill.
func (c *cache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// getList returns a copy of the cached list view.
func (c *cache) getList() ([]types.Achievement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.listValid {
		return nil, false
	}
	return clone(c.list), true
}

// fillList stores recs as the list view and seeds the per-id entries,
// unless an invalidation happened since gen was read.
func (c *cache) fillList(gen uint64, recs []types.Achievement) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.list = clone(recs)
	c.listValid = true
	for _, rec := range recs {
		c.byID.Add(rec.ID, rec)
	}
	return true
}

func (c *cache) getByID(id int) (types.Achievement, bool) {
	return c.byID.Get(id)
}

// invalidateList drops the list view.
func (c *cache) invalidateList() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.list = nil
	c.listValid = false
}

// invalidateID drops the list view and the entry for id.
func (c *cache) invalidateID(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.list = nil
	c.listValid = false
	c.byID.Remove(id)
}

// invalidateAll drops everything.
func (c *cache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.list = nil
	c.listValid = false
	c.byID.Purge()
}

func clone(recs []types.Achievement) []types.Achievement {
	out := make([]types.Achievement, len(recs))
	copy(out, recs)
	return out
}
