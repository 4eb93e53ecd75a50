package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Kerhoff/familycart/internal/models"
)

// Snapshot is an immutable view of the loaded category tree.
type Snapshot struct {
	Categories    []models.Category
	SubCategories []models.SubCategory
	LoadedAt      time.Time
}

// Loaded reports whether the snapshot came from a successful load.
func (s Snapshot) Loaded() bool {
	return !s.LoadedAt.IsZero()
}

// LoadFunc produces a fresh snapshot.
type LoadFunc func(ctx context.Context) (Snapshot, error)

// Cache owns the category snapshot. Readers always see a complete snapshot:
// a refresh builds the new one aside and swaps it in, and concurrent
// refreshes share a single load.
type Cache struct {
	load  LoadFunc
	now   func() time.Time
	group singleflight.Group

	mu   sync.RWMutex
	snap Snapshot
}

// NewCache creates an empty cache filled by load.
func NewCache(load LoadFunc) *Cache {
	return &Cache{load: load, now: time.Now}
}

// Snapshot returns the current snapshot.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Refresh loads a new snapshot and replaces the current one. On failure the
// previous snapshot is kept.
func (c *Cache) Refresh(ctx context.Context) (Snapshot, error) {
	v, err, _ := c.group.Do("refresh", func() (interface{}, error) {
		snap, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		snap.LoadedAt = c.now()

		c.mu.Lock()
		c.snap = snap
		c.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return c.Snapshot(), err
	}
	return v.(Snapshot), nil
}

// Invalidate drops the snapshot; the next lazy read reloads it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snap = Snapshot{}
	c.mu.Unlock()
}

// Stale reports whether the snapshot is missing or older than ttl.
func (c *Cache) Stale(ttl time.Duration) bool {
	snap := c.Snapshot()
	if !snap.Loaded() {
		return true
	}
	return c.now().Sub(snap.LoadedAt) > ttl
}
