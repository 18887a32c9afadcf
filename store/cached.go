package store

import (
	"context"
	"sync"
	"time"

	"github.com/bluele/gcache"

	"train-search-server/models"
)

const snapshotKey = "trains"

// Cached serves FetchAllTrains from a short-lived copy of the inner store's
// snapshot. Creating a train drops the copy.
type Cached struct {
	inner Store
	cache gcache.Cache

	// generation is bumped on every create; a fetch that raced with a create
	// does not fill the cache.
	mu         sync.Mutex
	generation uint64
}

func NewCached(inner Store, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: gcache.New(1).LRU().Expiration(ttl).Build(),
	}
}

func (c *Cached) FetchAllTrains(ctx context.Context) ([]models.Train, error) {
	if v, err := c.cache.Get(snapshotKey); err == nil {
		return cloneAll(v.([]models.Train)), nil
	}

	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	trains, err := c.inner.FetchAllTrains(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generation == gen {
		_ = c.cache.Set(snapshotKey, cloneAll(trains))
	}
	c.mu.Unlock()
	return trains, nil
}

func (c *Cached) CreateTrain(ctx context.Context, train models.Train) (models.Train, error) {
	created, err := c.inner.CreateTrain(ctx, train)
	c.mu.Lock()
	c.generation++
	c.cache.Purge()
	c.mu.Unlock()
	return created, err
}

func (c *Cached) Close() error {
	c.cache.Purge()
	return c.inner.Close()
}
