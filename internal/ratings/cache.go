// Package ratings provides cached access to team ratings snapshots.
package ratings

import (
	"context"
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/courtside/internal/models"
	"github.com/yourusername/courtside/internal/repository"
)

// CacheKey represents a unique key for caching ratings lookups
type CacheKey struct {
	Team string
	AsOf time.Time
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s", k.Team, k.AsOf.Format("2006-01-02"))
}

// Cache is a read-through cache in front of the ratings repository. Within a
// prediction run every game hits the same (team, date) snapshots, so lookups
// after the first are served from memory.
type Cache struct {
	cache     *cache.Cache
	repo      repository.RatingsRepository
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewCache creates a new ratings cache backed by the given repository
func NewCache(repo repository.RatingsRepository, ttl time.Duration, maxSize int) *Cache {
	return &Cache{
		cache:   cache.New(ttl, ttl*2),
		repo:    repo,
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// GetLatestForTeam returns the latest snapshot at or before asOf, from cache
// when possible. Not-found results are not cached; the ingestion job may fill
// the gap between lookups.
func (c *Cache) GetLatestForTeam(ctx context.Context, team string, asOf time.Time) (*models.TeamRatings, error) {
	key := CacheKey{Team: team, AsOf: asOf}.String()

	c.mu.Lock()
	if cached, found := c.cache.Get(key); found {
		c.hitCount++
		c.mu.Unlock()
		if ratings, ok := cached.(*models.TeamRatings); ok {
			return ratings, nil
		}
		return nil, fmt.Errorf("unexpected cache entry type for key %s", key)
	}
	c.missCount++
	c.mu.Unlock()

	ratings, err := c.repo.GetLatestForTeam(ctx, team, asOf)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.cache.ItemCount() >= c.maxSize {
		c.cache.DeleteExpired()
	}
	c.cache.Set(key, ratings, c.ttl)
	c.mu.Unlock()

	return ratings, nil
}

// Clear flushes the entire cache
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.hitCount = 0
	c.missCount = 0
}

// Stats returns cache statistics
func (c *Cache) Stats() (hits, misses uint64, ratio float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hits = c.hitCount
	misses = c.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}
