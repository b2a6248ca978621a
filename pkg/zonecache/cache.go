// Package zonecache caches resolved *time.Location values.
//
// Loading a location reads and parses zoneinfo on every call, and a single
// optimal-time sweep resolves each enabled zone 48 times.
package zonecache

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/maypok86/otter/v2"
)

// LoaderFunc resolves a timezone name to a location.
type LoaderFunc func(name string) (*time.Location, error)

// Cache is an otter-backed cache of timezone locations keyed by name.
// Failed lookups are never cached.
type Cache struct {
	cache  *otter.Cache[string, *time.Location]
	load   LoaderFunc
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a location cache holding at most size entries.
// A nil loader defaults to time.LoadLocation. A nil logger means whatever
// slog.Default() is when a line is written.
func New(size int, load LoaderFunc, logger *slog.Logger) *Cache {
	if load == nil {
		load = time.LoadLocation
	}
	if size <= 0 {
		size = 1024
	}

	cache := otter.Must(&otter.Options[string, *time.Location]{
		MaximumSize:     size,
		InitialCapacity: min(size, 64),
	})

	return &Cache{
		cache:  cache,
		load:   load,
		logger: logger,
	}
}

func (c *Cache) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// Get returns the cached location for name, loading it on a miss.
func (c *Cache) Get(name string) (*time.Location, error) {
	if loc, found := c.cache.GetIfPresent(name); found {
		c.hits.Add(1)
		return loc, nil
	}
	c.misses.Add(1)

	loc, err := c.load(name)
	if err != nil {
		c.log().Debug("location load failed", "timezone", name, "error", err)
		return nil, fmt.Errorf("loading location %q: %w", name, err)
	}

	c.cache.Set(name, loc)
	c.log().Debug("location cached", "timezone", name)
	return loc, nil
}

// Invalidate drops a single entry.
func (c *Cache) Invalidate(name string) {
	c.cache.Invalidate(name)
}

// Stats returns basic counters for diagnostics.
func (c *Cache) Stats() map[string]int64 {
	return map[string]int64{
		"size":   int64(c.cache.EstimatedSize()),
		"hits":   c.hits.Load(),
		"misses": c.misses.Load(),
	}
}
