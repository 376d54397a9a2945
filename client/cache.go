package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// DefaultStaleTime is how long a successful result is served without a
// background refresh.
const DefaultStaleTime = 5 * time.Minute

// Key identifies a cached query, e.g. Key{"project-images", id}.
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

type Status int

const (
	StatusLoading Status = iota
	StatusFailed
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusFailed:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "loading"
	}
}

// State is what a view renders for one key. Data survives a failed
// refresh, in which case Err is also set.
type State struct {
	Status     Status
	Data       any
	Err        error
	UpdatedAt  time.Time
	Refreshing bool
}

type cacheEntry struct {
	data       any
	hasData    bool
	err        error
	fetchedAt  time.Time
	invalid    bool
	refreshing bool
}

// QueryCache is a stale-while-revalidate cache. A cold key blocks the
// caller and concurrent callers share one load. A stale key returns the
// cached value at once and refreshes it in the background, at most one
// refresh per key at a time.
type QueryCache struct {
	mu        sync.Mutex
	entries   map[string]*cacheEntry
	group     singleflight.Group
	staleTime time.Duration
	now       func() time.Time
	logger    zerolog.Logger
	wg        sync.WaitGroup
}

type Option func(*QueryCache)

func WithStaleTime(d time.Duration) Option {
	return func(c *QueryCache) {
		c.staleTime = d
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(c *QueryCache) {
		c.now = now
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *QueryCache) {
		c.logger = logger
	}
}

func NewQueryCache(opts ...Option) *QueryCache {
	c := &QueryCache{
		entries:   make(map[string]*cacheEntry),
		staleTime: DefaultStaleTime,
		now:       time.Now,
		logger:    log.With().Str("component", "queryCache").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the value for key, loading it with load when nothing is
// cached yet.
func (c *QueryCache) Fetch(ctx context.Context, key Key, load func(context.Context) (any, error)) (any, error) {
	k := key.String()

	c.mu.Lock()
	entry, ok := c.entries[k]
	if ok && entry.hasData {
		data := entry.data
		if c.isStale(entry) && !entry.refreshing {
			entry.refreshing = true
			c.wg.Add(1)
			go c.refresh(context.WithoutCancel(ctx), k, load)
		}
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(k, func() (any, error) {
		return c.load(ctx, k, load)
	})
	return v, err
}

func (c *QueryCache) isStale(entry *cacheEntry) bool {
	return entry.invalid || c.now().Sub(entry.fetchedAt) >= c.staleTime
}

func (c *QueryCache) load(ctx context.Context, k string, load func(context.Context) (any, error)) (any, error) {
	data, err := load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := c.entry(k)
	if err != nil {
		entry.err = err
		return nil, err
	}
	entry.data = data
	entry.hasData = true
	entry.err = nil
	entry.invalid = false
	entry.fetchedAt = c.now()
	return data, nil
}

func (c *QueryCache) refresh(ctx context.Context, k string, load func(context.Context) (any, error)) {
	defer c.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Str("key", k).Interface("panic", r).Msg("background refresh panicked")
			c.mu.Lock()
			e := c.entry(k)
			e.refreshing = false
			e.err = fmt.Errorf("refresh %s: panic: %v", k, r)
			c.mu.Unlock()
		}
	}()

	_, err, _ := c.group.Do(k, func() (any, error) {
		return c.load(ctx, k, load)
	})

	c.mu.Lock()
	c.entry(k).refreshing = false
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn().Err(err).Str("key", k).Msg("background refresh failed, keeping cached value")
	}
}

// entry must be called with mu held
func (c *QueryCache) entry(k string) *cacheEntry {
	e, ok := c.entries[k]
	if !ok {
		e = &cacheEntry{}
		c.entries[k] = e
	}
	return e
}

// State reports what is known about key without triggering a load
func (c *QueryCache) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return State{Status: StatusLoading}
	}

	s := State{Data: e.data, Err: e.err, Refreshing: e.refreshing}
	switch {
	case e.hasData:
		s.Status = StatusSuccess
		s.UpdatedAt = e.fetchedAt
	case e.err != nil:
		s.Status = StatusFailed
	default:
		s.Status = StatusLoading
	}
	return s
}

// Invalidate marks key stale; the next Fetch serves the cached value and
// refreshes it.
func (c *QueryCache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key.String()]; ok {
		e.invalid = true
	}
}

// InvalidateByPrefix marks stale every key starting with the given parts
func (c *QueryCache) InvalidateByPrefix(prefix Key) {
	p := prefix.String()

	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		if k == p || strings.HasPrefix(k, p+"/") {
			e.invalid = true
		}
	}
}

// Wait blocks until every background refresh started so far has finished
func (c *QueryCache) Wait() {
	c.wg.Wait()
}
