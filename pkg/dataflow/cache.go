package dataflow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/askiada/go-dataflow/pkg/dataflow/model"
)

// Cache memoises the requests of the source it wraps. Requests carrying the
// same arguments hit the stored value regardless of argument order. Cached
// values are shared between callers and must be treated as read only.
type Cache[T any] struct {
	info model.NodeInfo
	src  Source[T]
	lg   *slog.Logger

	mu      sync.RWMutex
	entries map[string]T
}

// NewCache wraps a source behind a cache.
func NewCache[T any](src Source[T], opts ...CacheOption[T]) (*Cache[T], error) {
	if src == nil {
		return nil, ErrSourceMustBeSet
	}

	c := &Cache[T]{
		info:    model.NodeInfo{ID: nextNodeID("cache"), Name: "cache", Kind: model.CacheKind},
		src:     src,
		lg:      slog.Default(),
		entries: make(map[string]T),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Cache[T]) Info() model.NodeInfo {
	return c.info
}

func (c *Cache[T]) Upstream() []Node {
	if n, ok := c.src.(Node); ok {
		return []Node{n}
	}

	return nil
}

func (c *Cache[T]) ReqArgs() Set {
	return c.src.ReqArgs()
}

// Request returns the stored value for the arguments when present and pulls
// the source otherwise.
func (c *Cache[T]) Request(ctx context.Context, args Args) (T, error) {
	key := args.Key()

	c.mu.RLock()
	value, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		c.lg.DebugContext(ctx, "cache hit", "cache", c.info.ID, "key", key)

		return value, nil
	}

	c.lg.DebugContext(ctx, "cache miss", "cache", c.info.ID, "key", key)

	value, err := c.src.Request(ctx, args)
	if err != nil {
		var zero T

		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()

	return value, nil
}

// Invalidate drops every stored value.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]T)
}

// Len returns the number of stored values.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
