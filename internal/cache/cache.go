// Package cache memoizes retrieval results per query so repeated questions
// skip the embed, search and rerank round trips.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/legalchat/legalchat/internal/retrieval"
)

// QueryCache stores retrieval results keyed by the raw query text.
type QueryCache interface {
	Get(ctx context.Context, query string) (*retrieval.Result, bool)
	Set(ctx context.Context, query string, result *retrieval.Result)
	Purge()
}

type entry struct {
	key     string
	value   *retrieval.Result
	expires time.Time
	element *list.Element
}

type lruCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*entry
	order    *list.List
}

// NewLRU creates an in-process LRU cache with capacity and default TTL.
func NewLRU(capacity int, ttl time.Duration) QueryCache {
	if capacity <= 0 {
		capacity = 512
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &lruCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry, capacity),
		order:    list.New(),
	}
}

func (c *lruCache) Get(ctx context.Context, query string) (*retrieval.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[query]; ok {
		if ent.expires.IsZero() || time.Now().Before(ent.expires) {
			c.order.MoveToFront(ent.element)
			return ent.value, true
		}
		c.removeEntry(ent)
	}
	return nil, false
}

func (c *lruCache) Set(ctx context.Context, query string, result *retrieval.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[query]; ok {
		ent.value = result
		ent.expires = time.Now().Add(c.ttl)
		c.order.MoveToFront(ent.element)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictOldest()
	}

	elem := c.order.PushFront(query)
	c.items[query] = &entry{
		key:     query,
		value:   result,
		expires: time.Now().Add(c.ttl),
		element: elem,
	}
}

func (c *lruCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry, c.capacity)
	c.order.Init()
}

func (c *lruCache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	key := elem.Value.(string)
	if ent, ok := c.items[key]; ok {
		c.removeEntry(ent)
	}
}

func (c *lruCache) removeEntry(ent *entry) {
	if ent.element != nil {
		c.order.Remove(ent.element)
	}
	delete(c.items, ent.key)
}
