package dedup

import (
	"container/list"
	"sync"
)

// lru is the bounded memory tier: a mutex-guarded map + recency list with
// strict capacity. Contains promotes, so hot signatures survive eviction
// pressure ahead of untouched ones.
type lru struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently accessed
	items    map[string]*list.Element
}

func newLRU(capacity int) *lru {
	if capacity < 1 {
		capacity = 1
	}
	return &lru{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Contains reports whether key is cached and marks it most recently used.
func (c *lru) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if ok {
		c.order.MoveToFront(el)
	}
	return ok
}

// Add inserts key, evicting the least-recently-accessed entry when the
// cache is full. Adding an existing key only refreshes its recency.
func (c *lru) Add(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(string))
		}
	}
	c.items[key] = c.order.PushFront(key)
}

func (c *lru) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.Remove(el)
		delete(c.items, key)
	}
}

func (c *lru) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *lru) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}
