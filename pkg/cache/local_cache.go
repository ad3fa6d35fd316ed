package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const defaultMaxSize = 5000

type entry struct {
	key        string
	value      []byte
	expiration time.Time
}

// LocalCache is an in-memory LRU cache with per-entry expiry. A background
// sweep drops expired entries until Close is called.
type LocalCache struct {
	maxSize   int
	items     map[string]*list.Element
	evictList *list.List
	mu        sync.Mutex
	now       func() time.Time
	stop      chan struct{}
	stopOnce  sync.Once
}

func NewLocalCache(maxSize int) *LocalCache {
	return newLocalCache(maxSize, time.Minute, time.Now)
}

func newLocalCache(maxSize int, sweepEvery time.Duration, now func() time.Time) *LocalCache {
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	c := &LocalCache{
		maxSize:   maxSize,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
		now:       now,
		stop:      make(chan struct{}),
	}
	go c.startEviction(sweepEvery)
	return c
}

func (c *LocalCache) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{key: key, value: append([]byte(nil), value...), expiration: c.now().Add(expiration)}

	if element, found := c.items[key]; found {
		element.Value = e
		c.evictList.MoveToFront(element)
		return nil
	}

	if c.evictList.Len() >= c.maxSize {
		c.evict()
	}
	c.items[key] = c.evictList.PushFront(e)
	return nil
}

func (c *LocalCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, found := c.items[key]
	if !found {
		return nil, false, nil
	}
	e := element.Value.(entry)
	if c.now().After(e.expiration) {
		c.remove(element)
		return nil, false, nil
	}
	c.evictList.MoveToFront(element)
	return append([]byte(nil), e.value...), true, nil
}

func (c *LocalCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if element, found := c.items[key]; found {
		c.remove(element)
	}
	return nil
}

func (c *LocalCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Close stops the background sweep.
func (c *LocalCache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return nil
}

// evict drops the least recently used entry. Callers hold mu.
func (c *LocalCache) evict() {
	if element := c.evictList.Back(); element != nil {
		c.remove(element)
	}
}

func (c *LocalCache) remove(element *list.Element) {
	c.evictList.Remove(element)
	delete(c.items, element.Value.(entry).key)
}

func (c *LocalCache) startEviction(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.evictExpiredItems()
		case <-c.stop:
			return
		}
	}
}

func (c *LocalCache) evictExpiredItems() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for _, element := range c.items {
		if now.After(element.Value.(entry).expiration) {
			c.remove(element)
		}
	}
}
