package safetpl

import (
	"container/list"
	"sync"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/interp"
)

// planCache 以模板文本为 key 的 LRU 编译缓存。
type planCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List
	maxSize int
}

type cacheEntry struct {
	key  string
	plan *interp.Plan
}

func newPlanCache(maxSize int) *planCache {
	return &planCache{
		entries: make(map[string]*list.Element),
		lru:     list.New(),
		maxSize: maxSize,
	}
}

func (c *planCache) get(key string) (*interp.Plan, bool) {
	if c.maxSize <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(elem)

	return elem.Value.(*cacheEntry).plan, true
}

func (c *planCache) put(key string, plan *interp.Plan) {
	if c.maxSize <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).plan = plan
		c.lru.MoveToFront(elem)

		return
	}

	if c.lru.Len() >= c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			delete(c.entries, oldest.Value.(*cacheEntry).key)
			c.lru.Remove(oldest)
		}
	}
	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, plan: plan})
}

func (c *planCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}

func (c *planCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.lru.Init()
}
