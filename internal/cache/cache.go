package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"qsearch/internal/domain"
)

// ResultCache stores result pages by (query, page).
// Implementations are used from a single goroutine and need no locking
// of their own, although the LRU variant is safe for concurrent use.
type ResultCache interface {
	Get(key domain.PageKey) (domain.ResultPage, bool)
	Put(key domain.PageKey, page domain.ResultPage)
	Len() int
}

// New returns an unbounded cache when size is 0, otherwise an LRU cache
// holding at most size pages.
func New(size int) ResultCache {
	if size <= 0 {
		return NewUnbounded()
	}
	c, err := lru.New[domain.PageKey, domain.ResultPage](size)
	if err != nil {
		// Only returned for a non-positive size
		return NewUnbounded()
	}
	return &lruCache{entries: c}
}

// mapCache never evicts; entries live for the whole session
type mapCache struct {
	entries map[domain.PageKey]domain.ResultPage
}

// NewUnbounded creates a cache that keeps every page it is given
func NewUnbounded() ResultCache {
	return &mapCache{entries: make(map[domain.PageKey]domain.ResultPage)}
}

func (c *mapCache) Get(key domain.PageKey) (domain.ResultPage, bool) {
	page, ok := c.entries[key]
	if !ok {
		return domain.ResultPage{}, false
	}
	return page.Clone(), true
}

func (c *mapCache) Put(key domain.PageKey, page domain.ResultPage) {
	c.entries[key] = page.Clone()
}

func (c *mapCache) Len() int {
	return len(c.entries)
}

type lruCache struct {
	entries *lru.Cache[domain.PageKey, domain.ResultPage]
}

func (c *lruCache) Get(key domain.PageKey) (domain.ResultPage, bool) {
	page, ok := c.entries.Get(key)
	if !ok {
		return domain.ResultPage{}, false
	}
	return page.Clone(), true
}

func (c *lruCache) Put(key domain.PageKey, page domain.ResultPage) {
	c.entries.Add(key, page.Clone())
}

func (c *lruCache) Len() int {
	return c.entries.Len()
}
