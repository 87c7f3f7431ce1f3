package cache

import (
	"sync"

	"github.com/ovenlight/bakery-storefront/internal/models"
)

// ProductCache is a small in-process cache for slug lookups on the product
// detail path. No TTL/invalidation yet; entries live until restart.
type ProductCache struct {
	mu    sync.RWMutex
	store map[string]*models.Product
}

func NewProductCache() *ProductCache {
	return &ProductCache{
		store: make(map[string]*models.Product),
	}
}

func (c *ProductCache) Get(slug string) (*models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.store[slug]
	return p, ok
}

func (c *ProductCache) Set(slug string, p *models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[slug] = p
}
