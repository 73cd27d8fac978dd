package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"backend/internal/models"
)

const productsKey = "products:all"

// ProductCache is a short-lived read cache for the unfiltered product list.
// It is invalidated eagerly whenever a price update succeeds, so the TTL only
// bounds staleness from writes outside this process.
type ProductCache struct {
	store *gocache.Cache
}

func NewProductCache(ttl time.Duration) *ProductCache {
	return &ProductCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *ProductCache) Get() ([]models.Product, bool) {
	value, ok := c.store.Get(productsKey)
	if !ok {
		return nil, false
	}
	products, ok := value.([]models.Product)
	return products, ok
}

func (c *ProductCache) Set(products []models.Product) {
	c.store.Set(productsKey, products, gocache.DefaultExpiration)
}

func (c *ProductCache) Invalidate() {
	c.store.Delete(productsKey)
}
