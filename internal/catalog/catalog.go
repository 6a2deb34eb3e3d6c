package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/llamabot/llamabot/internal/provider"
)

type lister interface {
	ListModels(ctx context.Context) ([]provider.Model, error)
}

// Catalog caches the provider's model list for a bounded window and fills
// in descriptions from the local models_info document. An empty result
// means "catalog unavailable", not "provider has zero models".
type Catalog struct {
	client lister
	ttl    time.Duration
	info   map[string]string
	now    func() time.Time

	mu        sync.Mutex
	cached    []provider.Model
	fetchedAt time.Time
}

func New(client lister, ttl time.Duration, info map[string]string) *Catalog {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	return &Catalog{client: client, ttl: ttl, info: info, now: time.Now}
}

// List returns the cached models while the cache entry is fresh, otherwise
// refreshes from the provider. One global entry, no parameters. A failed
// refresh is cached too, so a flapping provider is polled at most once per
// window.
func (c *Catalog) List(ctx context.Context) []provider.Model {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl {
		return append([]provider.Model(nil), c.cached...)
	}

	models, err := c.client.ListModels(ctx)
	if err != nil {
		log.Printf("[catalog] model list refresh failed: %v", err)
		models = nil
	}
	for i := range models {
		if desc, ok := c.info[models[i].ID]; ok {
			models[i].Info = desc
		}
	}
	c.cached = models
	c.fetchedAt = c.now()
	return append([]provider.Model(nil), c.cached...)
}
