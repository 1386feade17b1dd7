// util/cache_service.go

package util

import (
	"context"

	"github.com/dev-mohitbeniwal/workbench/db"
	"github.com/dev-mohitbeniwal/workbench/model"
)

// CacheService is the Redis warm cache of resources. With Redis disabled
// every lookup misses and every write is dropped.
type CacheService struct {
	enabled bool
}

func NewCacheService(enabled bool) *CacheService {
	return &CacheService{enabled: enabled}
}

func (c *CacheService) GetResource(ctx context.Context, uuid string) (model.Resource, error) {
	if !c.enabled {
		return nil, nil
	}
	return db.GetCachedResource(ctx, uuid)
}

func (c *CacheService) SetResources(ctx context.Context, resources []model.Resource) error {
	if !c.enabled || len(resources) == 0 {
		return nil
	}
	return db.CacheResources(ctx, resources)
}

func (c *CacheService) DeleteResource(ctx context.Context, uuid string) error {
	if !c.enabled {
		return nil
	}
	return db.DeleteCachedResource(ctx, uuid)
}
