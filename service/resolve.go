// service/resolve.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/workbench/dao"
	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/model"
)

// resolveResources looks each uuid up in the store, then in the warm cache.
// Uuids found nowhere are left out; the others keep their order.
func resolveResources(ctx context.Context, store *dao.ResourceStore, cache ResourceCache, uuids []string) []model.Resource {
	resources := make([]model.Resource, 0, len(uuids))
	for _, uuid := range uuids {
		if res, ok := store.Get(uuid); ok {
			resources = append(resources, res)
			continue
		}
		if cache == nil {
			continue
		}
		res, err := cache.GetResource(ctx, uuid)
		if err != nil {
			logger.Warn("Cache lookup failed", zap.String("uuid", uuid), zap.Error(err))
			continue
		}
		if res != nil {
			resources = append(resources, res)
		}
	}
	return resources
}
