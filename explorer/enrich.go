// explorer/enrich.go
package explorer

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/model"
)

// Enricher fetches the containers behind container requests so process
// status can be shown next to a loaded page.
type Enricher interface {
	Containers(ctx context.Context, origin string, uuids []string) ([]model.Resource, error)
}

// ContainerUUIDs returns the distinct container uuids referenced by the
// container requests among items, in order.
func ContainerUUIDs(items []model.Resource) []string {
	seen := make(map[string]struct{})
	var uuids []string
	for _, item := range items {
		cr, ok := item.(*model.ContainerRequest)
		if !ok || cr.ContainerUUID == nil || *cr.ContainerUUID == "" {
			continue
		}
		if _, dup := seen[*cr.ContainerUUID]; dup {
			continue
		}
		seen[*cr.ContainerUUID] = struct{}{}
		uuids = append(uuids, *cr.ContainerUUID)
	}
	return uuids
}

// enrich loads, in the background, the containers of items that the store
// does not hold yet. Failures are logged and counted; the panel is never
// touched.
func (e *Engine) enrich(ctx context.Context, origin string, items []model.Resource) {
	if e.enricher == nil {
		return
	}
	missing := e.store.Missing(ContainerUUIDs(items))
	if len(missing) == 0 {
		return
	}

	e.enriching.Add(1)
	go func() {
		defer e.enriching.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.enrichTimeout)
		defer cancel()

		containers, err := e.enricher.Containers(ctx, origin, missing)
		if err != nil {
			logger.Warn("Container enrichment failed",
				zap.String("origin", origin),
				zap.Int("count", len(missing)),
				zap.Error(err))
			e.metrics.Enrichment(origin, "failed")
			return
		}
		e.store.Merge(ctx, containers...)
		e.metrics.Enrichment(origin, "ok")
		e.metrics.SetStoreSize(e.store.Len())
		logger.Debug("Containers merged", zap.String("origin", origin), zap.Int("count", len(containers)))
	}()
}
