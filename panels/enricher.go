// panels/enricher.go
package panels

import (
	"context"

	"github.com/dev-mohitbeniwal/workbench/arvados"
	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/filter"
	"github.com/dev-mohitbeniwal/workbench/model"
)

// ContainerEnricher lists containers by uuid on the cluster a page came from.
type ContainerEnricher struct {
	sessions *arvados.Sessions
}

var _ explorer.Enricher = &ContainerEnricher{}

func NewContainerEnricher(sessions *arvados.Sessions) *ContainerEnricher {
	return &ContainerEnricher{sessions: sessions}
}

func (c *ContainerEnricher) Containers(ctx context.Context, origin string, uuids []string) ([]model.Resource, error) {
	api, err := c.sessions.Get(origin)
	if err != nil {
		return nil, err
	}
	res, err := api.List(ctx, model.KindContainer.Endpoint(), model.ListParams{
		Limit:   len(uuids),
		Filters: filter.NewBuilder().AddIn("uuid", uuids).Filters(),
		Count:   model.CountNone,
	})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}
