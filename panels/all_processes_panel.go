// panels/all_processes_panel.go
package panels

import (
	"context"

	"github.com/dev-mohitbeniwal/workbench/arvados"
	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/filter"
	"github.com/dev-mohitbeniwal/workbench/model"
)

const msgProcessesFetchFailed = "Could not fetch process list."

// AllProcessesPanel lists container requests of the local cluster.
type AllProcessesPanel struct {
	sessions *arvados.Sessions
}

var _ explorer.Binding = &AllProcessesPanel{}

func NewAllProcessesPanel(sessions *arvados.Sessions) *AllProcessesPanel {
	return &AllProcessesPanel{sessions: sessions}
}

func (a *AllProcessesPanel) ID() string          { return AllProcessesPanelID }
func (a *AllProcessesPanel) Mode() explorer.Mode { return explorer.ModeReplace }

func (a *AllProcessesPanel) BuildRequests(ctx context.Context, de model.DataExplorer, opts explorer.RequestOptions) ([]explorer.Request, error) {
	params := explorer.PageParams(de, opts)
	params.Filters = ProcessFilters(de)
	params.Order = filter.GetOrder(de)

	api := a.sessions.Local()
	return []explorer.Request{{
		Origin: api.ClusterID(),
		Params: params,
		Fetch: func(ctx context.Context, params model.ListParams) (*model.ListResults, error) {
			return api.List(ctx, model.KindContainerRequest.Endpoint(), params)
		},
	}}, nil
}

// ProcessFilters combines the Status and Type columns with the name search.
func ProcessFilters(de model.DataExplorer) filter.Filters {
	return filter.Join(
		filter.ProcessStatusFilters(de.ColumnFilters(ColumnStatus)),
		filter.SerializeOnlyProcessTypeFilters(de.ColumnFilters(ColumnType)),
		filter.NewBuilder().AddILike("name", de.SearchValue).Filters(),
	)
}

func (a *AllProcessesPanel) OnSuccess(ctx context.Context, de model.DataExplorer, results []*model.ListResults) explorer.Effects {
	return explorer.Effects{}
}

func (a *AllProcessesPanel) Failure(origins []string, err error) *model.Notification {
	return model.ErrorNotification(msgProcessesFetchFailed)
}
