// panels/search_results_panel.go
package panels

import (
	"context"
	"fmt"
	"strings"

	"github.com/dev-mohitbeniwal/workbench/arvados"
	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/filter"
	"github.com/dev-mohitbeniwal/workbench/model"
	"github.com/dev-mohitbeniwal/workbench/util"
)

var searchOrderPrefixes = []string{filter.PrefixCollection, filter.PrefixProcess, filter.PrefixProject}

// SearchResultsPanel searches every logged in cluster at once and appends
// each cluster's page as it arrives. The search value is the panel's own.
type SearchResultsPanel struct {
	sessions *arvados.Sessions
}

var _ explorer.Binding = &SearchResultsPanel{}

func NewSearchResultsPanel(sessions *arvados.Sessions) *SearchResultsPanel {
	return &SearchResultsPanel{sessions: sessions}
}

func (s *SearchResultsPanel) ID() string          { return SearchResultsPanelID }
func (s *SearchResultsPanel) Mode() explorer.Mode { return explorer.ModeAppend }

// BuildRequests returns nothing for an empty search, which leaves the panel
// untouched.
func (s *SearchResultsPanel) BuildRequests(ctx context.Context, de model.DataExplorer, opts explorer.RequestOptions) ([]explorer.Request, error) {
	if strings.TrimSpace(de.SearchValue) == "" {
		return nil, nil
	}
	q := ParseQuery(de.SearchValue)
	apis, err := s.sessions.Search(q.Cluster)
	if err != nil {
		return nil, err
	}

	filters := filter.Join(q.Filters(), filter.SerializeResourceTypeFilters(de.ColumnFilters(ColumnType)))
	order := filter.GetOrder(de, searchOrderPrefixes...)

	requests := make([]explorer.Request, 0, len(apis))
	for _, api := range apis {
		api := api
		params := explorer.PageParams(de, opts)
		params.Count = model.CountExact
		params.Filters = filters
		params.Order = order
		params.IncludeTrash = q.InTrash
		params.IncludeOldVersions = q.PastVersions
		requests = append(requests, explorer.Request{
			Origin: api.ClusterID(),
			Params: params,
			Fetch: func(ctx context.Context, params model.ListParams) (*model.ListResults, error) {
				return api.GroupContents(ctx, "", params)
			},
		})
	}
	return requests, nil
}

// OnSuccess flags an empty result as not found. Searching for a portable
// data hash that matches exactly one collection opens that collection.
func (s *SearchResultsPanel) OnSuccess(ctx context.Context, de model.DataExplorer, results []*model.ListResults) explorer.Effects {
	total := 0
	var matches []string
	for _, res := range results {
		if res.ItemsAvailable != nil {
			total += *res.ItemsAvailable
		} else {
			total += len(res.Items)
		}
		for _, item := range res.Items {
			if c, ok := item.(*model.Collection); ok {
				matches = append(matches, c.UUID)
			}
		}
	}

	effects := explorer.Effects{NotFound: total == 0}
	if util.IsPortableDataHash(strings.TrimSpace(ParseQuery(de.SearchValue).SearchValue)) && len(matches) == 1 {
		effects.NavigateTo = matches[0]
	}
	return effects
}

func (s *SearchResultsPanel) Failure(origins []string, err error) *model.Notification {
	if len(origins) == 0 {
		return model.ErrorNotification(fmt.Sprintf("Could not search: %v.", err))
	}
	return model.ErrorNotification(fmt.Sprintf("Could not fetch search results from %s.", strings.Join(origins, ", ")))
}
