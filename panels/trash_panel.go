// panels/trash_panel.go
package panels

import (
	"context"
	"fmt"
	"sync"

	"github.com/dev-mohitbeniwal/workbench/arvados"
	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/filter"
	"github.com/dev-mohitbeniwal/workbench/model"
)

const msgTrashFetchFailed = "Could not fetch trash contents."

var trashOrderPrefixes = []string{filter.PrefixCollection, filter.PrefixProject}

// TrashPanel lists the trashed collections and projects below the current
// user's home project.
type TrashPanel struct {
	sessions *arvados.Sessions

	mu       sync.Mutex
	userUUID string
}

var _ explorer.Binding = &TrashPanel{}

func NewTrashPanel(sessions *arvados.Sessions) *TrashPanel {
	return &TrashPanel{sessions: sessions}
}

func (p *TrashPanel) ID() string          { return TrashPanelID }
func (p *TrashPanel) Mode() explorer.Mode { return explorer.ModeReplace }

func (p *TrashPanel) BuildRequests(ctx context.Context, de model.DataExplorer, opts explorer.RequestOptions) ([]explorer.Request, error) {
	params := explorer.PageParams(de, opts)
	params.Filters = TrashFilters(de)
	params.Order = filter.GetOrder(de, trashOrderPrefixes...)
	params.IncludeTrash = true
	params.Recursive = true

	api := p.sessions.Local()
	return []explorer.Request{{
		Origin: api.ClusterID(),
		Params: params,
		Fetch: func(ctx context.Context, params model.ListParams) (*model.ListResults, error) {
			owner, err := p.owner(ctx, api)
			if err != nil {
				return nil, err
			}
			return api.GroupContents(ctx, owner, params)
		},
	}}, nil
}

// owner resolves the current user once; later loads reuse the uuid.
func (p *TrashPanel) owner(ctx context.Context, api arvados.API) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.userUUID != "" {
		return p.userUUID, nil
	}
	user, err := api.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", wb_errors.ErrCurrentUserUnavailable, err)
	}
	if user.UUID == "" {
		return "", wb_errors.ErrCurrentUserUnavailable
	}
	p.userUUID = user.UUID
	return p.userUUID, nil
}

// TrashFilters keeps trashed collections and projects, matched by name.
func TrashFilters(de model.DataExplorer) filter.Filters {
	return filter.NewBuilder().
		AddIsA("uuid", string(model.KindCollection), string(model.KindProject)).
		AddEqual("isTrashed", true, filter.PrefixCollection).
		AddEqual("isTrashed", true, filter.PrefixProject).
		AddILike("name", de.SearchValue, filter.PrefixCollection).
		AddILike("name", de.SearchValue, filter.PrefixProject).
		Filters()
}

func (p *TrashPanel) OnSuccess(ctx context.Context, de model.DataExplorer, results []*model.ListResults) explorer.Effects {
	return explorer.Effects{}
}

func (p *TrashPanel) Failure(origins []string, err error) *model.Notification {
	return model.ErrorNotification(msgTrashFetchFailed)
}
