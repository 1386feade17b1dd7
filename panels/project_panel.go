// panels/project_panel.go
package panels

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/workbench/arvados"
	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/filter"
	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/model"
)

const (
	msgProjectNotOpened   = "Project panel is not opened."
	msgProjectNotReady    = "Project panel is not ready."
	msgProjectFetchFailed = "Could not fetch project contents."
)

var projectOrderPrefixes = []string{filter.PrefixCollection, filter.PrefixProject, filter.PrefixWorkflow}

// ProjectPanel lists the contents of the currently opened project.
type ProjectPanel struct {
	sessions *arvados.Sessions

	mu          sync.RWMutex
	projectUUID string
	trashed     bool
}

var _ explorer.Binding = &ProjectPanel{}

func NewProjectPanel(sessions *arvados.Sessions) *ProjectPanel {
	return &ProjectPanel{sessions: sessions}
}

func (p *ProjectPanel) ID() string          { return ProjectPanelID }
func (p *ProjectPanel) Mode() explorer.Mode { return explorer.ModeReplace }

// SetProject opens a project. A trashed project lists its trashed contents.
func (p *ProjectPanel) SetProject(uuid string, trashed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.projectUUID = uuid
	p.trashed = trashed
}

func (p *ProjectPanel) Project() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.projectUUID, p.trashed
}

// ResolveHome opens the home project of the token's user.
func (p *ProjectPanel) ResolveHome(ctx context.Context) (string, error) {
	user, err := p.sessions.Local().CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", wb_errors.ErrCurrentUserUnavailable, err)
	}
	if user.UUID == "" {
		return "", wb_errors.ErrCurrentUserUnavailable
	}
	p.SetProject(user.UUID, false)
	logger.Info("Project panel opened home project", zap.String("uuid", user.UUID))
	return user.UUID, nil
}

func (p *ProjectPanel) BuildRequests(ctx context.Context, de model.DataExplorer, opts explorer.RequestOptions) ([]explorer.Request, error) {
	uuid, trashed := p.Project()
	if uuid == "" {
		return nil, wb_errors.ErrProjectNotSet
	}

	params := explorer.PageParams(de, opts)
	params.Filters = ProjectFilters(de)
	params.Order = filter.GetOrder(de, projectOrderPrefixes...)
	params.IncludeTrash = trashed

	api := p.sessions.ForUUID(uuid)
	return []explorer.Request{{
		Origin: api.ClusterID(),
		Params: params,
		Fetch: func(ctx context.Context, params model.ListParams) (*model.ListResults, error) {
			return api.GroupContents(ctx, uuid, params)
		},
	}}, nil
}

// ProjectFilters combines the Status column, the Type column and the name
// search of a project panel.
func ProjectFilters(de model.DataExplorer) filter.Filters {
	status := filter.ProcessStatusFilters(de.ColumnFilters(ColumnStatus), filter.PrefixProcess)
	types := filter.SerializeDataResourceTypeFilters(de.ColumnFilters(ColumnType))
	names := filter.NewBuilder().
		AddILike("name", de.SearchValue, filter.PrefixCollection).
		AddILike("name", de.SearchValue, filter.PrefixProject).
		Filters()
	return filter.Join(status, types, names)
}

func (p *ProjectPanel) OnSuccess(ctx context.Context, de model.DataExplorer, results []*model.ListResults) explorer.Effects {
	return explorer.Effects{}
}

// Failure stays quiet on 404: the panel shows its not found state instead.
func (p *ProjectPanel) Failure(origins []string, err error) *model.Notification {
	if len(origins) == 0 {
		switch {
		case errors.Is(err, wb_errors.ErrProjectNotSet), errors.Is(err, wb_errors.ErrCurrentUserUnavailable):
			return model.ErrorNotification(msgProjectNotOpened)
		default:
			return model.ErrorNotification(msgProjectNotReady)
		}
	}
	if wb_errors.IsNotFound(err) {
		return nil
	}
	return model.ErrorNotification(msgProjectFetchFailed)
}
