// service/panel_service.go
package service

//go:generate mockgen -source=panel_service.go -destination=../test/service_mock/panel_service.go -package=mock_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/workbench/audit"
	"github.com/dev-mohitbeniwal/workbench/dao"
	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	"github.com/dev-mohitbeniwal/workbench/explorer"
	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/model"
	"github.com/dev-mohitbeniwal/workbench/panels"
	"github.com/dev-mohitbeniwal/workbench/util"
)

// ResourceCache is the warm cache behind the in-memory store.
type ResourceCache interface {
	GetResource(ctx context.Context, uuid string) (model.Resource, error)
	SetResources(ctx context.Context, resources []model.Resource) error
	DeleteResource(ctx context.Context, uuid string) error
}

// OwnershipMirror keeps the owner edges of seen resources queryable.
type OwnershipMirror interface {
	MirrorResources(ctx context.Context, resources []model.Resource) error
	ListChildren(ctx context.Context, ownerUUID string, limit int, offset int) ([]string, error)
}

// PanelView is a panel state with its items resolved to resources.
type PanelView struct {
	model.DataExplorer
	Resources []model.Resource `json:"resources"`
}

// IPanelService defines the interface for panel operations
type IPanelService interface {
	ListPanels(ctx context.Context) []model.DataExplorer
	GetPanel(ctx context.Context, id string) (*PanelView, error)
	Dispatch(ctx context.Context, id string, action model.Action) (*PanelView, error)
	RequestItems(ctx context.Context, id string, opts explorer.RequestOptions) (explorer.Outcome, error)
	SetProject(ctx context.Context, projectUUID string, trashed bool) (*PanelView, error)
	SetSearchValue(ctx context.Context, id string, value string) (*PanelView, error)
}

// PanelService drives panel state through the explorer engine
type PanelService struct {
	engine          *explorer.Engine
	store           *dao.ResourceStore
	project         *panels.ProjectPanel
	validationUtil  *util.ValidationUtil
	cache           ResourceCache
	ownership       OwnershipMirror
	auditService    audit.Service
	notificationSvc *util.NotificationService
}

var _ IPanelService = &PanelService{}

type PanelServiceDeps struct {
	Engine          *explorer.Engine
	Store           *dao.ResourceStore
	Project         *panels.ProjectPanel
	ValidationUtil  *util.ValidationUtil
	Cache           ResourceCache
	Ownership       OwnershipMirror
	AuditService    audit.Service
	NotificationSvc *util.NotificationService
	EventBus        *util.EventBus
}

// NewPanelService creates a new instance of PanelService. Cache, Ownership
// and AuditService are optional.
func NewPanelService(deps PanelServiceDeps) *PanelService {
	service := &PanelService{
		engine:          deps.Engine,
		store:           deps.Store,
		project:         deps.Project,
		validationUtil:  deps.ValidationUtil,
		cache:           deps.Cache,
		ownership:       deps.Ownership,
		auditService:    deps.AuditService,
		notificationSvc: deps.NotificationSvc,
	}

	if deps.EventBus != nil {
		deps.EventBus.Subscribe(util.EventResourcesMerged, service.handleResourcesMerged)
	}

	return service
}

func (s *PanelService) handleResourcesMerged(ctx context.Context, event util.Event) error {
	resources, ok := event.Payload.([]model.Resource)
	if !ok || len(resources) == 0 {
		return nil
	}

	var errs []error
	if s.cache != nil {
		if err := s.cache.SetResources(ctx, resources); err != nil {
			logger.Warn("Failed to cache merged resources", zap.Error(err), zap.Int("count", len(resources)))
			errs = append(errs, err)
		}
	}
	if s.ownership != nil {
		if err := s.ownership.MirrorResources(ctx, resources); err != nil {
			logger.Warn("Failed to mirror resource ownership", zap.Error(err), zap.Int("count", len(resources)))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *PanelService) ListPanels(ctx context.Context) []model.DataExplorer {
	registry := s.engine.Registry()
	ids := registry.IDs()
	out := make([]model.DataExplorer, 0, len(ids))
	for _, id := range ids {
		if de, err := registry.Get(id); err == nil {
			out = append(out, de)
		}
	}
	return out
}

// GetPanel returns the panel state with its items looked up in the store,
// then in the warm cache. Items found nowhere are left out of Resources.
func (s *PanelService) GetPanel(ctx context.Context, id string) (*PanelView, error) {
	if _, ok := s.engine.Binding(id); !ok {
		return nil, fmt.Errorf("%w: %s", wb_errors.ErrPanelNotFound, id)
	}
	de, err := s.engine.Registry().Get(id)
	if err != nil {
		return nil, err
	}

	return &PanelView{DataExplorer: de, Resources: resolveResources(ctx, s.store, s.cache, de.Items)}, nil
}

// Dispatch applies a client action and reloads the panel when the action
// changes what it lists.
func (s *PanelService) Dispatch(ctx context.Context, id string, action model.Action) (*PanelView, error) {
	if err := s.validationUtil.ValidateAction(action); err != nil {
		logger.Error("Validation for panel action failed", zap.Error(err), zap.String("panel", id))
		return nil, err
	}
	if _, ok := s.engine.Binding(id); !ok {
		return nil, fmt.Errorf("%w: %s", wb_errors.ErrPanelNotFound, id)
	}

	registry := s.engine.Registry()
	de, err := registry.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.validationUtil.ValidateColumn(de, action); err != nil {
		logger.Error("Validation for panel action failed", zap.Error(err), zap.String("panel", id))
		return nil, err
	}
	if action.Type != model.ActionRequestItems {
		if _, err := registry.Dispatch(id, action); err != nil {
			return nil, err
		}
	}

	reload := action.Reload()
	if reload.ResetPagination {
		if _, err := registry.Dispatch(id, model.Action{Type: model.ActionResetPagination}); err != nil {
			return nil, err
		}
	}
	if reload.Needed {
		if _, err := s.RequestItems(ctx, id, explorer.RequestOptions{
			CriteriaChanged: reload.CriteriaChanged,
			Background:      action.Background,
		}); err != nil {
			return nil, err
		}
	}

	logger.Info("Panel action dispatched",
		zap.String("panel", id),
		zap.String("type", string(action.Type)),
		zap.Bool("reload", reload.Needed))
	return s.GetPanel(ctx, id)
}

// RequestItems runs one load. The returned error is only set when the panel
// does not exist; load failures are carried by the outcome and the panel.
func (s *PanelService) RequestItems(ctx context.Context, id string, opts explorer.RequestOptions) (explorer.Outcome, error) {
	if _, ok := s.engine.Binding(id); !ok {
		return explorer.Outcome{Panel: id}, fmt.Errorf("%w: %s", wb_errors.ErrPanelNotFound, id)
	}

	start := time.Now()
	out := s.engine.RequestItems(ctx, id, opts)
	s.recordLoad(ctx, out, time.Since(start))
	if id == panels.ProjectPanelID && wb_errors.IsNotFound(out.Err) {
		s.evictProject(ctx)
	}
	return out, nil
}

// evictProject drops the cached copy of a project the cluster no longer has.
func (s *PanelService) evictProject(ctx context.Context) {
	uuid, _ := s.project.Project()
	if s.cache == nil || uuid == "" {
		return
	}
	if err := s.cache.DeleteResource(ctx, uuid); err != nil {
		logger.Warn("Failed to evict missing project", zap.String("uuid", uuid), zap.Error(err))
	}
}

// SetProject opens a project in the project panel and loads it. An empty
// uuid opens the current user's home project.
func (s *PanelService) SetProject(ctx context.Context, projectUUID string, trashed bool) (*PanelView, error) {
	if projectUUID == "" {
		if _, err := s.project.ResolveHome(ctx); err != nil {
			logger.Error("Failed to resolve home project", zap.Error(err))
			s.notificationSvc.Notify(ctx, panels.ProjectPanelID, s.project.Failure(nil, err))
			return nil, err
		}
	} else {
		if err := s.validationUtil.ValidateUUID(projectUUID); err != nil {
			return nil, err
		}
		s.project.SetProject(projectUUID, trashed)
	}

	if _, err := s.engine.Registry().Dispatch(panels.ProjectPanelID, model.Action{Type: model.ActionResetPagination}); err != nil {
		return nil, err
	}
	if _, err := s.RequestItems(ctx, panels.ProjectPanelID, explorer.RequestOptions{CriteriaChanged: true}); err != nil {
		return nil, err
	}
	return s.GetPanel(ctx, panels.ProjectPanelID)
}

func (s *PanelService) SetSearchValue(ctx context.Context, id string, value string) (*PanelView, error) {
	action := model.Action{Type: model.ActionSetExplorerSearchValue, SearchValue: value}
	if value == "" {
		action = model.Action{Type: model.ActionResetExplorerSearchValue}
	}
	return s.Dispatch(ctx, id, action)
}

func (s *PanelService) recordLoad(ctx context.Context, out explorer.Outcome, d time.Duration) {
	if s.auditService == nil || out.Generation == 0 {
		return
	}
	load := audit.PanelLoad{
		Panel:          out.Panel,
		Generation:     out.Generation,
		Outcome:        LoadOutcome(out),
		Items:          len(out.Items),
		ItemsAvailable: out.ItemsAvailable,
		FailedOrigins:  out.Failed,
		Duration:       d,
	}
	if out.Err != nil {
		load.Error = out.Err.Error()
	}
	if err := s.auditService.LogLoad(ctx, load); err != nil {
		logger.Warn("Failed to record panel load", zap.String("panel", out.Panel), zap.Error(err))
	}
}

// LoadOutcome classifies a finished load for the audit log.
func LoadOutcome(out explorer.Outcome) string {
	switch {
	case out.Stale:
		return audit.OutcomeStale
	case out.Err != nil:
		return audit.OutcomeFailed
	case len(out.Failed) > 0:
		return audit.OutcomePartial
	}
	return audit.OutcomeLoaded
}
