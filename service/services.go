// service/services.go
package service

import (
	"github.com/dev-mohitbeniwal/workbench/arvados"
	"github.com/dev-mohitbeniwal/workbench/audit"
	"github.com/dev-mohitbeniwal/workbench/config"
	"github.com/dev-mohitbeniwal/workbench/dao"
	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/metrics"
	"github.com/dev-mohitbeniwal/workbench/panels"
	"github.com/dev-mohitbeniwal/workbench/util"
)

type Services struct {
	Panel         IPanelService
	Tree          ITreeService
	Engine        *explorer.Engine
	Project       *panels.ProjectPanel
	Notifications *util.NotificationService
	Audit         audit.Service
	Metrics       *metrics.Metrics
}

// Dependencies are the collaborators built by the caller. Cache, Ownership
// and AuditService stay nil when their backend is disabled.
type Dependencies struct {
	Sessions     *arvados.Sessions
	Explorer     config.ExplorerConfiguration
	Cache        ResourceCache
	Ownership    OwnershipMirror
	AuditService audit.Service
	Metrics      *metrics.Metrics
	EventBus     *util.EventBus
}

func InitializeServices(deps Dependencies) (*Services, error) {
	registry := explorer.NewRegistry()
	for _, de := range panels.InitialStates(deps.Explorer.RowsPerPage, deps.Explorer.RowsPerPageOptions) {
		if err := registry.Init(de); err != nil {
			return nil, err
		}
	}

	store := dao.NewResourceStore(deps.EventBus)
	notificationSvc := util.NewNotificationService(deps.EventBus)
	validationUtil := util.NewValidationUtil(deps.Explorer.RowsPerPageOptions)

	engine := explorer.NewEngine(explorer.EngineConfig{
		Registry:          registry,
		Store:             store,
		Notifier:          notificationSvc,
		Enricher:          panels.NewContainerEnricher(deps.Sessions),
		Metrics:           deps.Metrics,
		EnrichmentTimeout: deps.Explorer.EnrichmentTimeout,
	})

	project := panels.NewProjectPanel(deps.Sessions)
	engine.Register(project)
	engine.Register(panels.NewSearchResultsPanel(deps.Sessions))
	engine.Register(panels.NewAllProcessesPanel(deps.Sessions))
	engine.Register(panels.NewTrashPanel(deps.Sessions))

	services := &Services{
		Panel: NewPanelService(PanelServiceDeps{
			Engine:          engine,
			Store:           store,
			Project:         project,
			ValidationUtil:  validationUtil,
			Cache:           deps.Cache,
			Ownership:       deps.Ownership,
			AuditService:    deps.AuditService,
			NotificationSvc: notificationSvc,
			EventBus:        deps.EventBus,
		}),
		Tree:          NewTreeService(store, deps.Sessions, deps.Cache, deps.Ownership, validationUtil),
		Engine:        engine,
		Project:       project,
		Notifications: notificationSvc,
		Audit:         deps.AuditService,
		Metrics:       deps.Metrics,
	}

	return services, nil
}
