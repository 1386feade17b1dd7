// cmd/app.go
package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/workbench/arvados"
	"github.com/dev-mohitbeniwal/workbench/audit"
	"github.com/dev-mohitbeniwal/workbench/config"
	"github.com/dev-mohitbeniwal/workbench/dao"
	"github.com/dev-mohitbeniwal/workbench/db"
	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/metrics"
	"github.com/dev-mohitbeniwal/workbench/middleware"
	"github.com/dev-mohitbeniwal/workbench/service"
	"github.com/dev-mohitbeniwal/workbench/util"
)

// app is everything a command needs, built from the loaded configuration.
type app struct {
	cfg      *config.Configuration
	services *service.Services
	eventBus *util.EventBus
	limiter  middleware.Limiter
	closers  []func()
}

func buildApp(ctx context.Context) (*app, error) {
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	eventBus := util.NewEventBus()
	eventBus.Start(ctx)

	a := &app{
		cfg:      cfg,
		eventBus: eventBus,
		limiter:  middleware.NewLocalLimiter(),
	}
	deps := service.Dependencies{
		Sessions: arvados.SessionsFromConfig(cfg.Arvados),
		Explorer: cfg.Explorer,
		Metrics:  metrics.New(),
		EventBus: eventBus,
	}

	if cfg.Redis.Enabled {
		if err := db.InitRedis(); err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, db.CloseRedis)
		deps.Cache = util.NewCacheService(true)
		a.limiter = db.RedisLimiter{}
	}

	if cfg.Neo4j.Enabled {
		if err := db.InitNeo4j(); err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, db.CloseNeo4j)
		deps.Ownership = dao.NewOwnershipDAO(db.Neo4jDriver)
	}

	if cfg.Elasticsearch.Enabled {
		repo, err := audit.NewElasticsearchRepository(cfg.Elasticsearch.URL, cfg.Elasticsearch.Index)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to create audit repository: %w", err)
		}
		deps.AuditService = audit.NewService(repo)
	}

	services, err := service.InitializeServices(deps)
	if err != nil {
		a.close()
		return nil, err
	}
	a.services = services

	logger.Info("Workbench initialized",
		zap.String("cluster", deps.Sessions.Local().ClusterID()),
		zap.Int("sessions", len(deps.Sessions.All())),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("neo4j", cfg.Neo4j.Enabled),
		zap.Bool("elasticsearch", cfg.Elasticsearch.Enabled))
	return a, nil
}

// close waits for background work and releases the backends in reverse
// order.
func (a *app) close() {
	if a.services != nil {
		a.services.Engine.Wait()
	}
	a.eventBus.Drain()
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
