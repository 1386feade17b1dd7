// audit/service.go
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	LogLoad(ctx context.Context, load PanelLoad) error
	QueryLoads(ctx context.Context, from, to time.Time, panel string, limit int) ([]PanelLoad, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogLoad(ctx context.Context, load PanelLoad) error {
	if load.ID == "" {
		load.ID = uuid.New().String()
	}
	if load.Timestamp.IsZero() {
		load.Timestamp = time.Now().UTC()
	}
	return s.repo.LogLoad(ctx, load)
}

func (s *service) QueryLoads(ctx context.Context, from, to time.Time, panel string, limit int) ([]PanelLoad, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.Add(-24 * time.Hour)
	}
	return s.repo.QueryLoads(ctx, from, to, panel, limit)
}
