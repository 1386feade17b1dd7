// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/workbench/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogLoad(ctx context.Context, load audit.PanelLoad) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockAuditService) QueryLoads(ctx context.Context, from, to time.Time, panel string, limit int) ([]audit.PanelLoad, error) {
	args := m.Called(ctx, from, to, panel, limit)
	loads, _ := args.Get(0).([]audit.PanelLoad)
	return loads, args.Error(1)
}

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) LogLoad(ctx context.Context, load audit.PanelLoad) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockAuditRepository) QueryLoads(ctx context.Context, from, to time.Time, panel string, limit int) ([]audit.PanelLoad, error) {
	args := m.Called(ctx, from, to, panel, limit)
	loads, _ := args.Get(0).([]audit.PanelLoad)
	return loads, args.Error(1)
}
