// test/mock/stores.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/workbench/model"
)

// MockResourceCache is a mock of the Redis backed resource cache.
type MockResourceCache struct {
	mock.Mock
}

func (m *MockResourceCache) GetResource(ctx context.Context, uuid string) (model.Resource, error) {
	args := m.Called(ctx, uuid)
	res, _ := args.Get(0).(model.Resource)
	return res, args.Error(1)
}

func (m *MockResourceCache) SetResources(ctx context.Context, resources []model.Resource) error {
	args := m.Called(ctx, resources)
	return args.Error(0)
}

func (m *MockResourceCache) DeleteResource(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

// MockOwnershipMirror is a mock of the Neo4j ownership mirror.
type MockOwnershipMirror struct {
	mock.Mock
}

func (m *MockOwnershipMirror) MirrorResources(ctx context.Context, resources []model.Resource) error {
	args := m.Called(ctx, resources)
	return args.Error(0)
}

func (m *MockOwnershipMirror) ListChildren(ctx context.Context, ownerUUID string, limit int, offset int) ([]string, error) {
	args := m.Called(ctx, ownerUUID, limit, offset)
	uuids, _ := args.Get(0).([]string)
	return uuids, args.Error(1)
}
