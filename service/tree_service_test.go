package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/workbench/dao"
	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	"github.com/dev-mohitbeniwal/workbench/model"
	"github.com/dev-mohitbeniwal/workbench/service"
	wb_mock "github.com/dev-mohitbeniwal/workbench/test/mock"
	"github.com/dev-mohitbeniwal/workbench/util"
)

const project = "zzzzz-j7d0g-000000000000001"

func TestGetResourceFetchesOnce(t *testing.T) {
	sessions, fa := newFakeArvados(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/arvados/v1/groups/"+project, r.URL.Path)
		_, _ = w.Write([]byte(`{"uuid":"` + project + `","kind":"arvados#group","name":"Reads","group_class":"project"}`))
	})
	store := dao.NewResourceStore(nil)
	tree := service.NewTreeService(store, sessions, nil, nil, util.NewValidationUtil(nil))

	res, err := tree.GetResource(context.Background(), project)
	require.NoError(t, err)
	assert.Equal(t, "Reads", res.Header().Name)
	assert.True(t, store.Has(project))

	_, err = tree.GetResource(context.Background(), project)
	require.NoError(t, err)
	assert.Equal(t, 1, fa.count())
}

func TestGetResourceErrors(t *testing.T) {
	sessions, _ := newFakeArvados(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	tree := service.NewTreeService(dao.NewResourceStore(nil), sessions, nil, nil, util.NewValidationUtil(nil))
	ctx := context.Background()

	_, err := tree.GetResource(ctx, "zzzzz-4zz18-000000000000404")
	assert.ErrorIs(t, err, wb_errors.ErrResourceNotFound)

	_, err = tree.GetResource(ctx, "zzzzz-qqqqq-000000000000001")
	assert.ErrorIs(t, err, wb_errors.ErrUnknownResourceKind)

	_, err = tree.GetResource(ctx, "bogus")
	assert.ErrorIs(t, err, wb_errors.ErrInvalidResourceData)
}

func TestGetResourceUsesCache(t *testing.T) {
	const uuid = "zzzzz-4zz18-000000000000001"
	sessions, fa := newFakeArvados(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	cache := new(wb_mock.MockResourceCache)
	cache.On("GetResource", mock.Anything, uuid).
		Return(&model.Collection{ResourceHeader: model.ResourceHeader{UUID: uuid}}, nil)

	tree := service.NewTreeService(dao.NewResourceStore(nil), sessions, cache, nil, util.NewValidationUtil(nil))
	res, err := tree.GetResource(context.Background(), uuid)
	require.NoError(t, err)
	assert.Equal(t, uuid, res.Header().UUID)
	assert.Zero(t, fa.count())
}

func seededStore() *dao.ResourceStore {
	store := dao.NewResourceStore(nil)
	store.Merge(context.Background(),
		&model.Collection{ResourceHeader: model.ResourceHeader{UUID: "zzzzz-4zz18-000000000000001", OwnerUUID: project}},
		&model.Collection{ResourceHeader: model.ResourceHeader{UUID: "zzzzz-4zz18-000000000000002", OwnerUUID: project}},
		&model.Collection{ResourceHeader: model.ResourceHeader{UUID: "zzzzz-4zz18-000000000000003", OwnerUUID: "zzzzz-j7d0g-000000000000002"}},
	)
	return store
}

func TestChildrenFromMirror(t *testing.T) {
	mirror := new(wb_mock.MockOwnershipMirror)
	mirror.On("ListChildren", mock.Anything, project, 50, 0).
		Return([]string{"zzzzz-4zz18-000000000000002"}, nil)

	tree := service.NewTreeService(seededStore(), nil, nil, mirror, util.NewValidationUtil(nil))
	children, err := tree.Children(context.Background(), project, 0, 0)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "zzzzz-4zz18-000000000000002", children[0].Header().UUID)
	mirror.AssertExpectations(t)
}

func TestChildrenFallsBackToStore(t *testing.T) {
	mirror := new(wb_mock.MockOwnershipMirror)
	mirror.On("ListChildren", mock.Anything, project, 10, 0).Return(nil, errors.New("neo4j down"))

	tree := service.NewTreeService(seededStore(), nil, nil, mirror, util.NewValidationUtil(nil))
	children, err := tree.Children(context.Background(), project, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"zzzzz-4zz18-000000000000001", "zzzzz-4zz18-000000000000002"}, model.UUIDs(children))

	_, err = tree.Children(context.Background(), project, 10, -1)
	assert.ErrorIs(t, err, wb_errors.ErrInvalidPagination)
}

func TestChildrenFromMirrorWithColdStore(t *testing.T) {
	const child = "zzzzz-4zz18-000000000000007"
	mirror := new(wb_mock.MockOwnershipMirror)
	mirror.On("ListChildren", mock.Anything, project, 50, 0).
		Return([]string{child, "zzzzz-4zz18-000000000000008"}, nil)
	cache := new(wb_mock.MockResourceCache)
	cache.On("GetResource", mock.Anything, child).
		Return(&model.Collection{ResourceHeader: model.ResourceHeader{UUID: child, OwnerUUID: project}}, nil)
	cache.On("GetResource", mock.Anything, "zzzzz-4zz18-000000000000008").Return(nil, nil)

	tree := service.NewTreeService(dao.NewResourceStore(nil), nil, cache, mirror, util.NewValidationUtil(nil))
	children, err := tree.Children(context.Background(), project, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{child}, model.UUIDs(children))
	mirror.AssertExpectations(t)
	cache.AssertExpectations(t)
}
