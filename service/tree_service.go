// service/tree_service.go
package service

//go:generate mockgen -source=tree_service.go -destination=../test/service_mock/tree_service.go -package=mock_service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/workbench/arvados"
	"github.com/dev-mohitbeniwal/workbench/dao"
	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/model"
	"github.com/dev-mohitbeniwal/workbench/util"
)

const defaultChildrenLimit = 50

// ITreeService defines the interface for single resource lookups
type ITreeService interface {
	GetResource(ctx context.Context, uuid string) (model.Resource, error)
	Children(ctx context.Context, ownerUUID string, limit int, offset int) ([]model.Resource, error)
}

// TreeService resolves resources and their children without going through
// a panel.
type TreeService struct {
	store          *dao.ResourceStore
	sessions       *arvados.Sessions
	cache          ResourceCache
	ownership      OwnershipMirror
	validationUtil *util.ValidationUtil
}

var _ ITreeService = &TreeService{}

// NewTreeService creates a new instance of TreeService. cache and ownership
// may be nil.
func NewTreeService(store *dao.ResourceStore, sessions *arvados.Sessions, cache ResourceCache, ownership OwnershipMirror, validationUtil *util.ValidationUtil) *TreeService {
	return &TreeService{
		store:          store,
		sessions:       sessions,
		cache:          cache,
		ownership:      ownership,
		validationUtil: validationUtil,
	}
}

// GetResource looks in the store, then the warm cache, then asks the
// cluster that owns the uuid. Remote hits are merged into the store.
func (s *TreeService) GetResource(ctx context.Context, uuid string) (model.Resource, error) {
	if err := s.validationUtil.ValidateUUID(uuid); err != nil {
		return nil, err
	}
	if res, ok := s.store.Get(uuid); ok {
		return res, nil
	}
	if s.cache != nil {
		res, err := s.cache.GetResource(ctx, uuid)
		if err != nil {
			logger.Warn("Cache lookup failed", zap.String("uuid", uuid), zap.Error(err))
		} else if res != nil {
			return res, nil
		}
	}

	endpoint := model.KindFromUUID(uuid).Endpoint()
	if endpoint == "" {
		return nil, fmt.Errorf("%w: %s", wb_errors.ErrUnknownResourceKind, uuid)
	}
	res, err := s.sessions.ForUUID(uuid).Get(ctx, endpoint, uuid)
	if err != nil {
		if wb_errors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", wb_errors.ErrResourceNotFound, uuid)
		}
		logger.Error("Failed to fetch resource", zap.String("uuid", uuid), zap.Error(err))
		return nil, err
	}
	s.store.Merge(ctx, res)
	return res, nil
}

// Children lists resources owned by ownerUUID, newest first. The Neo4j
// mirror answers when configured and its uuids are resolved like GetPanel
// items. Without the mirror, or when it fails, the store is scanned.
func (s *TreeService) Children(ctx context.Context, ownerUUID string, limit int, offset int) ([]model.Resource, error) {
	if err := s.validationUtil.ValidateUUID(ownerUUID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultChildrenLimit
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset cannot be negative", wb_errors.ErrInvalidPagination)
	}

	if s.ownership != nil {
		uuids, err := s.ownership.ListChildren(ctx, ownerUUID, limit, offset)
		if err == nil {
			return resolveResources(ctx, s.store, s.cache, uuids), nil
		}
		logger.Warn("Ownership mirror unavailable, scanning store",
			zap.String("owner", ownerUUID),
			zap.Error(err))
	}
	return s.store.Children(ownerUUID, limit, offset), nil
}
