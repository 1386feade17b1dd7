// dao/resource_store.go
package dao

import (
	"context"
	"sort"
	"sync"

	"github.com/dev-mohitbeniwal/workbench/model"
	"github.com/dev-mohitbeniwal/workbench/util"
)

// ResourceStore is the process wide uuid keyed cache of every resource the
// explorer has loaded. Entries are replaced whole and never removed.
type ResourceStore struct {
	mu       sync.RWMutex
	items    map[string]model.Resource
	eventBus *util.EventBus
}

func NewResourceStore(eventBus *util.EventBus) *ResourceStore {
	return &ResourceStore{
		items:    make(map[string]model.Resource),
		eventBus: eventBus,
	}
}

// Merge stores each resource under its uuid, replacing any previous value.
// Later arguments win over earlier ones with the same uuid.
func (s *ResourceStore) Merge(ctx context.Context, resources ...model.Resource) int {
	merged := make([]model.Resource, 0, len(resources))

	s.mu.Lock()
	for _, res := range resources {
		if res == nil {
			continue
		}
		uuid := res.Header().UUID
		if uuid == "" {
			continue
		}
		s.items[uuid] = res
		merged = append(merged, res)
	}
	s.mu.Unlock()

	if len(merged) > 0 {
		s.eventBus.Publish(ctx, util.EventResourcesMerged, merged)
	}
	return len(merged)
}

func (s *ResourceStore) Get(uuid string) (model.Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.items[uuid]
	return res, ok
}

func (s *ResourceStore) Has(uuid string) bool {
	_, ok := s.Get(uuid)
	return ok
}

// GetMany returns the stored resources for uuids in the requested order,
// skipping uuids that are not stored.
func (s *ResourceStore) GetMany(uuids []string) []model.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Resource, 0, len(uuids))
	for _, uuid := range uuids {
		if res, ok := s.items[uuid]; ok {
			out = append(out, res)
		}
	}
	return out
}

// Missing returns the uuids that are not stored, preserving order.
func (s *ResourceStore) Missing(uuids []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, uuid := range uuids {
		if _, ok := s.items[uuid]; !ok {
			out = append(out, uuid)
		}
	}
	return out
}

func (s *ResourceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns every stored resource sorted by uuid.
func (s *ResourceStore) Snapshot() []model.Resource {
	s.mu.RLock()
	out := make([]model.Resource, 0, len(s.items))
	for _, res := range s.items {
		out = append(out, res)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Header().UUID < out[j].Header().UUID
	})
	return out
}

// Children scans for resources owned by ownerUUID, newest first.
func (s *ResourceStore) Children(ownerUUID string, limit int, offset int) []model.Resource {
	s.mu.RLock()
	var children []model.Resource
	for _, res := range s.items {
		if res.Header().OwnerUUID == ownerUUID {
			children = append(children, res)
		}
	}
	s.mu.RUnlock()

	sort.Slice(children, func(i, j int) bool {
		a, b := children[i].Header(), children[j].Header()
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.UUID < b.UUID
	})
	if offset >= len(children) {
		return []model.Resource{}
	}
	children = children[offset:]
	if limit > 0 && limit < len(children) {
		children = children[:limit]
	}
	return children
}
