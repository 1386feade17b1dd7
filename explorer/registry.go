// explorer/registry.go
package explorer

import (
	"fmt"
	"sort"
	"sync"

	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	"github.com/dev-mohitbeniwal/workbench/model"
)

// Registry holds the state of every panel. All transitions go through Reduce
// under one mutex; callers only ever see copies.
type Registry struct {
	mu     sync.Mutex
	panels map[string]model.DataExplorer
}

func NewRegistry() *Registry {
	return &Registry{panels: make(map[string]model.DataExplorer)}
}

// Init registers a panel in its initial state.
func (r *Registry) Init(de model.DataExplorer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.panels[de.ID]; ok {
		return fmt.Errorf("%w: %s", wb_errors.ErrPanelAlreadyExists, de.ID)
	}
	r.panels[de.ID] = de.Clone()
	return nil
}

func (r *Registry) Get(id string) (model.DataExplorer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	de, ok := r.panels[id]
	if !ok {
		return model.DataExplorer{}, fmt.Errorf("%w: %s", wb_errors.ErrPanelNotInitialized, id)
	}
	return de.Clone(), nil
}

// IDs returns the registered panel ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.panels))
	for id := range r.panels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Dispatch applies actions in order and returns the resulting state. CLEAR
// and RESET_ITEMS issue a new generation, so a load in flight at that point
// turns stale.
func (r *Registry) Dispatch(id string, actions ...model.Action) (model.DataExplorer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	de, ok := r.panels[id]
	if !ok {
		return model.DataExplorer{}, fmt.Errorf("%w: %s", wb_errors.ErrPanelNotInitialized, id)
	}
	for _, a := range actions {
		de = Reduce(de, a)
		if a.Type.Invalidates() {
			de.Generation++
		}
	}
	r.panels[id] = de
	return de.Clone(), nil
}

// Begin starts a load: it issues the next generation of the panel and
// applies REQUEST_ITEMS. Responses carrying an older generation are stale.
func (r *Registry) Begin(id string, opts RequestOptions) (uint64, model.DataExplorer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	de, ok := r.panels[id]
	if !ok {
		return 0, model.DataExplorer{}, fmt.Errorf("%w: %s", wb_errors.ErrPanelNotInitialized, id)
	}
	de = Reduce(de, model.Action{
		Type:            model.ActionRequestItems,
		Background:      opts.Background,
		CriteriaChanged: model.BoolPtr(opts.CriteriaChanged),
	})
	de.Generation++
	r.panels[id] = de
	return de.Generation, de.Clone(), nil
}

func (r *Registry) IsCurrent(id string, gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	de, ok := r.panels[id]
	return ok && de.Generation == gen
}

// DispatchIfCurrent applies actions only while gen is still the latest
// generation of the panel. The check and the update happen atomically.
func (r *Registry) DispatchIfCurrent(id string, gen uint64, actions ...model.Action) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	de, ok := r.panels[id]
	if !ok || de.Generation != gen {
		return false
	}
	for _, a := range actions {
		de = Reduce(de, a)
	}
	r.panels[id] = de
	return true
}
