// explorer/engine.go
package explorer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dev-mohitbeniwal/workbench/dao"
	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/metrics"
	"github.com/dev-mohitbeniwal/workbench/model"
)

// NotificationSink receives the user visible side effects of a load.
type NotificationSink interface {
	Notify(ctx context.Context, panelID string, notification *model.Notification)
	Navigate(ctx context.Context, panelID string, resourceUUID string)
}

// Outcome reports what one RequestItems call did.
type Outcome struct {
	Panel          string   `json:"panel"`
	Generation     uint64   `json:"generation"`
	Loaded         bool     `json:"loaded"`
	Stale          bool     `json:"stale"`
	Items          []string `json:"items"`
	ItemsAvailable int      `json:"itemsAvailable"`
	Failed         []string `json:"failed,omitempty"`
	NavigateTo     string   `json:"navigateTo,omitempty"`
	Err            error    `json:"-"`
}

type EngineConfig struct {
	Registry          *Registry
	Store             *dao.ResourceStore
	Notifier          NotificationSink
	Enricher          Enricher
	Metrics           *metrics.Metrics
	EnrichmentTimeout time.Duration
}

// Engine runs the list load protocol for every registered binding.
type Engine struct {
	registry      *Registry
	store         *dao.ResourceStore
	notifier      NotificationSink
	enricher      Enricher
	metrics       *metrics.Metrics
	enrichTimeout time.Duration

	mu       sync.RWMutex
	bindings map[string]Binding

	enriching sync.WaitGroup
}

func NewEngine(cfg EngineConfig) *Engine {
	timeout := cfg.EnrichmentTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Engine{
		registry:      cfg.Registry,
		store:         cfg.Store,
		notifier:      cfg.Notifier,
		enricher:      cfg.Enricher,
		metrics:       cfg.Metrics,
		enrichTimeout: timeout,
		bindings:      make(map[string]Binding),
	}
}

// Register attaches a binding to the panel with the same id.
func (e *Engine) Register(b Binding) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindings[b.ID()] = b
}

func (e *Engine) Binding(id string) (Binding, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.bindings[id]
	return b, ok
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

// Wait blocks until background enrichment started so far has finished.
func (e *Engine) Wait() {
	e.enriching.Wait()
}

// RequestItems loads the current page of a panel. It never panics on remote
// failures; the outcome and the panel state describe what happened.
func (e *Engine) RequestItems(ctx context.Context, id string, opts RequestOptions) Outcome {
	start := time.Now()
	out := Outcome{Panel: id}

	binding, ok := e.Binding(id)
	if !ok {
		out.Err = fmt.Errorf("%w: %s", wb_errors.ErrPanelNotFound, id)
		return out
	}

	de, err := e.registry.Get(id)
	if err != nil {
		e.notify(ctx, id, binding.Failure(nil, err))
		out.Err = err
		e.metrics.ObserveLoad(id, "precondition", time.Since(start))
		return out
	}

	requests, err := binding.BuildRequests(ctx, de, opts)
	if err != nil {
		logger.Warn("Panel load precondition failed", zap.String("panel", id), zap.Error(err))
		e.notify(ctx, id, binding.Failure(nil, err))
		out.Err = err
		e.metrics.ObserveLoad(id, "precondition", time.Since(start))
		return out
	}
	if len(requests) == 0 {
		return out
	}

	gen, de, err := e.registry.Begin(id, opts)
	if err != nil {
		out.Err = err
		return out
	}
	out.Generation = gen

	if binding.Mode() == ModeAppend {
		out = e.fanOut(ctx, binding, de, gen, opts, requests, out)
	} else {
		out = e.single(ctx, binding, de, gen, requests[0], out)
	}

	switch {
	case out.Stale:
		e.metrics.StaleResponse(id)
		e.metrics.ObserveLoad(id, "stale", time.Since(start))
	case out.Err != nil:
		e.metrics.ObserveLoad(id, "failed", time.Since(start))
	default:
		e.metrics.ObserveLoad(id, "loaded", time.Since(start))
	}
	e.metrics.SetStoreSize(e.store.Len())

	logger.Info("Panel load finished",
		zap.String("panel", id),
		zap.Uint64("generation", gen),
		zap.Bool("loaded", out.Loaded),
		zap.Bool("stale", out.Stale),
		zap.Int("items", len(out.Items)),
		zap.Strings("failed", out.Failed),
		zap.Duration("duration", time.Since(start)))
	return out
}

func (e *Engine) single(ctx context.Context, binding Binding, de model.DataExplorer, gen uint64, req Request, out Outcome) Outcome {
	id := binding.ID()
	res, err := req.Fetch(ctx, req.Params)
	if !e.registry.IsCurrent(id, gen) {
		out.Stale = true
		return out
	}
	if err != nil {
		return e.fail(ctx, binding, gen, []string{req.Origin}, err, out)
	}

	e.store.Merge(ctx, res.Items...)
	e.store.Merge(ctx, res.Included...)

	effects := binding.OnSuccess(ctx, de, []*model.ListResults{res})
	actions := []model.Action{{
		Type:           model.ActionSetItems,
		Items:          model.UUIDs(res.Items),
		ItemsAvailable: res.ItemsAvailable,
		Page:           model.Page(res.Offset, limitOf(res, req)),
	}}
	if effects.NotFound {
		actions = append(actions, model.Action{Type: model.ActionSetIsNotFound, Flag: true})
	}
	if !e.registry.DispatchIfCurrent(id, gen, actions...) {
		out.Stale = true
		return out
	}

	e.enrich(ctx, req.Origin, res.Items)
	if effects.NavigateTo != "" && e.notifier != nil {
		e.notifier.Navigate(ctx, id, effects.NavigateTo)
	}

	return e.settle(id, out, effects)
}

func (e *Engine) fanOut(ctx context.Context, binding Binding, de model.DataExplorer, gen uint64, opts RequestOptions, requests []Request, out Outcome) Outcome {
	id := binding.ID()
	reset := []model.Action{{
		Type:           model.ActionSetItems,
		Items:          []string{},
		ItemsAvailable: model.IntPtr(0),
		Page:           de.Page,
	}}
	if !opts.Background {
		reset = append(reset, model.Action{Type: model.ActionSetWorking, Flag: true})
	}
	if !e.registry.DispatchIfCurrent(id, gen, reset...) {
		out.Stale = true
		return out
	}

	errs := make([]error, len(requests))
	results := make([]*model.ListResults, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			res, err := req.Fetch(gctx, req.Params)
			if err != nil {
				logger.Warn("List request failed",
					zap.String("panel", id),
					zap.String("origin", req.Origin),
					zap.Error(err))
				errs[i] = err
				return nil
			}
			if !e.registry.IsCurrent(id, gen) {
				return nil
			}
			e.store.Merge(gctx, res.Items...)
			e.store.Merge(gctx, res.Included...)
			if e.registry.DispatchIfCurrent(id, gen, model.Action{
				Type:           model.ActionAppendItems,
				Items:          model.UUIDs(res.Items),
				ItemsAvailable: res.ItemsAvailable,
			}) {
				results[i] = res
				e.enrich(ctx, req.Origin, res.Items)
			}
			return nil
		})
	}
	_ = g.Wait()

	if !e.registry.IsCurrent(id, gen) {
		out.Stale = true
		return out
	}

	var failed []string
	var failures []error
	var succeeded []*model.ListResults
	for i, req := range requests {
		if errs[i] != nil {
			failed = append(failed, req.Origin)
			failures = append(failures, fmt.Errorf("%s: %w", req.Origin, errs[i]))
		} else if results[i] != nil {
			succeeded = append(succeeded, results[i])
		}
	}

	if len(failed) == len(requests) {
		return e.fail(ctx, binding, gen, failed, errors.Join(failures...), out)
	}
	if len(failed) > 0 {
		out.Failed = failed
		e.notify(ctx, id, binding.Failure(failed, errors.Join(failures...)))
	}

	effects := binding.OnSuccess(ctx, de, succeeded)
	done := []model.Action{{Type: model.ActionSetWorking, Flag: false}}
	if effects.NotFound {
		done = append(done, model.Action{Type: model.ActionSetIsNotFound, Flag: true})
	}
	if !e.registry.DispatchIfCurrent(id, gen, done...) {
		out.Stale = true
		return out
	}
	if effects.NavigateTo != "" && e.notifier != nil {
		e.notifier.Navigate(ctx, id, effects.NavigateTo)
	}
	return e.settle(id, out, effects)
}

// fail moves the panel to ERROR and then back to an empty INITIAL page, and
// reports the error through exactly one notification.
func (e *Engine) fail(ctx context.Context, binding Binding, gen uint64, origins []string, err error, out Outcome) Outcome {
	id := binding.ID()
	actions := []model.Action{
		{Type: model.ActionItemsFailed, Error: err.Error()},
		{Type: model.ActionResetItems},
	}
	if wb_errors.IsNotFound(err) {
		actions = append(actions, model.Action{Type: model.ActionSetIsNotFound, Flag: true})
	}
	if !e.registry.DispatchIfCurrent(id, gen, actions...) {
		out.Stale = true
		return out
	}

	logger.Error("Panel load failed",
		zap.String("panel", id),
		zap.Strings("origins", origins),
		zap.Error(err))
	e.notify(ctx, id, binding.Failure(origins, err))

	out.Failed = origins
	out.Err = err
	out.Items = []string{}
	return out
}

func (e *Engine) settle(id string, out Outcome, effects Effects) Outcome {
	de, err := e.registry.Get(id)
	if err != nil {
		out.Err = err
		return out
	}
	out.Loaded = true
	out.Items = de.Items
	out.ItemsAvailable = de.ItemsAvailable
	out.NavigateTo = effects.NavigateTo
	return out
}

func (e *Engine) notify(ctx context.Context, id string, n *model.Notification) {
	if n == nil || e.notifier == nil {
		return
	}
	e.metrics.Notification(id, string(n.Kind))
	e.notifier.Notify(ctx, id, n)
}

func limitOf(res *model.ListResults, req Request) int {
	if res.Limit > 0 {
		return res.Limit
	}
	return req.Params.Limit
}
