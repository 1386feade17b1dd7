package explorer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/workbench/dao"
	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/model"
)

type recordingSink struct {
	mu            sync.Mutex
	notifications []*model.Notification
	navigations   []string
}

func (s *recordingSink) Notify(ctx context.Context, panelID string, n *model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

func (s *recordingSink) Navigate(ctx context.Context, panelID string, uuid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigations = append(s.navigations, uuid)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

// testBinding sends one request per origin; each origin has its own fetch.
type testBinding struct {
	id         string
	mode       explorer.Mode
	origins    []string
	fetch      map[string]explorer.FetchFunc
	precheck   error
	effects    explorer.Effects
	built      int32
	failureFor [][]string
}

func (b *testBinding) ID() string          { return b.id }
func (b *testBinding) Mode() explorer.Mode { return b.mode }

func (b *testBinding) BuildRequests(ctx context.Context, de model.DataExplorer, opts explorer.RequestOptions) ([]explorer.Request, error) {
	atomic.AddInt32(&b.built, 1)
	if b.precheck != nil {
		return nil, b.precheck
	}
	var reqs []explorer.Request
	for _, origin := range b.origins {
		reqs = append(reqs, explorer.Request{
			Origin: origin,
			Params: explorer.PageParams(de, opts),
			Fetch:  b.fetch[origin],
		})
	}
	return reqs, nil
}

func (b *testBinding) OnSuccess(ctx context.Context, de model.DataExplorer, results []*model.ListResults) explorer.Effects {
	return b.effects
}

func (b *testBinding) Failure(origins []string, err error) *model.Notification {
	b.failureFor = append(b.failureFor, origins)
	if len(origins) == 0 {
		return model.ErrorNotification("Panel is not ready.")
	}
	return model.ErrorNotification(fmt.Sprintf("Could not fetch results from %s.", strings.Join(origins, ", ")))
}

func collections(prefix string, n int) []model.Resource {
	out := make([]model.Resource, n)
	for i := range out {
		out[i] = &model.Collection{ResourceHeader: model.ResourceHeader{
			UUID: fmt.Sprintf("zzzzz-4zz18-%s%014d", prefix, i),
			Kind: model.KindCollection,
		}}
	}
	return out
}

func respond(items []model.Resource, available int) explorer.FetchFunc {
	return func(ctx context.Context, params model.ListParams) (*model.ListResults, error) {
		return &model.ListResults{
			Items:          items,
			ItemsAvailable: model.IntPtr(available),
			Offset:         params.Offset,
			Limit:          params.Limit,
		}, nil
	}
}

func reject(err error) explorer.FetchFunc {
	return func(ctx context.Context, params model.ListParams) (*model.ListResults, error) {
		return nil, err
	}
}

type fixture struct {
	registry *explorer.Registry
	store    *dao.ResourceStore
	sink     *recordingSink
	engine   *explorer.Engine
}

func newFixture(t *testing.T, enricher explorer.Enricher, bindings ...*testBinding) *fixture {
	t.Helper()
	f := &fixture{
		registry: explorer.NewRegistry(),
		store:    dao.NewResourceStore(nil),
		sink:     &recordingSink{},
	}
	f.engine = explorer.NewEngine(explorer.EngineConfig{
		Registry: f.registry,
		Store:    f.store,
		Notifier: f.sink,
		Enricher: enricher,
	})
	for _, b := range bindings {
		require.NoError(t, f.registry.Init(model.NewDataExplorer(b.id, 10, nil)))
		f.engine.Register(b)
	}
	return f
}

func TestRefreshReplacesItems(t *testing.T) {
	var calls int32
	b := &testBinding{id: "p", origins: []string{"zzzzz"}}
	b.fetch = map[string]explorer.FetchFunc{
		"zzzzz": func(ctx context.Context, params model.ListParams) (*model.ListResults, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return respond(collections("a", 4), 4)(ctx, params)
			}
			return respond(collections("a", 3), 3)(ctx, params)
		},
	}
	f := newFixture(t, nil, b)

	first := f.engine.RequestItems(context.Background(), "p", explorer.RequestOptions{CriteriaChanged: true})
	require.NoError(t, first.Err)
	second := f.engine.RequestItems(context.Background(), "p", explorer.RequestOptions{})
	require.NoError(t, second.Err)

	de, err := f.registry.Get("p")
	require.NoError(t, err)
	assert.Len(t, de.Items, 3)
	assert.Equal(t, model.UUIDs(collections("a", 3)), de.Items)
	assert.Equal(t, 3, de.ItemsAvailable)
	assert.Equal(t, model.StatusLoaded, de.Status)
	assert.True(t, second.Loaded)
	assert.Equal(t, 0, f.sink.count())
}

func TestFailureResetsPanelWithOneNotification(t *testing.T) {
	var calls int32
	b := &testBinding{id: "p", origins: []string{"zzzzz"}}
	b.fetch = map[string]explorer.FetchFunc{
		"zzzzz": func(ctx context.Context, params model.ListParams) (*model.ListResults, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return respond(collections("a", 5), 5)(ctx, params)
			}
			return nil, fmt.Errorf("%w: connection refused", wb_errors.ErrTransport)
		},
	}
	f := newFixture(t, nil, b)

	require.NoError(t, f.engine.RequestItems(context.Background(), "p", explorer.RequestOptions{CriteriaChanged: true}).Err)
	de, _ := f.registry.Get("p")
	require.Len(t, de.Items, 5)

	out := f.engine.RequestItems(context.Background(), "p", explorer.RequestOptions{})
	assert.ErrorIs(t, out.Err, wb_errors.ErrTransport)
	assert.False(t, out.Loaded)

	de, _ = f.registry.Get("p")
	assert.Empty(t, de.Items)
	assert.Equal(t, 0, de.ItemsAvailable)
	assert.Equal(t, 0, de.Page)
	assert.Equal(t, 10, de.RowsPerPage)
	assert.Equal(t, model.StatusInitial, de.Status)
	assert.False(t, de.IsNotFound)
	require.Equal(t, 1, f.sink.count())
	assert.Equal(t, model.NotificationError, f.sink.notifications[0].Kind)
}

func TestNotFoundFlagsPanel(t *testing.T) {
	b := &testBinding{id: "p", origins: []string{"zzzzz"}}
	b.fetch = map[string]explorer.FetchFunc{
		"zzzzz": reject(&wb_errors.APIError{Status: http.StatusNotFound}),
	}
	f := newFixture(t, nil, b)

	out := f.engine.RequestItems(context.Background(), "p", explorer.RequestOptions{CriteriaChanged: true})
	assert.True(t, wb_errors.IsNotFound(out.Err))

	de, _ := f.registry.Get("p")
	assert.True(t, de.IsNotFound)
	assert.Empty(t, de.Items)
}

func TestPreconditionSendsNoRequest(t *testing.T) {
	var fetched int32
	b := &testBinding{id: "p", origins: []string{"zzzzz"}, precheck: wb_errors.ErrProjectNotSet}
	b.fetch = map[string]explorer.FetchFunc{
		"zzzzz": func(ctx context.Context, params model.ListParams) (*model.ListResults, error) {
			atomic.AddInt32(&fetched, 1)
			return nil, nil
		},
	}
	f := newFixture(t, nil, b)
	before, _ := f.registry.Get("p")

	out := f.engine.RequestItems(context.Background(), "p", explorer.RequestOptions{CriteriaChanged: true})
	assert.ErrorIs(t, out.Err, wb_errors.ErrProjectNotSet)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fetched))
	assert.Equal(t, 1, f.sink.count())
	require.Len(t, b.failureFor, 1)
	assert.Empty(t, b.failureFor[0])

	after, _ := f.registry.Get("p")
	assert.Equal(t, before, after)
}

func TestUnknownPanel(t *testing.T) {
	f := newFixture(t, nil)
	out := f.engine.RequestItems(context.Background(), "nope", explorer.RequestOptions{})
	assert.ErrorIs(t, out.Err, wb_errors.ErrPanelNotFound)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	b := &testBinding{id: "p", origins: []string{"zzzzz"}}
	b.fetch = map[string]explorer.FetchFunc{
		"zzzzz": func(ctx context.Context, params model.ListParams) (*model.ListResults, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				close(started)
				<-release
				return respond(collections("old", 2), 2)(ctx, params)
			}
			return respond(collections("new", 1), 1)(ctx, params)
		},
	}
	f := newFixture(t, nil, b)

	slow := make(chan explorer.Outcome)
	go func() {
		slow <- f.engine.RequestItems(context.Background(), "p", explorer.RequestOptions{CriteriaChanged: true})
	}()
	<-started

	fresh := f.engine.RequestItems(context.Background(), "p", explorer.RequestOptions{CriteriaChanged: true})
	require.True(t, fresh.Loaded)
	close(release)
	stale := <-slow

	assert.True(t, stale.Stale)
	assert.False(t, stale.Loaded)
	de, _ := f.registry.Get("p")
	assert.Equal(t, model.UUIDs(collections("new", 1)), de.Items)
	assert.Equal(t, 1, de.ItemsAvailable)
	assert.False(t, f.store.Has(collections("old", 1)[0].Header().UUID))
}

func TestFanOutPartialFailure(t *testing.T) {
	b := &testBinding{
		id:      "search",
		mode:    explorer.ModeAppend,
		origins: []string{"aaaaa", "bbbbb", "ccccc"},
		fetch: map[string]explorer.FetchFunc{
			"aaaaa": respond(collections("a", 2), 2),
			"bbbbb": reject(fmt.Errorf("%w: timeout", wb_errors.ErrTransport)),
			"ccccc": respond(collections("c", 2), 2),
		},
	}
	f := newFixture(t, nil, b)

	out := f.engine.RequestItems(context.Background(), "search", explorer.RequestOptions{CriteriaChanged: true})
	require.NoError(t, out.Err)
	assert.True(t, out.Loaded)
	assert.Equal(t, []string{"bbbbb"}, out.Failed)

	de, _ := f.registry.Get("search")
	assert.Len(t, de.Items, 4)
	assert.ElementsMatch(t, append(model.UUIDs(collections("a", 2)), model.UUIDs(collections("c", 2))...), de.Items)
	assert.Equal(t, 4, de.ItemsAvailable)
	assert.False(t, de.IsLoading)

	require.Equal(t, 1, f.sink.count())
	assert.Contains(t, f.sink.notifications[0].Message, "bbbbb")
	assert.NotContains(t, f.sink.notifications[0].Message, "aaaaa")
}

func TestFanOutTotalFailureResets(t *testing.T) {
	boom := errors.New("boom")
	b := &testBinding{
		id:      "search",
		mode:    explorer.ModeAppend,
		origins: []string{"aaaaa", "bbbbb"},
		fetch: map[string]explorer.FetchFunc{
			"aaaaa": reject(boom),
			"bbbbb": reject(boom),
		},
	}
	f := newFixture(t, nil, b)

	out := f.engine.RequestItems(context.Background(), "search", explorer.RequestOptions{CriteriaChanged: true})
	assert.ErrorIs(t, out.Err, boom)
	assert.Equal(t, []string{"aaaaa", "bbbbb"}, out.Failed)

	de, _ := f.registry.Get("search")
	assert.Empty(t, de.Items)
	assert.Equal(t, model.StatusInitial, de.Status)
	assert.Equal(t, 1, f.sink.count())
}

func TestEffectsNavigateAndNotFound(t *testing.T) {
	b := &testBinding{
		id:      "search",
		mode:    explorer.ModeAppend,
		origins: []string{"aaaaa"},
		fetch:   map[string]explorer.FetchFunc{"aaaaa": respond(nil, 0)},
		effects: explorer.Effects{NotFound: true, NavigateTo: "zzzzz-4zz18-000000000000001"},
	}
	f := newFixture(t, nil, b)

	out := f.engine.RequestItems(context.Background(), "search", explorer.RequestOptions{CriteriaChanged: true})
	assert.Equal(t, "zzzzz-4zz18-000000000000001", out.NavigateTo)
	de, _ := f.registry.Get("search")
	assert.True(t, de.IsNotFound)
	assert.Equal(t, []string{"zzzzz-4zz18-000000000000001"}, f.sink.navigations)
}

func TestNoRequestsIsSilent(t *testing.T) {
	b := &testBinding{id: "p"}
	f := newFixture(t, nil, b)

	out := f.engine.RequestItems(context.Background(), "p", explorer.RequestOptions{CriteriaChanged: true})
	assert.NoError(t, out.Err)
	assert.False(t, out.Loaded)
	de, _ := f.registry.Get("p")
	assert.Equal(t, uint64(0), de.Generation)
	assert.Equal(t, model.StatusInitial, de.Status)
}

func TestClearDiscardsLoadInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	b := &testBinding{id: "p", origins: []string{"zzzzz"}}
	b.fetch = map[string]explorer.FetchFunc{
		"zzzzz": func(ctx context.Context, params model.ListParams) (*model.ListResults, error) {
			close(started)
			<-release
			return respond(collections("pre", 3), 3)(ctx, params)
		},
	}
	f := newFixture(t, nil, b)

	pending := make(chan explorer.Outcome)
	go func() {
		pending <- f.engine.RequestItems(context.Background(), "p", explorer.RequestOptions{CriteriaChanged: true})
	}()
	<-started

	_, err := f.registry.Dispatch("p", model.Action{Type: model.ActionClear})
	require.NoError(t, err)
	close(release)
	out := <-pending

	assert.True(t, out.Stale)
	assert.False(t, out.Loaded)
	de, _ := f.registry.Get("p")
	assert.Empty(t, de.Items)
	assert.Equal(t, 0, de.ItemsAvailable)
	assert.Equal(t, model.StatusInitial, de.Status)
	assert.Equal(t, 0, f.sink.count())
}
