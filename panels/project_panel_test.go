package panels_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/workbench/arvados"
	"github.com/dev-mohitbeniwal/workbench/dao"
	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/model"
	"github.com/dev-mohitbeniwal/workbench/panels"
	"github.com/dev-mohitbeniwal/workbench/util"
)

// fakeCluster is an Arvados API stand-in that records every query it sees.
type fakeCluster struct {
	mu      sync.Mutex
	queries []*url.URL
	handler http.HandlerFunc
}

func newFakeCluster(t *testing.T, id string, handler http.HandlerFunc) *arvados.Client {
	t.Helper()
	fc := &fakeCluster{handler: handler}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fc.mu.Lock()
		fc.queries = append(fc.queries, r.URL)
		fc.mu.Unlock()
		fc.handler(w, r)
	}))
	t.Cleanup(srv.Close)
	clusters[id] = fc
	return arvados.NewClient(arvados.Options{ClusterID: id, APIHost: srv.URL, Token: "v2/token"})
}

var clusters = map[string]*fakeCluster{}

func lastQuery(t *testing.T, id string) url.Values {
	t.Helper()
	fc := clusters[id]
	fc.mu.Lock()
	defer fc.mu.Unlock()
	require.NotEmpty(t, fc.queries)
	return fc.queries[len(fc.queries)-1].Query()
}

// queryFor returns the query of the last request sent to path.
func queryFor(t *testing.T, id, path string) url.Values {
	t.Helper()
	fc := clusters[id]
	fc.mu.Lock()
	defer fc.mu.Unlock()
	for i := len(fc.queries) - 1; i >= 0; i-- {
		if fc.queries[i].Path == path {
			return fc.queries[i].Query()
		}
	}
	t.Fatalf("no request to %s on %s", path, id)
	return nil
}

func writeList(w http.ResponseWriter, items []map[string]any, available int) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"kind":            "arvados#objectList",
		"items":           items,
		"items_available": available,
		"offset":          0,
		"limit":           50,
	})
}

func newEngine(t *testing.T, sessions *arvados.Sessions, bindings ...explorer.Binding) (*explorer.Engine, *util.NotificationService) {
	t.Helper()
	registry := explorer.NewRegistry()
	for _, de := range panels.InitialStates(50, nil) {
		require.NoError(t, registry.Init(de))
	}
	notifications := util.NewNotificationService(nil)
	engine := explorer.NewEngine(explorer.EngineConfig{
		Registry: registry,
		Store:    dao.NewResourceStore(nil),
		Notifier: notifications,
		Enricher: panels.NewContainerEnricher(sessions),
	})
	for _, b := range bindings {
		engine.Register(b)
	}
	return engine, notifications
}

func TestProjectPanelNotOpened(t *testing.T) {
	local := newFakeCluster(t, "zzzzz", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	})
	project := panels.NewProjectPanel(arvados.NewSessions(local))
	engine, notifications := newEngine(t, arvados.NewSessions(local), project)

	out := engine.RequestItems(context.Background(), panels.ProjectPanelID, explorer.RequestOptions{CriteriaChanged: true})
	assert.ErrorIs(t, out.Err, wb_errors.ErrProjectNotSet)

	recent := notifications.Recent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, "Project panel is not opened.", recent[0].Message)
	assert.Equal(t, model.NotificationError, recent[0].Kind)
}

func TestProjectPanelLoadsContents(t *testing.T) {
	local := newFakeCluster(t, "zzzzz", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/arvados/v1/groups/zzzzz-j7d0g-000000000000001/contents", r.URL.Path)
		writeList(w, []map[string]any{
			{"uuid": "zzzzz-4zz18-000000000000001", "kind": "arvados#collection", "name": "reads", "owner_uuid": "zzzzz-j7d0g-000000000000001"},
			{"uuid": "zzzzz-j7d0g-000000000000002", "kind": "arvados#group", "name": "sub", "group_class": "project"},
		}, 2)
	})
	sessions := arvados.NewSessions(local)
	project := panels.NewProjectPanel(sessions)
	project.SetProject("zzzzz-j7d0g-000000000000001", false)
	engine, notifications := newEngine(t, sessions, project)

	_, err := engine.Registry().Dispatch(panels.ProjectPanelID,
		model.Action{Type: model.ActionSetExplorerSearchValue, SearchValue: "rea"})
	require.NoError(t, err)

	out := engine.RequestItems(context.Background(), panels.ProjectPanelID, explorer.RequestOptions{CriteriaChanged: true})
	require.NoError(t, out.Err)
	assert.Equal(t, []string{"zzzzz-4zz18-000000000000001", "zzzzz-j7d0g-000000000000002"}, out.Items)
	assert.Equal(t, 2, out.ItemsAvailable)
	assert.Empty(t, notifications.Recent(0))

	q := lastQuery(t, "zzzzz")
	assert.Equal(t, "exact", q.Get("count"))
	assert.Equal(t, "50", q.Get("limit"))
	assert.JSONEq(t, `["collections.modified_at desc","groups.modified_at desc","workflows.modified_at desc","created_at desc"]`, q.Get("order"))

	var filters [][]any
	require.NoError(t, json.Unmarshal([]byte(q.Get("filters")), &filters))
	assert.Contains(t, filters, []any{"collections.name", "ilike", "%rea%"})
	assert.Contains(t, filters, []any{"groups.name", "ilike", "%rea%"})
}

func TestProjectPanelNotFound(t *testing.T) {
	local := newFakeCluster(t, "zzzzz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":["Path not found"]}`))
	})
	sessions := arvados.NewSessions(local)
	project := panels.NewProjectPanel(sessions)
	project.SetProject("zzzzz-j7d0g-missing00000000", false)
	engine, notifications := newEngine(t, sessions, project)

	out := engine.RequestItems(context.Background(), panels.ProjectPanelID, explorer.RequestOptions{CriteriaChanged: true})
	assert.True(t, wb_errors.IsNotFound(out.Err))

	de, err := engine.Registry().Get(panels.ProjectPanelID)
	require.NoError(t, err)
	assert.True(t, de.IsNotFound)
	assert.Empty(t, de.Items)
	assert.Empty(t, notifications.Recent(0))
}

func TestProjectPanelServerError(t *testing.T) {
	local := newFakeCluster(t, "zzzzz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	sessions := arvados.NewSessions(local)
	project := panels.NewProjectPanel(sessions)
	project.SetProject("zzzzz-j7d0g-000000000000001", true)
	engine, notifications := newEngine(t, sessions, project)

	out := engine.RequestItems(context.Background(), panels.ProjectPanelID, explorer.RequestOptions{CriteriaChanged: true})
	require.Error(t, out.Err)
	assert.Equal(t, "true", lastQuery(t, "zzzzz").Get("include_trash"))

	recent := notifications.Recent(0)
	require.Len(t, recent, 1)
	assert.Equal(t, "Could not fetch project contents.", recent[0].Message)
}

func TestResolveHome(t *testing.T) {
	local := newFakeCluster(t, "zzzzz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"uuid":"zzzzz-tpzed-000000000000001","kind":"arvados#user"}`))
	})
	project := panels.NewProjectPanel(arvados.NewSessions(local))

	uuid, err := project.ResolveHome(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "zzzzz-tpzed-000000000000001", uuid)
	got, trashed := project.Project()
	assert.Equal(t, uuid, got)
	assert.False(t, trashed)
}

func TestResolveHomeFailure(t *testing.T) {
	local := newFakeCluster(t, "zzzzz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	project := panels.NewProjectPanel(arvados.NewSessions(local))

	_, err := project.ResolveHome(context.Background())
	assert.ErrorIs(t, err, wb_errors.ErrCurrentUserUnavailable)
	n := project.Failure(nil, err)
	require.NotNil(t, n)
	assert.Equal(t, "Project panel is not opened.", n.Message)
}

func TestProjectFiltersDefaults(t *testing.T) {
	de := model.NewDataExplorer(panels.ProjectPanelID, 50, panels.ProjectPanelColumns())
	out, err := json.Marshal(panels.ProjectFilters(de))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "ilike")
	assert.Contains(t, string(out), `"is_a"`)
}
