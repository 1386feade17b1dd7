package explorer_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/model"
)

type fakeEnricher struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (f *fakeEnricher) Containers(ctx context.Context, origin string, uuids []string) ([]model.Resource, error) {
	f.mu.Lock()
	f.calls = append(f.calls, uuids)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Resource, 0, len(uuids))
	for _, uuid := range uuids {
		out = append(out, &model.Container{
			ResourceHeader: model.ResourceHeader{UUID: uuid, Kind: model.KindContainer},
			State:          model.ContainerStateRunning,
		})
	}
	return out, nil
}

func containerRequest(uuid string, container *string) *model.ContainerRequest {
	return &model.ContainerRequest{
		ResourceHeader: model.ResourceHeader{UUID: uuid, Kind: model.KindContainerRequest},
		State:          model.ContainerRequestStateCommitted,
		ContainerUUID:  container,
	}
}

func strPtr(s string) *string { return &s }

func TestContainerUUIDs(t *testing.T) {
	items := []model.Resource{
		containerRequest("zzzzz-xvhdp-000000000000001", strPtr("zzzzz-dz642-000000000000001")),
		containerRequest("zzzzz-xvhdp-000000000000002", nil),
		containerRequest("zzzzz-xvhdp-000000000000003", strPtr("zzzzz-dz642-000000000000001")),
		collections("a", 1)[0],
		containerRequest("zzzzz-xvhdp-000000000000004", strPtr("zzzzz-dz642-000000000000002")),
	}
	assert.Equal(t, []string{"zzzzz-dz642-000000000000001", "zzzzz-dz642-000000000000002"}, explorer.ContainerUUIDs(items))
}

func TestEnrichmentMergesMissingContainers(t *testing.T) {
	enricher := &fakeEnricher{}
	b := &testBinding{
		id:      "processes",
		origins: []string{"zzzzz"},
		fetch: map[string]explorer.FetchFunc{
			"zzzzz": respond([]model.Resource{
				containerRequest("zzzzz-xvhdp-000000000000001", strPtr("zzzzz-dz642-000000000000001")),
				containerRequest("zzzzz-xvhdp-000000000000002", strPtr("zzzzz-dz642-000000000000002")),
			}, 2),
		},
	}
	f := newFixture(t, enricher, b)
	f.store.Merge(context.Background(), &model.Container{
		ResourceHeader: model.ResourceHeader{UUID: "zzzzz-dz642-000000000000002", Kind: model.KindContainer},
	})

	out := f.engine.RequestItems(context.Background(), "processes", explorer.RequestOptions{CriteriaChanged: true})
	require.NoError(t, out.Err)
	f.engine.Wait()

	require.Len(t, enricher.calls, 1)
	assert.Equal(t, []string{"zzzzz-dz642-000000000000001"}, enricher.calls[0])
	got, ok := f.store.Get("zzzzz-dz642-000000000000001")
	require.True(t, ok)
	assert.Equal(t, model.ContainerStateRunning, got.(*model.Container).State)
}

func TestEnrichmentFailureLeavesPanelAlone(t *testing.T) {
	enricher := &fakeEnricher{err: errors.New("containers unavailable")}
	b := &testBinding{
		id:      "processes",
		origins: []string{"zzzzz"},
		fetch: map[string]explorer.FetchFunc{
			"zzzzz": respond([]model.Resource{
				containerRequest("zzzzz-xvhdp-000000000000001", strPtr("zzzzz-dz642-000000000000001")),
			}, 1),
		},
	}
	f := newFixture(t, enricher, b)

	out := f.engine.RequestItems(context.Background(), "processes", explorer.RequestOptions{CriteriaChanged: true})
	require.NoError(t, out.Err)
	f.engine.Wait()

	de, _ := f.registry.Get("processes")
	assert.Equal(t, []string{"zzzzz-xvhdp-000000000000001"}, de.Items)
	assert.Equal(t, model.StatusLoaded, de.Status)
	assert.Equal(t, 0, f.sink.count())
	assert.False(t, f.store.Has("zzzzz-dz642-000000000000001"))
}
