package dao_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/workbench/dao"
	"github.com/dev-mohitbeniwal/workbench/model"
	"github.com/dev-mohitbeniwal/workbench/util"
)

func collection(uuid, owner, name string, created time.Time) *model.Collection {
	return &model.Collection{
		ResourceHeader: model.ResourceHeader{
			UUID:      uuid,
			OwnerUUID: owner,
			Kind:      model.KindCollection,
			Name:      name,
			CreatedAt: created,
		},
	}
}

func snapshotJSON(t *testing.T, s *dao.ResourceStore) string {
	t.Helper()
	out, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)
	return string(out)
}

func TestMergeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	res := collection("zzzzz-4zz18-000000000000001", "zzzzz-j7d0g-000000000000001", "a", now)

	once := dao.NewResourceStore(nil)
	once.Merge(ctx, res)

	twice := dao.NewResourceStore(nil)
	twice.Merge(ctx, res)
	twice.Merge(ctx, collection("zzzzz-4zz18-000000000000001", "zzzzz-j7d0g-000000000000001", "a", now))

	assert.Equal(t, snapshotJSON(t, once), snapshotJSON(t, twice))
	assert.Equal(t, 1, twice.Len())
}

func TestMergeReplacesWholeEntity(t *testing.T) {
	ctx := context.Background()
	store := dao.NewResourceStore(nil)

	first := collection("zzzzz-4zz18-000000000000001", "zzzzz-j7d0g-000000000000001", "old", time.Time{})
	first.Properties = map[string]any{"type": "output"}
	store.Merge(ctx, first)
	store.Merge(ctx, collection("zzzzz-4zz18-000000000000001", "zzzzz-j7d0g-000000000000002", "new", time.Time{}))

	got, ok := store.Get("zzzzz-4zz18-000000000000001")
	require.True(t, ok)
	c := got.(*model.Collection)
	assert.Equal(t, "new", c.Name)
	assert.Nil(t, c.Properties)
	assert.Equal(t, "zzzzz-j7d0g-000000000000002", c.OwnerUUID)
}

func TestGetManyPreservesOrder(t *testing.T) {
	ctx := context.Background()
	store := dao.NewResourceStore(nil)
	store.Merge(ctx,
		collection("zzzzz-4zz18-00000000000000a", "", "a", time.Time{}),
		collection("zzzzz-4zz18-00000000000000b", "", "b", time.Time{}),
		nil,
	)

	got := store.GetMany([]string{"zzzzz-4zz18-00000000000000b", "zzzzz-4zz18-missing0000000", "zzzzz-4zz18-00000000000000a"})
	assert.Equal(t, []string{"zzzzz-4zz18-00000000000000b", "zzzzz-4zz18-00000000000000a"}, model.UUIDs(got))
	assert.Equal(t, []string{"zzzzz-4zz18-missing0000000"},
		store.Missing([]string{"zzzzz-4zz18-00000000000000a", "zzzzz-4zz18-missing0000000"}))
}

func TestChildrenNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := dao.NewResourceStore(nil)
	owner := "zzzzz-j7d0g-000000000000001"
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.Merge(ctx,
		collection("zzzzz-4zz18-000000000000001", owner, "oldest", base),
		collection("zzzzz-4zz18-000000000000002", owner, "newest", base.Add(2*time.Hour)),
		collection("zzzzz-4zz18-000000000000003", owner, "middle", base.Add(time.Hour)),
		collection("zzzzz-4zz18-000000000000004", "zzzzz-j7d0g-other0000000000", "elsewhere", base),
	)

	assert.Equal(t,
		[]string{"zzzzz-4zz18-000000000000002", "zzzzz-4zz18-000000000000003", "zzzzz-4zz18-000000000000001"},
		model.UUIDs(store.Children(owner, 0, 0)))
	assert.Equal(t, []string{"zzzzz-4zz18-000000000000003"}, model.UUIDs(store.Children(owner, 1, 1)))
	assert.Empty(t, store.Children(owner, 10, 5))
}

func TestMergePublishesEvent(t *testing.T) {
	bus := util.NewEventBus()
	var mu sync.Mutex
	var merged []string
	bus.Subscribe(util.EventResourcesMerged, func(ctx context.Context, e util.Event) error {
		mu.Lock()
		defer mu.Unlock()
		merged = append(merged, model.UUIDs(e.Payload.([]model.Resource))...)
		return nil
	})

	store := dao.NewResourceStore(bus)
	store.Merge(context.Background(), collection("zzzzz-4zz18-000000000000001", "", "a", time.Time{}))
	store.Merge(context.Background())
	bus.Drain()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"zzzzz-4zz18-000000000000001"}, merged)
}

func TestConcurrentMerges(t *testing.T) {
	ctx := context.Background()
	store := dao.NewResourceStore(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Merge(ctx, collection("zzzzz-4zz18-000000000000001", "", "same", time.Time{}))
			_ = store.Snapshot()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, store.Len())
}
