package explorer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	"github.com/dev-mohitbeniwal/workbench/explorer"
	"github.com/dev-mohitbeniwal/workbench/model"
)

func TestRegistryGenerations(t *testing.T) {
	r := explorer.NewRegistry()
	require.NoError(t, r.Init(model.NewDataExplorer("p", 10, nil)))
	assert.ErrorIs(t, r.Init(model.NewDataExplorer("p", 10, nil)), wb_errors.ErrPanelAlreadyExists)

	g1, de, err := r.Begin("p", explorer.RequestOptions{CriteriaChanged: true})
	require.NoError(t, err)
	assert.Equal(t, model.StatusLoading, de.Status)
	assert.True(t, de.LoadingItemsAvailable)

	g2, _, err := r.Begin("p", explorer.RequestOptions{})
	require.NoError(t, err)
	assert.Greater(t, g2, g1)
	assert.False(t, r.IsCurrent("p", g1))
	assert.True(t, r.IsCurrent("p", g2))

	assert.False(t, r.DispatchIfCurrent("p", g1, model.Action{Type: model.ActionSetItems, Items: []string{"x"}}))
	assert.True(t, r.DispatchIfCurrent("p", g2, model.Action{Type: model.ActionSetItems, Items: []string{"y"}}))

	de, err = r.Get("p")
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, de.Items)
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	r := explorer.NewRegistry()
	require.NoError(t, r.Init(model.NewDataExplorer("p", 10, nil)))
	_, err := r.Dispatch("p", model.Action{Type: model.ActionSetItems, Items: []string{"a"}})
	require.NoError(t, err)

	de, _ := r.Get("p")
	de.Items[0] = "mutated"

	again, _ := r.Get("p")
	assert.Equal(t, []string{"a"}, again.Items)
}

func TestRegistryUnknownPanel(t *testing.T) {
	r := explorer.NewRegistry()
	_, err := r.Get("missing")
	assert.ErrorIs(t, err, wb_errors.ErrPanelNotInitialized)
	_, err = r.Dispatch("missing", model.Action{Type: model.ActionClear})
	assert.ErrorIs(t, err, wb_errors.ErrPanelNotInitialized)
	assert.False(t, r.IsCurrent("missing", 0))
	assert.Empty(t, r.IDs())
}

func TestRegistryResetsIssueGeneration(t *testing.T) {
	r := explorer.NewRegistry()
	require.NoError(t, r.Init(model.NewDataExplorer("p", 10, nil)))

	gen, _, err := r.Begin("p", explorer.RequestOptions{})
	require.NoError(t, err)

	_, err = r.Dispatch("p", model.Action{Type: model.ActionSetPage, Page: 2})
	require.NoError(t, err)
	assert.True(t, r.IsCurrent("p", gen))

	de, err := r.Dispatch("p", model.Action{Type: model.ActionClear})
	require.NoError(t, err)
	assert.Equal(t, gen+1, de.Generation)
	assert.False(t, r.IsCurrent("p", gen))

	de, err = r.Dispatch("p", model.Action{Type: model.ActionResetItems})
	require.NoError(t, err)
	assert.Equal(t, gen+2, de.Generation)
	assert.False(t, r.DispatchIfCurrent("p", gen+1, model.Action{Type: model.ActionSetItems, Items: []string{"x"}}))
}
