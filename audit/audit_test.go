package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/workbench/audit"
	wb_mock "github.com/dev-mohitbeniwal/workbench/test/mock"
)

func TestBuildLoadQuery(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)

	out, err := json.Marshal(audit.BuildLoadQuery(from, to, "projectPanel", 10))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"size": 10,
		"sort": [{"timestamp": {"order": "desc"}}],
		"query": {"bool": {"must": [
			{"range": {"timestamp": {"gte": "2024-01-01T00:00:00Z", "lte": "2024-01-01T01:00:00Z"}}},
			{"term": {"panel": "projectPanel"}}
		]}}
	}`, string(out))

	all := audit.BuildLoadQuery(from, to, "", 0)
	assert.Equal(t, 100, all["size"])
	must := all["query"].(map[string]any)["bool"].(map[string]any)["must"].([]any)
	assert.Len(t, must, 1)
}

func TestServiceFillsIdentity(t *testing.T) {
	repo := new(wb_mock.MockAuditRepository)
	repo.On("LogLoad", mock.Anything, mock.MatchedBy(func(l audit.PanelLoad) bool {
		return l.ID != "" && !l.Timestamp.IsZero() && l.Panel == "allProcessesPanel"
	})).Return(nil)

	svc := audit.NewService(repo)
	require.NoError(t, svc.LogLoad(context.Background(), audit.PanelLoad{Panel: "allProcessesPanel", Outcome: audit.OutcomeLoaded}))
	repo.AssertExpectations(t)
}

func TestServiceDefaultsWindow(t *testing.T) {
	repo := new(wb_mock.MockAuditRepository)
	repo.On("QueryLoads", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "", 50).
		Run(func(args mock.Arguments) {
			from, to := args.Get(1).(time.Time), args.Get(2).(time.Time)
			assert.Equal(t, 24*time.Hour, to.Sub(from))
		}).
		Return([]audit.PanelLoad{{Panel: "projectPanel"}}, nil)

	loads, err := audit.NewService(repo).QueryLoads(context.Background(), time.Time{}, time.Time{}, "", 50)
	require.NoError(t, err)
	assert.Len(t, loads, 1)
}
