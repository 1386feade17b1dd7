package arvados_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/workbench/arvados"
	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
)

func TestSessionsOrderAndLookup(t *testing.T) {
	local := arvados.NewClient(arvados.Options{ClusterID: "zzzzz", APIHost: "zzzzz.example.com"})
	b := arvados.NewClient(arvados.Options{ClusterID: "bbbbb", APIHost: "bbbbb.example.com"})
	a := arvados.NewClient(arvados.Options{ClusterID: "aaaaa", APIHost: "aaaaa.example.com"})
	sessions := arvados.NewSessions(local, b, a, nil)

	var ids []string
	for _, s := range sessions.All() {
		ids = append(ids, s.ClusterID())
	}
	assert.Equal(t, []string{"zzzzz", "aaaaa", "bbbbb"}, ids)

	got, err := sessions.Get("")
	require.NoError(t, err)
	assert.Equal(t, "zzzzz", got.ClusterID())

	_, err = sessions.Get("qqqqq")
	assert.ErrorIs(t, err, wb_errors.ErrUnknownCluster)

	only, err := sessions.Search("bbbbb")
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "bbbbb", only[0].ClusterID())

	assert.Equal(t, "aaaaa", sessions.ForUUID("aaaaa-4zz18-000000000000001").ClusterID())
	assert.Equal(t, "zzzzz", sessions.ForUUID("qqqqq-4zz18-000000000000001").ClusterID())
}
