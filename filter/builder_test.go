package filter_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/workbench/filter"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err)
	return string(out)
}

func TestBuilderEmptyValuesAreNoOps(t *testing.T) {
	untouched := filter.NewBuilder().Filters()

	cases := map[string]func(b *filter.Builder){
		"AddIn":       func(b *filter.Builder) { b.AddIn("uuid", []string{}) },
		"AddInNil":    func(b *filter.Builder) { b.AddIn("uuid", nil) },
		"AddNotIn":    func(b *filter.Builder) { b.AddNotIn("uuid", nil, filter.PrefixCollection) },
		"AddEqual":    func(b *filter.Builder) { b.AddEqual("name", "") },
		"AddEqualNil": func(b *filter.Builder) { b.AddEqual("name", nil) },
		"AddILike":    func(b *filter.Builder) { b.AddILike("name", "", filter.PrefixProject) },
		"AddIsA":      func(b *filter.Builder) { b.AddIsA("uuid") },
		"AddDistinct": func(b *filter.Builder) { b.AddDistinct("state", "") },
		"AddFullText": func(b *filter.Builder) { b.AddFullTextSearch("   ") },
	}
	for name, add := range cases {
		t.Run(name, func(t *testing.T) {
			b := filter.NewBuilder()
			add(b)
			assert.Equal(t, untouched, b.Filters())
			assert.Equal(t, "[]", marshal(t, b.Filters()))
		})
	}
}

func TestBuilderWireFormat(t *testing.T) {
	f := filter.NewBuilder().
		AddILike("name", "foo", filter.PrefixCollection).
		AddEqual("ownerUuid", "zzzzz-j7d0g-000000000000001").
		AddIn("container.state", []string{"Queued", "Locked"}, filter.PrefixProcess).
		AddIsA("uuid", "arvados#collection", "arvados#group").
		AddIsNull("requestingContainerUuid", filter.PrefixProcess).
		Filters()

	assert.JSONEq(t, `[
		["collections.name","ilike","%foo%"],
		["owner_uuid","=","zzzzz-j7d0g-000000000000001"],
		["container_requests.container.state","in",["Queued","Locked"]],
		["uuid","is_a",["arvados#collection","arvados#group"]],
		["container_requests.requesting_container_uuid","=",null]
	]`, marshal(t, f))
}

func TestFullTextSearch(t *testing.T) {
	f := filter.NewBuilder().AddFullTextSearch(`alpha  "exact phrase" beta`).Filters()
	assert.JSONEq(t, `[
		["any","ilike","%alpha%"],
		["any","ilike","%beta%"],
		["any","ilike","%exact phrase%"]
	]`, marshal(t, f))
}

func TestJoin(t *testing.T) {
	a := filter.NewBuilder().AddEqual("name", "a").Filters()
	b := filter.NewBuilder().AddEqual("state", "Final").Filters()

	joined := filter.Join(a, nil, b)
	require.Len(t, joined, 2)
	assert.Equal(t, "name", joined[0].Field)
	assert.Equal(t, "state", joined[1].Field)
	assert.Equal(t, "[]", marshal(t, filter.Join()))
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "created_at", filter.SnakeCase("createdAt"))
	assert.Equal(t, "container.exit_code", filter.SnakeCase("container.exitCode"))
	assert.Equal(t, "portable_data_hash", filter.SnakeCase("portableDataHash"))
	assert.Equal(t, "owner_uuid", filter.SnakeCase("owner_uuid"))
}
