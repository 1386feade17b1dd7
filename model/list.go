// model/list.go
package model

import "encoding/json"

// CountMode controls whether the API computes items_available.
type CountMode string

const (
	CountExact CountMode = "exact"
	CountNone  CountMode = "none"
)

// ListParams are the arguments of an Arvados list call. Filters and Order are
// passed through as built by the filter package.
type ListParams struct {
	Limit              int       `json:"limit"`
	Offset             int       `json:"offset"`
	Filters            any       `json:"filters,omitempty"`
	Order              []string  `json:"order,omitempty"`
	Count              CountMode `json:"count,omitempty"`
	IncludeTrash       bool      `json:"include_trash,omitempty"`
	IncludeOldVersions bool      `json:"include_old_versions,omitempty"`
	Distinct           bool      `json:"distinct,omitempty"`
	Select             []string  `json:"select,omitempty"`
	Recursive          bool      `json:"recursive,omitempty"`
}

// ListResults is one page of a list response. ItemsAvailable is nil when the
// request was sent with count=none.
type ListResults struct {
	Items          []Resource `json:"items"`
	ItemsAvailable *int       `json:"items_available,omitempty"`
	Offset         int        `json:"offset"`
	Limit          int        `json:"limit"`
	Included       []Resource `json:"included,omitempty"`
}

// RawListResults is the undecoded response body of a list call.
type RawListResults struct {
	Kind           string            `json:"kind"`
	Items          []json.RawMessage `json:"items"`
	ItemsAvailable *int              `json:"items_available"`
	Offset         int               `json:"offset"`
	Limit          int               `json:"limit"`
	Included       []json.RawMessage `json:"included"`
}

// Decode turns a raw list response into typed resources.
func (r RawListResults) Decode() (*ListResults, error) {
	items, err := DecodeResources(r.Items)
	if err != nil {
		return nil, err
	}
	included, err := DecodeResources(r.Included)
	if err != nil {
		return nil, err
	}
	return &ListResults{
		Items:          items,
		ItemsAvailable: r.ItemsAvailable,
		Offset:         r.Offset,
		Limit:          r.Limit,
		Included:       included,
	}, nil
}

// Page derives the zero based page index from an offset and a limit.
func Page(offset, limit int) int {
	if limit <= 0 {
		return 0
	}
	return offset / limit
}
