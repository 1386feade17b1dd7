// explorer/binding.go
package explorer

import (
	"context"

	"github.com/dev-mohitbeniwal/workbench/model"
)

// Mode selects how a binding's responses land in the panel.
type Mode int

const (
	// ModeReplace sends one request and replaces the page with its items.
	ModeReplace Mode = iota
	// ModeAppend sends one request per origin concurrently and appends each
	// response as it arrives.
	ModeAppend
)

// FetchFunc performs one list call.
type FetchFunc func(ctx context.Context, params model.ListParams) (*model.ListResults, error)

// Request is one list call a binding wants made. Origin names where it goes,
// usually a cluster id, and is what failure notifications report.
type Request struct {
	Origin string
	Params model.ListParams
	Fetch  FetchFunc
}

type RequestOptions struct {
	CriteriaChanged bool
	Background      bool
}

// Effects are the side effects a binding asks for after a successful load.
type Effects struct {
	NavigateTo string
	NotFound   bool
}

// Binding adapts the generic load protocol to one panel.
//
// BuildRequests runs before any state changes. Returning an error aborts the
// load with no request sent; returning no requests and no error is a silent
// no-op. Failure turns an error into the single notification shown to the
// user, or nil to stay quiet. A nil or empty origins list means the load
// failed before any request was sent.
type Binding interface {
	ID() string
	Mode() Mode
	BuildRequests(ctx context.Context, de model.DataExplorer, opts RequestOptions) ([]Request, error)
	OnSuccess(ctx context.Context, de model.DataExplorer, results []*model.ListResults) Effects
	Failure(origins []string, err error) *model.Notification
}

// PageParams maps the panel pagination onto list arguments. The item count
// is only requested when the criteria changed; page moves reuse the cached
// one.
func PageParams(de model.DataExplorer, opts RequestOptions) model.ListParams {
	rows := de.RowsPerPage
	if rows <= 0 {
		rows = model.DefaultRowsPerPage
	}
	count := model.CountNone
	if opts.CriteriaChanged {
		count = model.CountExact
	}
	return model.ListParams{
		Limit:  rows,
		Offset: de.Page * rows,
		Count:  count,
	}
}
