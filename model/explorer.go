// model/explorer.go
package model

// DefaultRowsPerPage is used whenever a panel is created without a page size.
const DefaultRowsPerPage = 50

var DefaultRowsPerPageOptions = []int{10, 20, 50, 100, 200, 500}

type Status string

const (
	StatusInitial Status = "INITIAL"
	StatusLoading Status = "LOADING"
	StatusLoaded  Status = "LOADED"
	StatusError   Status = "ERROR"
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
	SortNone SortDirection = "NONE"
)

// Sort is the active ordering of a sortable column. Field is the resource
// attribute in camelCase as shown to the client.
type Sort struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// FilterNode is one entry of a column filter tree. Children name their
// parent by id; roots have an empty Parent.
type FilterNode struct {
	ID       string `json:"id"`
	Parent   string `json:"parent,omitempty"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

type FilterTree []FilterNode

// SelectedIDs returns the ids of selected nodes in tree order.
func (t FilterTree) SelectedIDs() []string {
	var ids []string
	for _, n := range t {
		if n.Selected {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// FirstSelected returns the id of the first selected node, if any.
func (t FilterTree) FirstSelected() (string, bool) {
	for _, n := range t {
		if n.Selected {
			return n.ID, true
		}
	}
	return "", false
}

type Column struct {
	Name         string     `json:"name"`
	Selected     bool       `json:"selected"`
	Configurable bool       `json:"configurable"`
	Sort         *Sort      `json:"sort,omitempty"`
	Filters      FilterTree `json:"filters,omitempty"`
}

// DataExplorer is the list state of one panel.
type DataExplorer struct {
	ID                    string   `json:"id"`
	Page                  int      `json:"page"`
	RowsPerPage           int      `json:"rowsPerPage"`
	RowsPerPageOptions    []int    `json:"rowsPerPageOptions"`
	SearchValue           string   `json:"searchValue"`
	Columns               []Column `json:"columns"`
	Items                 []string `json:"items"`
	ItemsAvailable        int      `json:"itemsAvailable"`
	Status                Status   `json:"status"`
	IsLoading             bool     `json:"isLoading"`
	LoadingItemsAvailable bool     `json:"loadingItemsAvailable"`
	IsNotFound            bool     `json:"isNotFound"`
	Generation            uint64   `json:"generation"`
	LastError             string   `json:"lastError,omitempty"`
}

// NewDataExplorer returns an INITIAL panel state.
func NewDataExplorer(id string, rowsPerPage int, columns []Column) DataExplorer {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	return DataExplorer{
		ID:                 id,
		RowsPerPage:        rowsPerPage,
		RowsPerPageOptions: append([]int(nil), DefaultRowsPerPageOptions...),
		Columns:            CloneColumns(columns),
		Items:              []string{},
		Status:             StatusInitial,
	}
}

// Clone returns a deep copy so callers cannot alias registry state.
func (de DataExplorer) Clone() DataExplorer {
	out := de
	out.RowsPerPageOptions = append([]int(nil), de.RowsPerPageOptions...)
	out.Columns = CloneColumns(de.Columns)
	out.Items = append([]string{}, de.Items...)
	return out
}

// SortColumn returns the column carrying an active sort direction.
func (de DataExplorer) SortColumn() (Column, bool) {
	for _, c := range de.Columns {
		if c.Sort != nil && c.Sort.Direction != SortNone && c.Sort.Direction != "" {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnFilters returns the filter tree of the named column.
func (de DataExplorer) ColumnFilters(name string) FilterTree {
	for _, c := range de.Columns {
		if c.Name == name {
			return c.Filters
		}
	}
	return nil
}

func CloneColumns(columns []Column) []Column {
	if columns == nil {
		return nil
	}
	out := make([]Column, len(columns))
	for i, c := range columns {
		out[i] = c
		if c.Sort != nil {
			s := *c.Sort
			out[i].Sort = &s
		}
		out[i].Filters = append(FilterTree(nil), c.Filters...)
	}
	return out
}
