// explorer/reducer.go
package explorer

import (
	"github.com/dev-mohitbeniwal/workbench/model"
)

// Reduce applies one action to a panel state and returns the new state. The
// input is never modified. Generation is owned by the registry and is left
// alone here.
func Reduce(state model.DataExplorer, action model.Action) model.DataExplorer {
	de := state.Clone()
	if de.RowsPerPage <= 0 {
		de.RowsPerPage = model.DefaultRowsPerPage
	}

	switch action.Type {
	case model.ActionRequestItems:
		if !action.Background {
			de.Status = model.StatusLoading
			de.IsLoading = true
		}
		de.IsNotFound = false
		de.LastError = ""
		de.LoadingItemsAvailable = action.Reload().CriteriaChanged

	case model.ActionSetItems:
		de.Items = capItems(dedupe(nil, action.Items), de.RowsPerPage)
		if action.ItemsAvailable != nil {
			de.ItemsAvailable = *action.ItemsAvailable
		}
		de.Page = clampPage(action.Page)
		de.Status = model.StatusLoaded
		de.IsLoading = false
		de.LoadingItemsAvailable = false

	case model.ActionAppendItems:
		de.Items = capItems(dedupe(de.Items, action.Items), de.RowsPerPage)
		if action.ItemsAvailable != nil {
			de.ItemsAvailable += *action.ItemsAvailable
		}
		de.Status = model.StatusLoaded

	case model.ActionItemsFailed:
		de.Status = model.StatusError
		de.IsLoading = false
		de.LoadingItemsAvailable = false
		de.LastError = action.Error

	case model.ActionResetItems:
		de.Status = model.StatusInitial
		de.Items = []string{}
		de.ItemsAvailable = 0
		de.Page = 0
		de.IsLoading = false
		de.LoadingItemsAvailable = false

	case model.ActionSetWorking:
		de.IsLoading = action.Flag

	case model.ActionResetPagination:
		de.Page = 0

	case model.ActionSetPage:
		de.Page = clampPage(action.Page)

	case model.ActionSetRowsPerPage:
		de.RowsPerPage = action.RowsPerPage
		if de.RowsPerPage <= 0 {
			de.RowsPerPage = model.DefaultRowsPerPage
		}
		de.Items = capItems(de.Items, de.RowsPerPage)
		de.Page = 0

	case model.ActionSetColumns:
		de.Columns = model.CloneColumns(action.Columns)

	case model.ActionSetFilters:
		for i := range de.Columns {
			if de.Columns[i].Name == action.ColumnName {
				de.Columns[i].Filters = append(model.FilterTree(nil), action.Filters...)
			}
		}

	case model.ActionToggleSort:
		de.Columns = toggleSort(de.Columns, action.ColumnName)

	case model.ActionToggleColumn:
		for i := range de.Columns {
			if de.Columns[i].Name == action.ColumnName {
				de.Columns[i].Selected = !de.Columns[i].Selected
			}
		}

	case model.ActionSetExplorerSearchValue:
		de.SearchValue = action.SearchValue

	case model.ActionResetExplorerSearchValue:
		de.SearchValue = ""

	case model.ActionSetItemsAvailable:
		if action.ItemsAvailable != nil {
			de.ItemsAvailable = *action.ItemsAvailable
		}
		de.LoadingItemsAvailable = false

	case model.ActionResetItemsAvailable:
		de.ItemsAvailable = 0

	case model.ActionSetLoadingItemsAvailable:
		de.LoadingItemsAvailable = action.Flag

	case model.ActionSetIsNotFound:
		de.IsNotFound = action.Flag

	case model.ActionClear:
		cleared := model.NewDataExplorer(de.ID, de.RowsPerPage, de.Columns)
		cleared.RowsPerPageOptions = de.RowsPerPageOptions
		cleared.Generation = de.Generation
		de = cleared
	}
	return de
}

// toggleSort flips the named column between ASC and DESC and clears the sort
// of every other sortable column.
func toggleSort(columns []model.Column, name string) []model.Column {
	for i := range columns {
		s := columns[i].Sort
		if s == nil {
			continue
		}
		if columns[i].Name != name {
			s.Direction = model.SortNone
			continue
		}
		if s.Direction == model.SortAsc {
			s.Direction = model.SortDesc
		} else {
			s.Direction = model.SortAsc
		}
	}
	return columns
}

// dedupe appends the uuids of next to prev, keeping the first occurrence of
// each.
func dedupe(prev, next []string) []string {
	seen := make(map[string]struct{}, len(prev)+len(next))
	out := make([]string, 0, len(prev)+len(next))
	for _, list := range [][]string{prev, next} {
		for _, uuid := range list {
			if _, ok := seen[uuid]; ok {
				continue
			}
			seen[uuid] = struct{}{}
			out = append(out, uuid)
		}
	}
	return out
}

func capItems(items []string, rowsPerPage int) []string {
	if len(items) > rowsPerPage {
		return items[:rowsPerPage]
	}
	return items
}

func clampPage(page int) int {
	if page < 0 {
		return 0
	}
	return page
}
