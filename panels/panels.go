// panels/panels.go
package panels

import (
	"github.com/dev-mohitbeniwal/workbench/filter"
	"github.com/dev-mohitbeniwal/workbench/model"
)

const (
	ProjectPanelID       = "projectPanel"
	SearchResultsPanelID = "searchResultsPanel"
	AllProcessesPanelID  = "allProcessesPanel"
	TrashPanelID         = "trashPanel"
)

// Column names shared by the panels
const (
	ColumnName         = "Name"
	ColumnStatus       = "Status"
	ColumnType         = "Type"
	ColumnOwner        = "Owner"
	ColumnFileSize     = "File size"
	ColumnCreatedAt    = "Created at"
	ColumnLastModified = "Last modified"
	ColumnCluster      = "Cluster"
	ColumnTrashedAt    = "Trashed date"
	ColumnDeleteAt     = "To be deleted"
)

func sortable(name, field string, direction model.SortDirection) model.Column {
	return model.Column{
		Name:         name,
		Selected:     true,
		Configurable: true,
		Sort:         &model.Sort{Field: field, Direction: direction},
	}
}

func ProjectPanelColumns() []model.Column {
	return []model.Column{
		sortable(ColumnName, "name", model.SortNone),
		{Name: ColumnStatus, Selected: true, Configurable: true, Filters: filter.InitialProcessStatusFilters()},
		{Name: ColumnType, Selected: true, Configurable: true, Filters: filter.InitialDataResourceTypeFilters()},
		{Name: ColumnOwner, Selected: false, Configurable: true},
		sortable(ColumnFileSize, "fileSizeTotal", model.SortNone),
		sortable(ColumnLastModified, "modifiedAt", model.SortDesc),
	}
}

func SearchResultsColumns() []model.Column {
	return []model.Column{
		sortable(ColumnName, "name", model.SortNone),
		{Name: ColumnStatus, Selected: true, Configurable: true},
		{Name: ColumnType, Selected: true, Configurable: true, Filters: filter.InitialResourceTypeFilters()},
		{Name: ColumnCluster, Selected: true, Configurable: true},
		{Name: ColumnOwner, Selected: true, Configurable: true},
		sortable(ColumnLastModified, "modifiedAt", model.SortDesc),
	}
}

func AllProcessesColumns() []model.Column {
	return []model.Column{
		sortable(ColumnName, "name", model.SortNone),
		{Name: ColumnStatus, Selected: true, Configurable: true, Filters: filter.InitialProcessStatusFilters()},
		{Name: ColumnType, Selected: true, Configurable: true, Filters: filter.InitialProcessTypeFilters()},
		{Name: ColumnOwner, Selected: true, Configurable: true},
		sortable(ColumnCreatedAt, "createdAt", model.SortDesc),
	}
}

func TrashColumns() []model.Column {
	return []model.Column{
		sortable(ColumnName, "name", model.SortNone),
		{Name: ColumnType, Selected: true, Configurable: true},
		sortable(ColumnFileSize, "fileSizeTotal", model.SortNone),
		sortable(ColumnTrashedAt, "trashAt", model.SortDesc),
		sortable(ColumnDeleteAt, "deleteAt", model.SortNone),
	}
}

// InitialStates returns the empty state of every panel this package binds.
func InitialStates(rowsPerPage int, rowsPerPageOptions []int) []model.DataExplorer {
	states := []model.DataExplorer{
		model.NewDataExplorer(ProjectPanelID, rowsPerPage, ProjectPanelColumns()),
		model.NewDataExplorer(SearchResultsPanelID, rowsPerPage, SearchResultsColumns()),
		model.NewDataExplorer(AllProcessesPanelID, rowsPerPage, AllProcessesColumns()),
		model.NewDataExplorer(TrashPanelID, rowsPerPage, TrashColumns()),
	}
	if len(rowsPerPageOptions) > 0 {
		for i := range states {
			states[i].RowsPerPageOptions = append([]int(nil), rowsPerPageOptions...)
		}
	}
	return states
}
