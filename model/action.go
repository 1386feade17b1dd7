// model/action.go
package model

type ActionType string

// Panel action vocabulary. Every panel interprets these identically.
const (
	ActionRequestItems             ActionType = "REQUEST_ITEMS"
	ActionSetItems                 ActionType = "SET_ITEMS"
	ActionAppendItems              ActionType = "APPEND_ITEMS"
	ActionItemsFailed              ActionType = "ITEMS_FAILED"
	ActionResetItems               ActionType = "RESET_ITEMS"
	ActionSetWorking               ActionType = "SET_WORKING"
	ActionResetPagination          ActionType = "RESET_PAGINATION"
	ActionSetPage                  ActionType = "SET_PAGE"
	ActionSetRowsPerPage           ActionType = "SET_ROWS_PER_PAGE"
	ActionSetColumns               ActionType = "SET_COLUMNS"
	ActionSetFilters               ActionType = "SET_FILTERS"
	ActionToggleSort               ActionType = "TOGGLE_SORT"
	ActionToggleColumn             ActionType = "TOGGLE_COLUMN"
	ActionSetExplorerSearchValue   ActionType = "SET_EXPLORER_SEARCH_VALUE"
	ActionResetExplorerSearchValue ActionType = "RESET_EXPLORER_SEARCH_VALUE"
	ActionSetItemsAvailable        ActionType = "SET_ITEMS_AVAILABLE"
	ActionResetItemsAvailable      ActionType = "RESET_ITEMS_AVAILABLE"
	ActionSetLoadingItemsAvailable ActionType = "SET_LOADING_ITEMS_AVAILABLE"
	ActionSetIsNotFound            ActionType = "SET_IS_NOT_FOUND"
	ActionClear                    ActionType = "CLEAR"
)

// Action is one panel state transition. Only the fields relevant to Type are
// read.
type Action struct {
	Type            ActionType `json:"type" binding:"required"`
	Page            int        `json:"page,omitempty"`
	RowsPerPage     int        `json:"rowsPerPage,omitempty"`
	Items           []string   `json:"items,omitempty"`
	ItemsAvailable  *int       `json:"itemsAvailable,omitempty"`
	Columns         []Column   `json:"columns,omitempty"`
	ColumnName      string     `json:"columnName,omitempty"`
	Filters         FilterTree `json:"filters,omitempty"`
	SearchValue     string     `json:"searchValue,omitempty"`
	Background      bool       `json:"background,omitempty"`
	CriteriaChanged *bool      `json:"criteriaChanged,omitempty"`
	Flag            bool       `json:"flag,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// Reload describes the list request an action implies once it is applied.
type Reload struct {
	Needed          bool
	CriteriaChanged bool
	ResetPagination bool
}

// Reload reports whether the action changes what the panel lists. Page moves
// keep the cached item count; everything else recomputes it from page zero.
func (a Action) Reload() Reload {
	switch a.Type {
	case ActionSetPage:
		return Reload{Needed: true}
	case ActionSetRowsPerPage, ActionSetFilters, ActionToggleSort,
		ActionSetExplorerSearchValue, ActionResetExplorerSearchValue:
		return Reload{Needed: true, CriteriaChanged: true, ResetPagination: true}
	case ActionRequestItems:
		criteria := true
		if a.CriteriaChanged != nil {
			criteria = *a.CriteriaChanged
		}
		return Reload{Needed: true, CriteriaChanged: criteria}
	}
	return Reload{}
}

// IsKnown reports whether the type is part of the vocabulary.
func (t ActionType) IsKnown() bool {
	switch t {
	case ActionRequestItems, ActionSetItems, ActionAppendItems, ActionItemsFailed,
		ActionResetItems, ActionSetWorking, ActionResetPagination, ActionSetPage,
		ActionSetRowsPerPage, ActionSetColumns, ActionSetFilters, ActionToggleSort,
		ActionToggleColumn, ActionSetExplorerSearchValue, ActionResetExplorerSearchValue,
		ActionSetItemsAvailable, ActionResetItemsAvailable, ActionSetLoadingItemsAvailable,
		ActionSetIsNotFound, ActionClear:
		return true
	}
	return false
}

// Invalidates reports whether the action discards the listed items. Loads
// started before it must not write their results.
func (t ActionType) Invalidates() bool {
	return t == ActionClear || t == ActionResetItems
}

func IntPtr(v int) *int { return &v }

func BoolPtr(v bool) *bool { return &v }
