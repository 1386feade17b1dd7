// util/validation_util.go

package util

import (
	"fmt"
	"regexp"
	"slices"

	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	"github.com/dev-mohitbeniwal/workbench/model"
)

var (
	uuidPattern = regexp.MustCompile(`^[a-z0-9]{5}-[a-z0-9]{5}-[a-z0-9]{15}$`)
	pdhPattern  = regexp.MustCompile(`^[0-9a-f]{32}\+[0-9]+$`)
)

type ValidationUtil struct {
	rowsPerPageOptions []int
}

func NewValidationUtil(rowsPerPageOptions []int) *ValidationUtil {
	if len(rowsPerPageOptions) == 0 {
		rowsPerPageOptions = model.DefaultRowsPerPageOptions
	}
	return &ValidationUtil{rowsPerPageOptions: rowsPerPageOptions}
}

// ValidateAction checks an action received from a client before it reaches
// the reducer.
func (v *ValidationUtil) ValidateAction(action model.Action) error {
	if !action.Type.IsKnown() {
		return fmt.Errorf("%w: unknown type %q", wb_errors.ErrInvalidAction, action.Type)
	}
	switch action.Type {
	case model.ActionSetPage:
		if action.Page < 0 {
			return fmt.Errorf("%w: page cannot be negative", wb_errors.ErrInvalidPagination)
		}
	case model.ActionSetRowsPerPage:
		if action.RowsPerPage <= 0 {
			return fmt.Errorf("%w: rows per page must be positive", wb_errors.ErrInvalidPagination)
		}
		if !slices.Contains(v.rowsPerPageOptions, action.RowsPerPage) {
			return fmt.Errorf("%w: rows per page must be one of %v", wb_errors.ErrInvalidPagination, v.rowsPerPageOptions)
		}
	case model.ActionSetFilters, model.ActionToggleSort, model.ActionToggleColumn:
		if action.ColumnName == "" {
			return fmt.Errorf("%w: column name cannot be empty", wb_errors.ErrInvalidAction)
		}
	case model.ActionSetColumns:
		if len(action.Columns) == 0 {
			return fmt.Errorf("%w: columns cannot be empty", wb_errors.ErrInvalidAction)
		}
	case model.ActionSetItems, model.ActionAppendItems, model.ActionItemsFailed, model.ActionResetItems:
		return fmt.Errorf("%w: %s is reserved for list loads", wb_errors.ErrInvalidAction, action.Type)
	}
	return nil
}

// ValidateColumn checks that a column action names a column of the panel.
// Sorting also needs the column to be sortable.
func (v *ValidationUtil) ValidateColumn(de model.DataExplorer, action model.Action) error {
	switch action.Type {
	case model.ActionSetFilters, model.ActionToggleSort, model.ActionToggleColumn:
	default:
		return nil
	}
	for _, c := range de.Columns {
		if c.Name != action.ColumnName {
			continue
		}
		if action.Type == model.ActionToggleSort && c.Sort == nil {
			return fmt.Errorf("%w: column %q is not sortable", wb_errors.ErrInvalidAction, action.ColumnName)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown column %q", wb_errors.ErrInvalidAction, action.ColumnName)
}

// ValidateUUID checks the Arvados uuid shape.
func (v *ValidationUtil) ValidateUUID(uuid string) error {
	if !uuidPattern.MatchString(uuid) {
		return fmt.Errorf("%w: malformed uuid %q", wb_errors.ErrInvalidResourceData, uuid)
	}
	return nil
}

// IsPortableDataHash reports whether s is a collection content address such
// as d41d8cd98f00b204e9800998ecf8427e+0.
func IsPortableDataHash(s string) bool {
	return pdhPattern.MatchString(s)
}
