// errors/explorer_errors.go

package errors

import "errors"

var (
	ErrPanelNotFound          = errors.New("panel not found")
	ErrPanelNotInitialized    = errors.New("panel is not initialized")
	ErrPanelAlreadyExists     = errors.New("panel already exists")
	ErrProjectNotSet          = errors.New("project panel is not opened")
	ErrCurrentUserUnavailable = errors.New("current user uuid unavailable")
	ErrEmptySearch            = errors.New("search value is empty")
	ErrInvalidAction          = errors.New("invalid panel action")
	ErrInvalidPagination      = errors.New("invalid pagination parameters")
	ErrStaleResponse          = errors.New("response superseded by a newer request")
)
