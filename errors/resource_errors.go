// errors/resource_errors.go

package errors

import "errors"

var (
	ErrResourceNotFound    = errors.New("resource not found")
	ErrInvalidResourceData = errors.New("invalid resource data")
	ErrUnknownResourceKind = errors.New("unknown resource kind")
	ErrDatabaseOperation   = errors.New("database operation failed")
	ErrCacheMiss           = errors.New("cache miss")
	ErrInternalServer      = errors.New("internal server error")
)
