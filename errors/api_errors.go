// errors/api_errors.go

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrTransport      = errors.New("remote request failed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUnknownCluster = errors.New("unknown cluster")
)

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	Status int
	Errors []string
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%d: %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%d: %s", e.Status, strings.Join(e.Errors, "; "))
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return errors.Is(err, ErrUnauthorized)
}
