// util/http_util.go
package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	logger "github.com/dev-mohitbeniwal/workbench/logging"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// StatusForError maps service errors to an HTTP status and a client message.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, wb_errors.ErrPanelNotFound):
		return http.StatusNotFound, "Panel not found"
	case errors.Is(err, wb_errors.ErrResourceNotFound), wb_errors.IsNotFound(err):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, wb_errors.ErrInvalidAction), errors.Is(err, wb_errors.ErrInvalidPagination),
		errors.Is(err, wb_errors.ErrInvalidResourceData), errors.Is(err, wb_errors.ErrUnknownCluster),
		errors.Is(err, wb_errors.ErrEmptySearch):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, wb_errors.ErrProjectNotSet), errors.Is(err, wb_errors.ErrPanelNotInitialized):
		return http.StatusConflict, err.Error()
	case wb_errors.IsUnauthorized(err):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, wb_errors.ErrCurrentUserUnavailable), errors.Is(err, wb_errors.ErrTransport):
		return http.StatusBadGateway, "Remote API unavailable"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// RespondWithServiceError writes the mapped status for err.
func RespondWithServiceError(c *gin.Context, err error) {
	code, message := StatusForError(err)
	RespondWithError(c, code, message, err)
}
