package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"station-request-api-server/internal/api/middleware"
	"station-request-api-server/internal/cart"
	"station-request-api-server/internal/catalog"
	"station-request-api-server/internal/models"
	"station-request-api-server/internal/repository"
	"station-request-api-server/internal/session"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrAlreadyDecided):
		return http.StatusConflict
	case errors.Is(err, repository.ErrEmptyRequest):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, catalog.ErrUnknownSubSKU),
		errors.Is(err, catalog.ErrUnknownContainer),
		errors.Is(err, session.ErrUnknownWorkflow):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrQuantityOutOfRange),
		errors.Is(err, repository.ErrInvalidRequest),
		errors.Is(err, models.ErrInvalidID),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidMaxQty),
		errors.Is(err, models.ErrInvalidEnum):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes err with its mapped status. Backend failures are
// logged and reported with a generic message.
func respondError(c *gin.Context, log *slog.Logger, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(msg, "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func sessionID(c *gin.Context) string {
	return c.GetString(middleware.KeySessionID)
}
