package handlers

import (
	"net/http"

	"station-request-api-server/internal/models"
	"station-request-api-server/internal/navigation"
	"station-request-api-server/internal/session"

	"github.com/gin-gonic/gin"
)

type NavigationHandler struct {
	Station *session.Station
}

// Navigate resolves ?path= against the station session. It is public: the
// login screen asks it too.
func (h *NavigationHandler) Navigate(c *gin.Context) {
	path := c.Query("path")
	var identity *models.Identity
	if user, ok := h.Station.Identity(); ok {
		identity = &user
	}
	target := navigation.Resolve(path, identity)
	c.JSON(http.StatusOK, gin.H{
		"path":       target,
		"redirected": !navigation.Allowed(path, identity),
	})
}
