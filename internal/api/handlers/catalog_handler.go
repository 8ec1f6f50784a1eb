package handlers

import (
	"log/slog"
	"net/http"

	"station-request-api-server/internal/catalog"
	"station-request-api-server/internal/repository"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Source repository.Source
	Log    *slog.Logger
}

// ListMaterials returns the selectable sub-SKU rows, filtered by ?q=.
func (h *CatalogHandler) ListMaterials(c *gin.Context) {
	materials, err := h.Source.ListMaterials(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, "Failed to list materials", err)
		return
	}
	c.JSON(http.StatusOK, catalog.Search(catalog.Flatten(materials), c.Query("q")))
}

func (h *CatalogHandler) ListContainers(c *gin.Context) {
	containers, err := h.Source.ListContainers(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, "Failed to list containers", err)
		return
	}
	c.JSON(http.StatusOK, containers)
}
