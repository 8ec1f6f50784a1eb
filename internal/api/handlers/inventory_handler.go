package handlers

import (
	"log/slog"
	"net/http"

	"station-request-api-server/internal/inventory"
	"station-request-api-server/internal/repository"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	Source repository.Source
	Log    *slog.Logger
}

// GetInventory returns the WIP inventory in ?tab= matching ?q=.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	tab, err := inventory.ParseTab(c.Query("tab"))
	if err != nil {
		respondError(c, h.Log, "", err)
		return
	}
	rows, err := h.Source.ListInventory(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, "Failed to query inventory", err)
		return
	}
	c.JSON(http.StatusOK, inventory.Build(rows, tab, c.Query("q")))
}
