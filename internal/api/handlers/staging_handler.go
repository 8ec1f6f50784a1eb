package handlers

import (
	"log/slog"
	"net/http"

	"station-request-api-server/internal/models"
	"station-request-api-server/internal/repository"
	"station-request-api-server/internal/session"
	"station-request-api-server/internal/staging"

	"github.com/gin-gonic/gin"
)

type StagingHandler struct {
	Station *session.Station
	Source  repository.Source
	Log     *slog.Logger
}

type StagingAreaView struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Rows    int             `json:"rows"`
	Cols    int             `json:"cols"`
	Active  bool            `json:"active"`
	Summary staging.Summary `json:"summary"`
}

func (h *StagingHandler) stationAreas(c *gin.Context) ([]models.StagingArea, error) {
	areas, err := h.Source.ListStagingAreas(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return staging.ForStation(areas, h.Station.StagingAreaIDs()), nil
}

// ListStagingAreas returns the station's staging areas in ?tab= with their
// occupancy, without the cells.
func (h *StagingHandler) ListStagingAreas(c *gin.Context) {
	areas, err := h.stationAreas(c)
	if err != nil {
		respondError(c, h.Log, "Failed to list staging areas", err)
		return
	}
	shown, err := staging.Filter(areas, staging.Tab(c.Query("tab")))
	if err != nil {
		respondError(c, h.Log, "", err)
		return
	}

	views := make([]StagingAreaView, 0, len(shown))
	for _, a := range shown {
		views = append(views, StagingAreaView{
			ID:      a.ID,
			Name:    a.Name,
			Rows:    a.Rows,
			Cols:    a.Cols,
			Active:  staging.IsActive(a),
			Summary: staging.Summarize(a),
		})
	}
	c.JSON(http.StatusOK, views)
}

// GetGrid lays out one staging area for ?orientation=.
func (h *StagingHandler) GetGrid(c *gin.Context) {
	areas, err := h.stationAreas(c)
	if err != nil {
		respondError(c, h.Log, "Failed to list staging areas", err)
		return
	}
	id := c.Param("id")
	for _, a := range areas {
		if a.ID != id {
			continue
		}
		grid, err := staging.BuildGrid(a, staging.Orientation(c.Query("orientation")))
		if err != nil {
			respondError(c, h.Log, "", err)
			return
		}
		c.JSON(http.StatusOK, grid)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Staging area not found"})
}
