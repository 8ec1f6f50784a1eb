package handlers

import (
	"log/slog"
	"net/http"

	"station-request-api-server/internal/models"
	"station-request-api-server/internal/repository"
	"station-request-api-server/internal/session"

	"github.com/gin-gonic/gin"
)

type WorkflowHandler struct {
	Station *session.Station
	Source  repository.Source
	Log     *slog.Logger
}

// ListWorkflows returns the workflows assigned to the logged-in station,
// refreshed from the backend, and the active one.
func (h *WorkflowHandler) ListWorkflows(c *gin.Context) {
	user, ok := h.Station.Identity()
	if !ok {
		respondError(c, h.Log, "", session.ErrNotAuthenticated)
		return
	}
	known, err := h.Source.ListWorkflows(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, "Failed to list workflows", err)
		return
	}
	byID := make(map[string]models.Workflow, len(known))
	for _, wf := range known {
		byID[wf.ID] = wf
	}

	workflows := make([]models.Workflow, 0, len(user.Workflows))
	for _, wf := range user.Workflows {
		if fresh, ok := byID[wf.ID]; ok {
			wf = fresh
		}
		workflows = append(workflows, wf)
	}

	var active *models.Workflow
	if wf, ok := h.Station.ActiveWorkflow(); ok {
		active = &wf
	}
	c.JSON(http.StatusOK, gin.H{"workflows": workflows, "activeWorkflow": active})
}

type SetActiveWorkflowPayload struct {
	// Empty clears the selection.
	WorkflowID string `json:"workflowId"`
}

func (h *WorkflowHandler) SetActiveWorkflow(c *gin.Context) {
	var payload SetActiveWorkflowPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if payload.WorkflowID == "" {
		if err := h.Station.SetActiveWorkflow(nil); err != nil {
			respondError(c, h.Log, "Failed to clear workflow", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"activeWorkflow": nil})
		return
	}

	wf, err := h.Station.SelectWorkflow(payload.WorkflowID)
	if err != nil {
		respondError(c, h.Log, "Failed to select workflow", err)
		return
	}
	h.Log.Debug("active workflow changed", "workflow", wf.ID)
	c.JSON(http.StatusOK, gin.H{"activeWorkflow": wf})
}
