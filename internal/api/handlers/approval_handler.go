package handlers

import (
	"log/slog"
	"net/http"
	"sort"

	"station-request-api-server/internal/api/middleware"
	"station-request-api-server/internal/ledger"
	"station-request-api-server/internal/metrics"
	"station-request-api-server/internal/models"
	"station-request-api-server/internal/repository"
	"station-request-api-server/internal/socket"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	Source  repository.Source
	Hub     *socket.Hub
	Metrics *metrics.Metrics
	Log     *slog.Logger
}

// ListApprovals returns the approval queue in ?bucket= (pending by default),
// newest first, with the size of every bucket.
func (h *ApprovalHandler) ListApprovals(c *gin.Context) {
	bucket, err := ledger.ParseApprovalBucket(c.Query("bucket"))
	if err != nil {
		respondError(c, h.Log, "", err)
		return
	}
	all, err := h.Source.ListApprovalRequests(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, "Failed to query approval requests", err)
		return
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].RequestTime.After(all[j].RequestTime) })

	counts := make(map[ledger.ApprovalBucket]int, len(ledger.ApprovalBuckets))
	for _, b := range ledger.ApprovalBuckets {
		counts[b] = len(ledger.FilterApprovals(all, b))
	}
	c.JSON(http.StatusOK, gin.H{
		"bucket":   bucket,
		"requests": ledger.FilterApprovals(all, bucket),
		"counts":   counts,
	})
}

func (h *ApprovalHandler) Approve(c *gin.Context) {
	h.decide(c, models.DecisionApprove)
}

func (h *ApprovalHandler) Reject(c *gin.Context) {
	h.decide(c, models.DecisionReject)
}

// decide applies d to a pending request. A request that is already decided
// answers 409 and keeps its status.
func (h *ApprovalHandler) decide(c *gin.Context, d models.Decision) {
	id := c.Param("id")
	decided, err := h.Source.DecideApproval(c.Request.Context(), id, d)
	if err != nil {
		respondError(c, h.Log, "Failed to record decision", err)
		return
	}

	h.Metrics.Decided(string(d))
	h.Log.Info("approval decided", "id", id, "decision", d, "by", c.GetString(middleware.KeyUserID))
	if err := h.Hub.Broadcast(socket.EventApprovalDecided, decided); err != nil {
		h.Log.Warn("failed to broadcast decision", "id", id, "error", err)
	}
	c.JSON(http.StatusOK, decided)
}
