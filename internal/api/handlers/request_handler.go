package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"station-request-api-server/internal/cart"
	"station-request-api-server/internal/catalog"
	"station-request-api-server/internal/ledger"
	"station-request-api-server/internal/metrics"
	"station-request-api-server/internal/models"
	"station-request-api-server/internal/repository"
	"station-request-api-server/internal/s3"
	"station-request-api-server/internal/session"
	"station-request-api-server/internal/socket"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	Station  *session.Station
	Source   repository.Source
	Hub      *socket.Hub
	Archiver *s3.Archiver
	Metrics  *metrics.Metrics
	Log      *slog.Logger
	Now      func() time.Time
}

func (h *RequestHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// scope returns the identity and the active workflow every request view and
// submission is bound to.
func (h *RequestHandler) scope() (models.Identity, models.Workflow, error) {
	user, ok := h.Station.Identity()
	if !ok {
		return models.Identity{}, models.Workflow{}, session.ErrNotAuthenticated
	}
	wf, ok := h.Station.ActiveWorkflow()
	if !ok {
		return user, models.Workflow{}, fmt.Errorf("%w: no active workflow", repository.ErrInvalidRequest)
	}
	return user, wf, nil
}

// listScoped loads the active workflow's ledger after ?q= and ?today=.
func (h *RequestHandler) listScoped(c *gin.Context) ([]models.Request, []ledger.Option, error) {
	var opts []ledger.Option
	if breakdown, _ := strconv.ParseBool(c.Query("breakdown")); breakdown {
		opts = append(opts, ledger.IncludeBreakdown())
	}

	wf, ok := h.Station.ActiveWorkflow()
	if !ok {
		return []models.Request{}, opts, nil
	}
	reqs, err := h.Source.ListRequests(c.Request.Context(), wf.ID)
	if err != nil {
		return nil, nil, err
	}
	if today, _ := strconv.ParseBool(c.Query("today")); today {
		reqs = ledger.Today(reqs, h.now())
	}
	return ledger.Search(reqs, c.Query("q")), opts, nil
}

// ListRequests returns the active workflow's requests in ?bucket=.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	bucket, err := ledger.ParseBucket(c.Query("bucket"))
	if err != nil {
		respondError(c, h.Log, "", err)
		return
	}
	reqs, opts, err := h.listScoped(c)
	if err != nil {
		respondError(c, h.Log, "Failed to query requests", err)
		return
	}
	c.JSON(http.StatusOK, ledger.FilterByBucket(reqs, bucket, opts...))
}

func (h *RequestHandler) Counts(c *gin.Context) {
	reqs, opts, err := h.listScoped(c)
	if err != nil {
		respondError(c, h.Log, "Failed to query requests", err)
		return
	}
	c.JSON(http.StatusOK, ledger.Count(reqs, opts...))
}

// SubmitMaterial turns the material cart into a request. On success the
// whole cart is cleared; on failure it is left as it was.
func (h *RequestHandler) SubmitMaterial(c *gin.Context) {
	user, wf, err := h.scope()
	if err != nil {
		respondError(c, h.Log, "", err)
		return
	}

	var req models.Request
	var lines cart.Snapshot
	err = h.Station.WithCart(sessionID(c), func(ct *cart.Cart) error {
		lines = ct.Snapshot()
		r, err := h.Source.SubmitMaterialRequest(c.Request.Context(), lines.Items, wf)
		if err != nil {
			return err
		}
		ct.ClearAll()
		req = r
		return nil
	})
	if err != nil {
		respondError(c, h.Log, "Failed to submit request", err)
		return
	}
	h.published(c.Request.Context(), user, req, lines)
	c.JSON(http.StatusCreated, req)
}

// SubmitContainer turns the container cart into a request and clears only
// the container cart.
func (h *RequestHandler) SubmitContainer(c *gin.Context) {
	user, wf, err := h.scope()
	if err != nil {
		respondError(c, h.Log, "", err)
		return
	}

	var req models.Request
	var lines cart.Snapshot
	err = h.Station.WithCart(sessionID(c), func(ct *cart.Cart) error {
		lines = cart.Snapshot{Items: []models.CartItem{}, Containers: ct.Containers(), ReturnTrolleyEnabled: ct.ReturnTrolleyEnabled()}
		r, err := h.Source.SubmitContainerRequest(c.Request.Context(), lines.Containers, wf)
		if err != nil {
			return err
		}
		ct.ClearContainers()
		req = r
		return nil
	})
	if err != nil {
		respondError(c, h.Log, "Failed to submit request", err)
		return
	}
	h.published(c.Request.Context(), user, req, lines)
	c.JSON(http.StatusCreated, req)
}

type ReturnTrolleyRequestPayload struct {
	ContainerID string `json:"containerId" binding:"required"`
	SubtypeID   string `json:"subtypeId" binding:"required"`
}

// SubmitReturnTrolley requests pickup of one empty container. The cart is
// not involved.
func (h *RequestHandler) SubmitReturnTrolley(c *gin.Context) {
	var payload ReturnTrolleyRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, wf, err := h.scope()
	if err != nil {
		respondError(c, h.Log, "", err)
		return
	}

	ctx := c.Request.Context()
	containers, err := h.Source.ListContainers(ctx)
	if err != nil {
		respondError(c, h.Log, "Failed to list containers", err)
		return
	}
	container, err := catalog.FindContainer(containers, payload.ContainerID)
	if err != nil {
		respondError(c, h.Log, "", err)
		return
	}
	items, err := catalog.SelectContainers(container, []string{payload.SubtypeID})
	if err != nil {
		respondError(c, h.Log, "", err)
		return
	}

	req, err := h.Source.SubmitReturnTrolleyRequest(ctx, items[0], wf)
	if err != nil {
		respondError(c, h.Log, "Failed to submit request", err)
		return
	}
	h.published(ctx, user, req, cart.Snapshot{Items: []models.CartItem{}, Containers: items})
	c.JSON(http.StatusCreated, req)
}

// published records a stored request: metrics, a websocket event and the S3
// receipt. None of these can fail the submission.
func (h *RequestHandler) published(ctx context.Context, user models.Identity, req models.Request, lines cart.Snapshot) {
	h.Metrics.Submitted(string(req.Type))
	h.Log.Info("request submitted", "id", req.ID, "type", req.Type, "workflow", req.WorkflowID, "user", user.ID)

	if err := h.Hub.Broadcast(socket.EventRequestSubmitted, req); err != nil {
		h.Log.Warn("failed to broadcast request", "id", req.ID, "error", err)
	}

	url, err := h.Archiver.Archive(ctx, s3.Receipt{
		Request:     req,
		StationCode: user.StationCode,
		SubmittedBy: user.ID,
		Lines:       lines,
		ArchivedAt:  h.now(),
	})
	if err != nil {
		h.Log.Warn("failed to archive request receipt", "id", req.ID, "error", err)
		return
	}
	if url != "" {
		h.Log.Debug("request receipt archived", "id", req.ID, "url", url)
	}
}
