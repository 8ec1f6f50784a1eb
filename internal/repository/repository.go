// Package repository is the data-access boundary of a station: reference
// data, the request ledger and the approval queue.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"station-request-api-server/internal/ledger"
	"station-request-api-server/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = ledger.ErrNotFound
	ErrAlreadyDecided = ledger.ErrAlreadyDecided
	ErrEmptyRequest   = errors.New("request has no items")
	ErrInvalidRequest = errors.New("invalid request")
)

// Source is implemented by every storage backend.
type Source interface {
	ListWorkflows(ctx context.Context) ([]models.Workflow, error)
	ListMaterials(ctx context.Context) ([]models.MaterialSKU, error)
	ListContainers(ctx context.Context) ([]models.Container, error)
	ListStagingAreas(ctx context.Context) ([]models.StagingArea, error)
	ListInventory(ctx context.Context) ([]models.InventoryRow, error)
	// ListRequests returns the ledger of a workflow, newest first. An empty
	// workflowID returns every request.
	ListRequests(ctx context.Context, workflowID string) ([]models.Request, error)
	ListApprovalRequests(ctx context.Context) ([]models.ApprovalRequest, error)

	SubmitMaterialRequest(ctx context.Context, items []models.CartItem, wf models.Workflow) (models.Request, error)
	SubmitContainerRequest(ctx context.Context, items []models.ContainerCartItem, wf models.Workflow) (models.Request, error)
	SubmitReturnTrolleyRequest(ctx context.Context, item models.ContainerCartItem, wf models.Workflow) (models.Request, error)
	DecideApproval(ctx context.Context, requestID string, d models.Decision) (models.ApprovalRequest, error)
}

// NewRequestID returns an id like "REQ-1A2B3C4D".
func NewRequestID() string {
	return fmt.Sprintf("REQ-%s", strings.ToUpper(uuid.New().String()[:8]))
}

// NewMaterialRequest validates items and builds the pending ledger entry a
// backend stores for them.
func NewMaterialRequest(items []models.CartItem, wf models.Workflow, at time.Time) (models.Request, error) {
	if len(items) == 0 {
		return models.Request{}, ErrEmptyRequest
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return models.Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}
	return newRequest(models.RequestMaterial, ledger.Summarize(items), wf, at)
}

func NewContainerRequest(items []models.ContainerCartItem, wf models.Workflow, at time.Time) (models.Request, error) {
	if len(items) == 0 {
		return models.Request{}, ErrEmptyRequest
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return models.Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}
	return newRequest(models.RequestContainer, ledger.SummarizeContainers(items), wf, at)
}

func NewReturnTrolleyRequest(item models.ContainerCartItem, wf models.Workflow, at time.Time) (models.Request, error) {
	if err := item.Validate(); err != nil {
		return models.Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return newRequest(models.RequestReturnTrolley, item.SubtypeName, wf, at)
}

func newRequest(t models.RequestType, items string, wf models.Workflow, at time.Time) (models.Request, error) {
	if wf.ID == "" {
		return models.Request{}, fmt.Errorf("%w: no workflow", ErrInvalidRequest)
	}
	return models.Request{
		ID:         NewRequestID(),
		Type:       t,
		Status:     models.StatusPending,
		CreatedAt:  at,
		Items:      items,
		Workflow:   wf.Name,
		WorkflowID: wf.ID,
	}, nil
}
