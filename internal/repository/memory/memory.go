// Package memory is the in-process backend of a station, seeded with the
// reference data of package mockdata.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"station-request-api-server/internal/ledger"
	"station-request-api-server/internal/mockdata"
	"station-request-api-server/internal/models"
	"station-request-api-server/internal/repository"
)

var _ repository.Source = (*Store)(nil)

type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	workflows  []models.Workflow
	materials  []models.MaterialSKU
	containers []models.Container
	areas      []models.StagingArea
	inventory  []models.InventoryRow
	requests   []models.Request
	approvals  *ledger.ApprovalQueue
}

type Option func(*Store)

// WithClock replaces time.Now for seeding and request timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a store holding the mock station data.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	today := s.now()
	s.workflows = mockdata.Workflows()
	s.materials = mockdata.Materials()
	s.containers = mockdata.Containers()
	s.areas = mockdata.StagingAreas()
	s.inventory = mockdata.Inventory()
	s.requests = mockdata.Requests(today)
	s.approvals = ledger.NewApprovalQueue(mockdata.ApprovalRequests(today))
	return s
}

func (s *Store) ListWorkflows(ctx context.Context) ([]models.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Workflow{}, s.workflows...), nil
}

func (s *Store) ListMaterials(ctx context.Context) ([]models.MaterialSKU, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MaterialSKU{}, s.materials...), nil
}

func (s *Store) ListContainers(ctx context.Context) ([]models.Container, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Container{}, s.containers...), nil
}

func (s *Store) ListStagingAreas(ctx context.Context) ([]models.StagingArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StagingArea{}, s.areas...), nil
}

func (s *Store) ListInventory(ctx context.Context) ([]models.InventoryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.InventoryRow{}, s.inventory...), nil
}

func (s *Store) ListRequests(ctx context.Context, workflowID string) ([]models.Request, error) {
	s.mu.RLock()
	reqs := append([]models.Request{}, s.requests...)
	s.mu.RUnlock()

	if workflowID != "" {
		reqs = ledger.FilterByWorkflow(reqs, workflowID)
	}
	sort.SliceStable(reqs, func(i, j int) bool { return reqs[i].CreatedAt.After(reqs[j].CreatedAt) })
	return reqs, nil
}

func (s *Store) ListApprovalRequests(ctx context.Context) ([]models.ApprovalRequest, error) {
	return s.approvals.List(ledger.ApprovalsAll), nil
}

func (s *Store) SubmitMaterialRequest(ctx context.Context, items []models.CartItem, wf models.Workflow) (models.Request, error) {
	r, err := repository.NewMaterialRequest(items, wf, s.now())
	if err != nil {
		return models.Request{}, err
	}
	return s.append(ctx, r)
}

func (s *Store) SubmitContainerRequest(ctx context.Context, items []models.ContainerCartItem, wf models.Workflow) (models.Request, error) {
	r, err := repository.NewContainerRequest(items, wf, s.now())
	if err != nil {
		return models.Request{}, err
	}
	return s.append(ctx, r)
}

func (s *Store) SubmitReturnTrolleyRequest(ctx context.Context, item models.ContainerCartItem, wf models.Workflow) (models.Request, error) {
	r, err := repository.NewReturnTrolleyRequest(item, wf, s.now())
	if err != nil {
		return models.Request{}, err
	}
	return s.append(ctx, r)
}

func (s *Store) append(ctx context.Context, r models.Request) (models.Request, error) {
	if err := ctx.Err(); err != nil {
		return models.Request{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r)
	return r, nil
}

func (s *Store) DecideApproval(ctx context.Context, requestID string, d models.Decision) (models.ApprovalRequest, error) {
	if err := ctx.Err(); err != nil {
		return models.ApprovalRequest{}, err
	}
	return s.approvals.Decide(requestID, d)
}
