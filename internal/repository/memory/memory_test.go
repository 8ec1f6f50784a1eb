package memory

import (
	"context"
	"testing"
	"time"

	"station-request-api-server/internal/ledger"
	"station-request-api-server/internal/models"
	"station-request-api-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t := time.Date(2024, 3, 12, 16, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestReferenceData(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(fixedClock()))

	wfs, err := s.ListWorkflows(ctx)
	require.NoError(t, err)
	assert.Len(t, wfs, 3)

	materials, _ := s.ListMaterials(ctx)
	assert.Len(t, materials, 4)
	containers, _ := s.ListContainers(ctx)
	assert.Len(t, containers, 3)
	areas, _ := s.ListStagingAreas(ctx)
	assert.Len(t, areas, 2)
	inv, _ := s.ListInventory(ctx)
	assert.Len(t, inv, 8)
}

func TestListRequestsScopedAndNewestFirst(t *testing.T) {
	s := New(WithClock(fixedClock()))
	reqs, err := s.ListRequests(context.Background(), "wf-01")
	require.NoError(t, err)
	require.Len(t, reqs, 6)
	for i := 1; i < len(reqs); i++ {
		assert.False(t, reqs[i].CreatedAt.After(reqs[i-1].CreatedAt))
	}
	all, _ := s.ListRequests(context.Background(), "")
	assert.Len(t, all, 8)
}

func TestSubmitAppendsPendingRequest(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(fixedClock()))
	wfs, _ := s.ListWorkflows(ctx)

	item, err := models.NewCartItem("sst-01", "Sub-SKU Type 1", "Widget A", 3, 5)
	require.NoError(t, err)
	r, err := s.SubmitMaterialRequest(ctx, []models.CartItem{item}, wfs[0])
	require.NoError(t, err)
	assert.Regexp(t, `^REQ-`, r.ID)

	reqs, _ := s.ListRequests(ctx, "wf-01")
	require.Len(t, reqs, 7)
	assert.Equal(t, r.ID, reqs[0].ID)
	assert.Equal(t, models.StatusPending, reqs[0].Status)
	assert.Len(t, ledger.FilterByBucket(reqs, ledger.BucketPending), 2)

	_, err = s.SubmitContainerRequest(ctx, nil, wfs[0])
	assert.ErrorIs(t, err, repository.ErrEmptyRequest)
	reqs, _ = s.ListRequests(ctx, "")
	assert.Len(t, reqs, 9, "a failed submission appends nothing")
}

func TestSubmitHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New()
	wfs, _ := s.ListWorkflows(context.Background())
	_, err := s.SubmitReturnTrolleyRequest(ctx, models.ContainerCartItem{
		ContainerID: "con-01", ContainerType: models.ContainerTrolley, SubtypeID: "cst-02", SubtypeName: "Light Trolley", Quantity: 1,
	}, wfs[0])
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecideApproval(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(fixedClock()))

	r, err := s.DecideApproval(ctx, "APR-003", models.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalRejected, r.Status)

	_, err = s.DecideApproval(ctx, "APR-003", models.DecisionApprove)
	assert.ErrorIs(t, err, repository.ErrAlreadyDecided)

	_, err = s.DecideApproval(ctx, "APR-999", models.DecisionApprove)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, _ := s.ListApprovalRequests(ctx)
	assert.Len(t, ledger.FilterApprovals(all, ledger.ApprovalsRejected), 2)
}
