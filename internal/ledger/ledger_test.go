package ledger

import (
	"testing"
	"time"

	"station-request-api-server/internal/mockdata"
	"station-request-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 12, 16, 0, 0, 0, time.UTC)

func ids(reqs []models.Request) []string {
	out := []string{}
	for _, r := range reqs {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterByWorkflow(t *testing.T) {
	reqs := mockdata.Requests(now)
	wf01 := FilterByWorkflow(reqs, "wf-01")
	require.Len(t, wf01, 6)
	for _, r := range wf01 {
		assert.Equal(t, "wf-01", r.WorkflowID)
	}
	assert.Equal(t, []string{"Req-007", "Req-008"}, ids(FilterByWorkflow(reqs, "wf-02")))
	assert.Empty(t, FilterByWorkflow(reqs, "wf-99"))
	assert.NotNil(t, FilterByWorkflow(nil, "wf-01"))
}

func TestFilterByBucket(t *testing.T) {
	reqs := mockdata.Requests(now)

	assert.Equal(t, []string{"Req-003", "Req-006"}, ids(FilterByBucket(reqs, BucketCompleted)))
	assert.Equal(t, []string{"Req-001", "Req-005"}, ids(FilterByBucket(reqs, BucketInProgress)))
	assert.Equal(t, []string{"Req-004"}, ids(FilterByBucket(reqs, BucketPending)))
	assert.Equal(t, []string{"Req-002", "Req-007"}, ids(FilterByBucket(reqs, BucketFailed)))
	assert.Equal(t, []string{"Req-002", "Req-007", "Req-008"}, ids(FilterByBucket(reqs, BucketFailed, IncludeBreakdown())))
	assert.Empty(t, FilterByBucket(reqs, BucketScheduled))
	assert.Len(t, FilterByBucket(reqs, BucketAll), len(reqs))
}

func TestParseBucket(t *testing.T) {
	b, err := ParseBucket("")
	require.NoError(t, err)
	assert.Equal(t, BucketAll, b)

	b, err = ParseBucket(" Completed ")
	require.NoError(t, err)
	assert.Equal(t, BucketCompleted, b)

	_, err = ParseBucket("cancelled")
	assert.ErrorIs(t, err, models.ErrInvalidEnum)
}

func TestSearch(t *testing.T) {
	reqs := mockdata.Requests(now)
	assert.Equal(t, []string{"Req-003"}, ids(Search(reqs, "WIDGET")))
	assert.Equal(t, []string{"Req-007", "Req-008"}, ids(Search(reqs, "qc station")))
	assert.Equal(t, []string{"Req-004"}, ids(Search(reqs, "req-004")))
	assert.Len(t, Search(reqs, "  "), len(reqs))
	assert.Empty(t, Search(reqs, "nothing like this"))
}

func TestToday(t *testing.T) {
	reqs := mockdata.Requests(now)
	old := models.Request{ID: "Req-old", CreatedAt: now.AddDate(0, 0, -1)}
	got := Today(append(reqs, old), now)
	assert.Len(t, got, len(reqs))
	assert.NotContains(t, ids(got), "Req-old")
}

func TestCount(t *testing.T) {
	reqs := mockdata.Requests(now)
	assert.Equal(t, Counts{All: 8, InProgress: 2, Pending: 1, Completed: 2, Failed: 2}, Count(reqs))
	assert.Equal(t, 3, Count(reqs, IncludeBreakdown()).Failed)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.StatusPending, models.StatusAwaitingConfirmation))
	assert.True(t, CanTransition(models.StatusAwaitingConfirmation, models.StatusInProgress))
	assert.True(t, CanTransition(models.StatusInProgress, models.StatusCompleted))
	assert.True(t, CanTransition(models.StatusPending, models.StatusFailed))
	assert.True(t, CanTransition(models.StatusInProgress, models.StatusBreakdown))

	assert.False(t, CanTransition(models.StatusPending, models.StatusCompleted))
	assert.False(t, CanTransition(models.StatusInProgress, models.StatusPending))
	for _, terminal := range []models.RequestStatus{models.StatusCompleted, models.StatusFailed, models.StatusBreakdown} {
		assert.False(t, CanTransition(terminal, models.StatusFailed), terminal)
		assert.False(t, CanTransition(terminal, models.StatusPending), terminal)
	}
	assert.False(t, CanTransition("lost", models.StatusFailed))
}

func TestSummarize(t *testing.T) {
	a, _ := models.NewCartItem("sst-01", "Sub-SKU Type 1", "Widget A", 2, 5)
	b, _ := models.NewCartItem("sst-04", "Sub-SKU Type 1", "Bracket B", 3, 10)
	assert.Equal(t, "Widget A – Sub-SKU Type 1 ×2, Bracket B – Sub-SKU Type 1 ×3", Summarize([]models.CartItem{a, b}))
	assert.Equal(t, "", Summarize(nil))

	c := models.ContainerCartItem{ContainerID: "con-01", ContainerType: models.ContainerTrolley, SubtypeID: "cst-01", SubtypeName: "Heavy Trolley", Quantity: 1}
	assert.Equal(t, "Heavy Trolley ×1", SummarizeContainers([]models.ContainerCartItem{c}))
}
