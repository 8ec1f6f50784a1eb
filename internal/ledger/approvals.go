package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"station-request-api-server/internal/models"
)

var (
	ErrNotFound       = errors.New("request not found")
	ErrAlreadyDecided = errors.New("request already decided")
)

// ApprovalBucket is a tab of the approval queue.
type ApprovalBucket string

const (
	ApprovalsPending  ApprovalBucket = "pending"
	ApprovalsApproved ApprovalBucket = "approved"
	ApprovalsRejected ApprovalBucket = "rejected"
	ApprovalsExpired  ApprovalBucket = "expired" // requests carry no expiry, always empty
	ApprovalsAll      ApprovalBucket = "all"
)

var ApprovalBuckets = []ApprovalBucket{ApprovalsPending, ApprovalsApproved, ApprovalsRejected, ApprovalsExpired, ApprovalsAll}

// ParseApprovalBucket maps a query value to a bucket. Empty means pending,
// the queue's default tab.
func ParseApprovalBucket(s string) (ApprovalBucket, error) {
	if s == "" {
		return ApprovalsPending, nil
	}
	b := ApprovalBucket(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ApprovalBuckets {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("approval bucket %q: %w", s, models.ErrInvalidEnum)
}

func (b ApprovalBucket) Contains(s models.ApprovalStatus) bool {
	switch b {
	case ApprovalsAll:
		return true
	case ApprovalsExpired:
		return false
	}
	return models.ApprovalStatus(b) == s
}

func FilterApprovals(reqs []models.ApprovalRequest, b ApprovalBucket) []models.ApprovalRequest {
	out := []models.ApprovalRequest{}
	for _, r := range reqs {
		if b.Contains(r.Status) {
			out = append(out, r)
		}
	}
	return out
}

// Decide applies d to r. Only pending requests can be decided.
func Decide(r models.ApprovalRequest, d models.Decision) (models.ApprovalRequest, error) {
	status, ok := d.Status()
	if !ok {
		return r, fmt.Errorf("decision %q: %w", d, models.ErrInvalidEnum)
	}
	if r.Status != models.ApprovalPending {
		return r, fmt.Errorf("%s is %s: %w", r.ID, r.Status, ErrAlreadyDecided)
	}
	r.Status = status
	return r, nil
}

// ApprovalQueue is the status map of the approval ledger.
type ApprovalQueue struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.ApprovalRequest
}

func NewApprovalQueue(reqs []models.ApprovalRequest) *ApprovalQueue {
	q := &ApprovalQueue{byID: make(map[string]models.ApprovalRequest, len(reqs))}
	for _, r := range reqs {
		q.putLocked(r)
	}
	return q
}

func (q *ApprovalQueue) putLocked(r models.ApprovalRequest) {
	if _, exists := q.byID[r.ID]; !exists {
		q.order = append(q.order, r.ID)
	}
	q.byID[r.ID] = r
}

// Add enqueues r, replacing any entry with the same id.
func (q *ApprovalQueue) Add(r models.ApprovalRequest) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.putLocked(r)
}

func (q *ApprovalQueue) Get(id string) (models.ApprovalRequest, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	r, ok := q.byID[id]
	if !ok {
		return models.ApprovalRequest{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return r, nil
}

func (q *ApprovalQueue) Decide(id string, d models.Decision) (models.ApprovalRequest, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	r, ok := q.byID[id]
	if !ok {
		return models.ApprovalRequest{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	decided, err := Decide(r, d)
	if err != nil {
		return r, err
	}
	q.byID[id] = decided
	return decided, nil
}

func (q *ApprovalQueue) Approve(id string) (models.ApprovalRequest, error) {
	return q.Decide(id, models.DecisionApprove)
}

func (q *ApprovalQueue) Reject(id string) (models.ApprovalRequest, error) {
	return q.Decide(id, models.DecisionReject)
}

// List returns the requests of bucket b in insertion order.
func (q *ApprovalQueue) List(b ApprovalBucket) []models.ApprovalRequest {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := []models.ApprovalRequest{}
	for _, id := range q.order {
		if r := q.byID[id]; b.Contains(r.Status) {
			out = append(out, r)
		}
	}
	return out
}
