// Package ledger groups and filters the request and approval ledgers of a
// station and guards approval decisions.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"station-request-api-server/internal/models"
)

// Bucket is a tab of the request history view.
type Bucket string

const (
	BucketAll        Bucket = "all"
	BucketInProgress Bucket = "in_progress"
	BucketPending    Bucket = "pending"
	BucketCompleted  Bucket = "completed"
	BucketFailed     Bucket = "failed"
	BucketScheduled  Bucket = "scheduled" // no backing status yet, always empty
)

var Buckets = []Bucket{BucketAll, BucketInProgress, BucketPending, BucketCompleted, BucketFailed, BucketScheduled}

var bucketStatuses = map[Bucket][]models.RequestStatus{
	BucketInProgress: {models.StatusInProgress, models.StatusAwaitingConfirmation},
	BucketPending:    {models.StatusPending},
	BucketCompleted:  {models.StatusCompleted},
	BucketFailed:     {models.StatusFailed},
	BucketScheduled:  {},
}

// ParseBucket maps a query value to a Bucket. Empty means all.
func ParseBucket(s string) (Bucket, error) {
	if s == "" {
		return BucketAll, nil
	}
	b := Bucket(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Buckets {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("bucket %q: %w", s, models.ErrInvalidEnum)
}

type options struct {
	breakdownFailed bool
}

type Option func(*options)

// IncludeBreakdown counts breakdown requests in the failed bucket, as the
// approvals-adjacent views do.
func IncludeBreakdown() Option {
	return func(o *options) { o.breakdownFailed = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Contains reports whether a request with status s belongs to b.
func (b Bucket) Contains(s models.RequestStatus, opts ...Option) bool {
	if b == BucketAll {
		return true
	}
	if b == BucketFailed && s == models.StatusBreakdown {
		return buildOptions(opts).breakdownFailed
	}
	for _, st := range bucketStatuses[b] {
		if st == s {
			return true
		}
	}
	return false
}

func FilterByWorkflow(reqs []models.Request, workflowID string) []models.Request {
	out := []models.Request{}
	for _, r := range reqs {
		if r.WorkflowID == workflowID {
			out = append(out, r)
		}
	}
	return out
}

func FilterByBucket(reqs []models.Request, b Bucket, opts ...Option) []models.Request {
	out := []models.Request{}
	for _, r := range reqs {
		if b.Contains(r.Status, opts...) {
			out = append(out, r)
		}
	}
	return out
}

// Search matches q case-insensitively against id, items and workflow name.
// A blank query matches everything.
func Search(reqs []models.Request, q string) []models.Request {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []models.Request{}
	for _, r := range reqs {
		if q == "" ||
			strings.Contains(strings.ToLower(r.ID), q) ||
			strings.Contains(strings.ToLower(r.Items), q) ||
			strings.Contains(strings.ToLower(r.Workflow), q) {
			out = append(out, r)
		}
	}
	return out
}

// Today keeps requests created on now's calendar day, in now's location.
func Today(reqs []models.Request, now time.Time) []models.Request {
	y, m, d := now.Date()
	out := []models.Request{}
	for _, r := range reqs {
		ry, rm, rd := r.CreatedAt.In(now.Location()).Date()
		if ry == y && rm == m && rd == d {
			out = append(out, r)
		}
	}
	return out
}

type Counts struct {
	All        int `json:"all"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Scheduled  int `json:"scheduled"`
}

func Count(reqs []models.Request, opts ...Option) Counts {
	c := Counts{All: len(reqs)}
	for _, r := range reqs {
		switch {
		case BucketInProgress.Contains(r.Status, opts...):
			c.InProgress++
		case BucketPending.Contains(r.Status, opts...):
			c.Pending++
		case BucketCompleted.Contains(r.Status, opts...):
			c.Completed++
		case BucketFailed.Contains(r.Status, opts...):
			c.Failed++
		}
	}
	return c
}
