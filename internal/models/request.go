// server/internal/models/request.go
package models

import "time"

type RequestType string

const (
	RequestMaterial      RequestType = "material"
	RequestContainer     RequestType = "container"
	RequestReturnTrolley RequestType = "return_trolley"
)

func (t RequestType) Valid() bool {
	switch t {
	case RequestMaterial, RequestContainer, RequestReturnTrolley:
		return true
	}
	return false
}

type RequestStatus string

const (
	StatusPending              RequestStatus = "pending"
	StatusAwaitingConfirmation RequestStatus = "awaiting_confirmation"
	StatusInProgress           RequestStatus = "in_progress"
	StatusCompleted            RequestStatus = "completed"
	StatusFailed               RequestStatus = "failed"
	StatusBreakdown            RequestStatus = "breakdown"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAwaitingConfirmation, StatusInProgress,
		StatusCompleted, StatusFailed, StatusBreakdown:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusBreakdown
}

// Request is an entry of a station's request/trip ledger.
type Request struct {
	ID         string        `bson:"id" json:"id"`
	Type       RequestType   `bson:"type" json:"type"`
	Status     RequestStatus `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	Items      string        `bson:"items" json:"items"`
	Workflow   string        `bson:"workflow" json:"workflow"`
	WorkflowID string        `bson:"workflowId" json:"workflowId"`
}
