// server/internal/models/approval_request.go
package models

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	return s == ApprovalPending || s == ApprovalApproved || s == ApprovalRejected
}

// Decision is an approver's verdict on a pending approval request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Status is the approval status a decision moves a request to.
func (d Decision) Status() (ApprovalStatus, bool) {
	switch d {
	case DecisionApprove:
		return ApprovalApproved, true
	case DecisionReject:
		return ApprovalRejected, true
	}
	return "", false
}

type InventoryStatus string

const (
	InventoryAvailable     InventoryStatus = "available"
	InventoryOutOfStock    InventoryStatus = "out_of_stock"
	InventoryFinishingSoon InventoryStatus = "finishing_soon"
)

func (s InventoryStatus) Valid() bool {
	switch s {
	case InventoryAvailable, InventoryOutOfStock, InventoryFinishingSoon:
		return true
	}
	return false
}

type ApprovalRequest struct {
	ID              string          `bson:"id" json:"id"`
	FromStation     string          `bson:"fromStation" json:"fromStation"`
	Items           string          `bson:"items" json:"items"`
	Quantity        int             `bson:"quantity" json:"quantity"`
	RequestType     string          `bson:"requestType" json:"requestType"`
	RequestTime     time.Time       `bson:"requestTime" json:"requestTime"`
	InventoryCount  int             `bson:"inventoryCount" json:"inventoryCount"`
	InventoryStatus InventoryStatus `bson:"inventoryStatus" json:"inventoryStatus"`
	Workflow        string          `bson:"workflow" json:"workflow"`
	Status          ApprovalStatus  `bson:"status" json:"status"`
}
