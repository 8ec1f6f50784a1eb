// server/internal/models/common.go
package models

import "errors"

// Role of the user logged in on a station tablet.
type Role string

const (
	RoleRequester  Role = "requester"
	RoleDispatcher Role = "dispatcher"
	RoleApprover   Role = "approver"
)

func (r Role) Valid() bool {
	switch r {
	case RoleRequester, RoleDispatcher, RoleApprover:
		return true
	}
	return false
}

type AssignmentStrategy string

const (
	AssignmentRequestBased AssignmentStrategy = "request-based"
	AssignmentOnRoute      AssignmentStrategy = "on-route"
)

func (a AssignmentStrategy) Valid() bool {
	return a == AssignmentRequestBased || a == AssignmentOnRoute
}

type ConfirmationMode string

const (
	ConfirmationAuto   ConfirmationMode = "auto"
	ConfirmationManual ConfirmationMode = "manual"
)

func (m ConfirmationMode) Valid() bool {
	return m == ConfirmationAuto || m == ConfirmationManual
}

// Validation errors returned by the constructors in this package.
var (
	ErrInvalidID       = errors.New("id is required")
	ErrInvalidQuantity = errors.New("quantity out of range")
	ErrInvalidMaxQty   = errors.New("max quantity must be at least 1")
	ErrInvalidEnum     = errors.New("invalid enum value")
)
