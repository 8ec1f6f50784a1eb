// server/internal/models/workflow.go
package models

import "fmt"

// Workflow is a named scope (e.g. a production line) that filters which
// requests and staging data a station operator sees. Reference data.
type Workflow struct {
	ID                 string             `bson:"id" json:"id"`
	Name               string             `bson:"name" json:"name"`
	AssignmentStrategy AssignmentStrategy `bson:"assignmentStrategy" json:"assignmentStrategy"`
	ConfirmationMode   ConfirmationMode   `bson:"confirmationMode" json:"confirmationMode"`
}

func (w Workflow) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("workflow: %w", ErrInvalidID)
	}
	if !w.AssignmentStrategy.Valid() {
		return fmt.Errorf("workflow %s: assignment strategy %q: %w", w.ID, w.AssignmentStrategy, ErrInvalidEnum)
	}
	if !w.ConfirmationMode.Valid() {
		return fmt.Errorf("workflow %s: confirmation mode %q: %w", w.ID, w.ConfirmationMode, ErrInvalidEnum)
	}
	return nil
}
