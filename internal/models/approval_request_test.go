package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisionStatus(t *testing.T) {
	s, ok := DecisionApprove.Status()
	assert.True(t, ok)
	assert.Equal(t, ApprovalApproved, s)

	s, ok = DecisionReject.Status()
	assert.True(t, ok)
	assert.Equal(t, ApprovalRejected, s)

	_, ok = Decision("expire").Status()
	assert.False(t, ok)
}
