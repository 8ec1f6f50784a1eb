package ledger

import (
	"strconv"
	"strings"

	"station-request-api-server/internal/models"
)

var forward = map[models.RequestStatus]models.RequestStatus{
	models.StatusPending:              models.StatusAwaitingConfirmation,
	models.StatusAwaitingConfirmation: models.StatusInProgress,
	models.StatusInProgress:           models.StatusCompleted,
}

// CanTransition reports whether a request may move from one status to
// another. Requests advance one step at a time; failed and breakdown are
// reachable from any non-terminal status.
func CanTransition(from, to models.RequestStatus) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() {
		return false
	}
	if to == models.StatusFailed || to == models.StatusBreakdown {
		return true
	}
	return forward[from] == to
}

// Summarize is the one-line items text of a new material request.
func Summarize(items []models.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.Label()+" ×"+strconv.Itoa(it.Quantity))
	}
	return strings.Join(parts, ", ")
}

func SummarizeContainers(items []models.ContainerCartItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.SubtypeName+" ×"+strconv.Itoa(it.Quantity))
	}
	return strings.Join(parts, ", ")
}
