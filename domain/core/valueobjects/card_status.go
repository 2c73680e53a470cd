package valueobjects

import (
	"fmt"
	"strings"

	pkgerrors "forzeit/pkg/errors"
)

// CardStatus represents the lifecycle state of a card
type CardStatus string

const (
	CardStatusTodo       CardStatus = "TODO"
	CardStatusInProgress CardStatus = "IN_PROGRESS"
	CardStatusDone       CardStatus = "DONE"
)

// AllCardStatuses returns every recognised status in declaration order
func AllCardStatuses() []CardStatus {
	return []CardStatus{CardStatusTodo, CardStatusInProgress, CardStatusDone}
}

// ParseCardStatus converts a raw string into a CardStatus.
// Matching is exact; "done" is not accepted for "DONE".
func ParseCardStatus(raw string) (CardStatus, error) {
	status := CardStatus(raw)
	if !status.IsValid() {
		names := make([]string, 0, 3)
		for _, s := range AllCardStatuses() {
			names = append(names, string(s))
		}
		return "", pkgerrors.NewValidationError(
			fmt.Sprintf("Invalid status. Must be one of: %s", strings.Join(names, ", ")),
		).WithDetails(map[string]interface{}{"status": raw})
	}
	return status, nil
}

// IsValid checks if the status is one of the known values
func (s CardStatus) IsValid() bool {
	switch s {
	case CardStatusTodo, CardStatusInProgress, CardStatusDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s CardStatus) String() string {
	return string(s)
}
