package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal state of one optimistic appointment write.
type Outcome string

const (
	OutcomeReconciled Outcome = "reconciled"
	OutcomeUnverified Outcome = "unverified"
	OutcomeRolledBack Outcome = "rolled_back"
)

type JournalEntry struct {
	ID         uuid.UUID           `json:"id"`
	OrderID    string              `json:"order_id"`
	Outcome    Outcome             `json:"outcome"`
	Request    CalendarDateRequest `json:"request"`
	Error      string              `json:"error,omitempty"`
	RecordedAt time.Time           `json:"recorded_at"`
}
