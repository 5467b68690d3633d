package model

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is one dispatched action as persisted in the action journal.
type JournalEntry struct {
	ID           uuid.UUID
	Action       string
	EventIDs     []int64
	Errors       []string
	DispatchedAt time.Time
}
