package store

import (
	"fmt"
	"time"

	"global-terrorism-dashboard/internal/model"
)

// State is an immutable snapshot of the event store. Reduce never modifies a
// State it receives; callers must treat slices, maps and pointers reachable
// from a State as read only.
type State struct {
	IDs      []int64
	Entities map[int64]model.Event

	EventToUpdate    *model.Event
	LastUpdatedEvent *model.Event
	LastDeletedEvent *model.Event

	IsLoading bool

	EndDateOfEvents            time.Time
	MaxRadiusOfEventsDetection *float64

	ErrorMessages []string
}

// InitialState returns an empty store with the end date filter set to now.
func InitialState(now time.Time) State {
	return State{
		IDs:             []int64{},
		Entities:        map[int64]model.Event{},
		EndDateOfEvents: now,
		ErrorMessages:   []string{},
	}
}

// Event looks up a stored event by id.
func (s State) Event(id int64) (model.Event, bool) {
	e, ok := s.Entities[id]
	return e, ok
}

// CheckInvariants reports a mismatch between IDs and the keys of Entities.
func (s State) CheckInvariants() error {
	if len(s.IDs) != len(s.Entities) {
		return fmt.Errorf("ids has %d entries, entities has %d", len(s.IDs), len(s.Entities))
	}
	seen := make(map[int64]struct{}, len(s.IDs))
	for _, id := range s.IDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("id %d listed twice", id)
		}
		seen[id] = struct{}{}
		if _, ok := s.Entities[id]; !ok {
			return fmt.Errorf("id %d has no entity", id)
		}
	}
	return nil
}
