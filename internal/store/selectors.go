package store

import (
	"reflect"
	"sync"
	"time"

	"global-terrorism-dashboard/internal/model"
)

// SelectAllEvents lists stored events in id order.
func SelectAllEvents(state State) []model.Event {
	events := make([]model.Event, 0, len(state.IDs))
	for _, id := range state.IDs {
		events = append(events, state.Entities[id])
	}
	return events
}

// SelectAllEventsBeforeDate keeps events dated strictly before cutoff.
func SelectAllEventsBeforeDate(events []model.Event, cutoff time.Time) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.Date.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// SelectAllEventsInRadius keeps events whose city lies within maxRadius meters
// of origin, boundary included. A nil maxRadius returns events unchanged.
func SelectAllEventsInRadius(events []model.Event, maxRadius *float64, origin model.Coordinates) []model.Event {
	if maxRadius == nil {
		return events
	}
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if Distance(origin, e.City.Coordinates()) <= *maxRadius {
			out = append(out, e)
		}
	}
	return out
}

// Selectors memoizes the filtered views of a State. The radius filter always
// runs on the date filtered set.
type Selectors struct {
	mu sync.Mutex

	entities map[int64]model.Event
	cutoff   time.Time
	radius   *float64
	origin   model.Coordinates

	beforeDate []model.Event
	inRadius   []model.Event
	valid      bool
}

// NewSelectors returns an empty memoizer.
func NewSelectors() *Selectors {
	return &Selectors{}
}

// EventsBeforeDate is SelectAllEventsBeforeDate over the state's own cutoff.
func (s *Selectors) EventsBeforeDate(state State) []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshBeforeDate(state)
	return s.beforeDate
}

// FilteredEvents applies the date filter and then the radius filter around origin.
func (s *Selectors) FilteredEvents(state State, origin model.Coordinates) []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	dateChanged := s.refreshBeforeDate(state)
	if dateChanged || !sameRadius(s.radius, state.MaxRadiusOfEventsDetection) || s.origin != origin || s.inRadius == nil {
		s.radius = state.MaxRadiusOfEventsDetection
		s.origin = origin
		s.inRadius = SelectAllEventsInRadius(s.beforeDate, s.radius, origin)
	}
	return s.inRadius
}

func (s *Selectors) refreshBeforeDate(state State) bool {
	if s.valid && sameEntities(s.entities, state.Entities) && s.cutoff.Equal(state.EndDateOfEvents) {
		return false
	}
	s.entities = state.Entities
	s.cutoff = state.EndDateOfEvents
	s.beforeDate = SelectAllEventsBeforeDate(SelectAllEvents(state), state.EndDateOfEvents)
	// The radius view is derived from beforeDate and is stale from here on.
	s.inRadius = nil
	s.valid = true
	return true
}

func sameEntities(a, b map[int64]model.Event) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func sameRadius(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
