package store

import (
	"fmt"
	"slices"

	"global-terrorism-dashboard/internal/model"
)

// Reduce folds action into state and returns the next snapshot.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case SetEvents:
		return state.withEvents(a.Events)

	case ResetEvents:
		return state.withEvents(nil)

	case FetchEvents:
		return state

	case AddEventStart:
		state.IsLoading = true
		state.ErrorMessages = []string{}
		return state

	case AddEvent:
		state = state.upsert(a.Event)
		state.IsLoading = false
		state.ErrorMessages = []string{}
		return state

	case UpdateEventStart:
		state.EventToUpdate = nil
		state.ErrorMessages = []string{}
		return state

	case UpdateEventFetch:
		event := a.Event
		state.EventToUpdate = &event
		return state

	case UpdateEvent:
		state.LastUpdatedEvent = nil
		state.IsLoading = true
		return state

	case UpdateEventFinish:
		event := a.Event
		state = state.upsert(event)
		state.EventToUpdate = nil
		state.LastUpdatedEvent = &event
		state.IsLoading = false
		state.ErrorMessages = []string{}
		return state

	case DeleteEventStart:
		state.LastDeletedEvent = nil
		state.IsLoading = true
		state.ErrorMessages = []string{}
		return state

	case DeleteEvent:
		event := a.Event
		state = state.remove(event.ID)
		state.LastDeletedEvent = &event
		state.IsLoading = false
		return state

	case DeleteEventsStart:
		state.IsLoading = true
		state.ErrorMessages = []string{}
		return state

	case DeleteEvents:
		state = state.remove(a.IDs...)
		state.IsLoading = false
		return state

	case HttpError:
		state.ErrorMessages = slices.Clone(a.Messages)
		if state.ErrorMessages == nil {
			state.ErrorMessages = []string{}
		}
		state.IsLoading = false
		return state

	case StartFillingOutForm:
		state.ErrorMessages = []string{}
		return state

	case ChangeEndDateOfEvents:
		state.EndDateOfEvents = a.Date
		return state

	case ChangeMaxRadiusOfEventsDetection:
		if a.Radius == nil {
			state.MaxRadiusOfEventsDetection = nil
		} else {
			radius := *a.Radius
			state.MaxRadiusOfEventsDetection = &radius
		}
		return state

	default:
		panic(fmt.Sprintf("store: unhandled action %T", action))
	}
}

// withEvents replaces the entity collection. Later duplicates win.
func (s State) withEvents(events []model.Event) State {
	ids := make([]int64, 0, len(events))
	entities := make(map[int64]model.Event, len(events))
	for _, e := range events {
		if _, ok := entities[e.ID]; !ok {
			ids = append(ids, e.ID)
		}
		entities[e.ID] = e
	}
	s.IDs = ids
	s.Entities = entities
	return s
}

func (s State) upsert(event model.Event) State {
	entities := make(map[int64]model.Event, len(s.Entities)+1)
	for id, e := range s.Entities {
		entities[id] = e
	}
	ids := s.IDs
	if _, ok := entities[event.ID]; !ok {
		ids = append(slices.Clip(ids), event.ID)
	}
	entities[event.ID] = event
	s.IDs = ids
	s.Entities = entities
	return s
}

func (s State) remove(ids ...int64) State {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.Entities[id]; ok {
			drop[id] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return s
	}
	entities := make(map[int64]model.Event, len(s.Entities))
	kept := make([]int64, 0, len(s.IDs))
	for _, id := range s.IDs {
		if _, gone := drop[id]; gone {
			continue
		}
		kept = append(kept, id)
		entities[id] = s.Entities[id]
	}
	s.IDs = kept
	s.Entities = entities
	return s
}
