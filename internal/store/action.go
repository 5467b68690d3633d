package store

import (
	"time"

	"global-terrorism-dashboard/internal/model"
)

// Action is a closed set of state transitions. Only this package can add
// members, and Reduce handles every one of them.
type Action interface {
	// Type is the human readable action name used in logs and the journal.
	Type() string
	isAction()
}

type SetEvents struct {
	Events []model.Event
}

type ResetEvents struct{}

// FetchEvents asks the effects layer to load all events.
type FetchEvents struct{}

type AddEventStart struct {
	Draft model.EventDTO
}

type AddEvent struct {
	Event model.Event
}

type UpdateEventStart struct {
	ID int64
}

type UpdateEventFetch struct {
	Event model.Event
}

type UpdateEvent struct {
	Draft model.EventDTO
}

type UpdateEventFinish struct {
	Event model.Event
}

type DeleteEventStart struct {
	Event model.Event
}

type DeleteEvent struct {
	Event model.Event
}

type DeleteEventsStart struct {
	Events []model.Event
}

type DeleteEvents struct {
	IDs []int64
}

type HttpError struct {
	Messages []string
}

type StartFillingOutForm struct{}

type ChangeEndDateOfEvents struct {
	Date time.Time
}

// ChangeMaxRadiusOfEventsDetection sets the radius in meters. A nil Radius
// disables the radius filter.
type ChangeMaxRadiusOfEventsDetection struct {
	Radius *float64
}

func (SetEvents) Type() string                        { return "[Event] Set Events" }
func (ResetEvents) Type() string                      { return "[Event] Reset Events" }
func (FetchEvents) Type() string                      { return "[Event] Fetch Events" }
func (AddEventStart) Type() string                    { return "[Event] Add Event Start" }
func (AddEvent) Type() string                         { return "[Event] Add Event" }
func (UpdateEventStart) Type() string                 { return "[Event] Update Event Start" }
func (UpdateEventFetch) Type() string                 { return "[Event] Update Event Fetch" }
func (UpdateEvent) Type() string                      { return "[Event] Update Event" }
func (UpdateEventFinish) Type() string                { return "[Event] Update Event Finish" }
func (DeleteEventStart) Type() string                 { return "[Event] Delete Event Start" }
func (DeleteEvent) Type() string                      { return "[Event] Delete Event" }
func (DeleteEventsStart) Type() string                { return "[Event] Delete Events Start" }
func (DeleteEvents) Type() string                     { return "[Event] Delete Events" }
func (HttpError) Type() string                        { return "[Event] Http Error" }
func (StartFillingOutForm) Type() string              { return "[Event] User Started Filling Out Form" }
func (ChangeEndDateOfEvents) Type() string            { return "[Event] Change End Date Of Events" }
func (ChangeMaxRadiusOfEventsDetection) Type() string { return "[Event] Change Max Radius Of Events Detection" }

func (SetEvents) isAction()                        {}
func (ResetEvents) isAction()                      {}
func (FetchEvents) isAction()                      {}
func (AddEventStart) isAction()                    {}
func (AddEvent) isAction()                         {}
func (UpdateEventStart) isAction()                 {}
func (UpdateEventFetch) isAction()                 {}
func (UpdateEvent) isAction()                      {}
func (UpdateEventFinish) isAction()                {}
func (DeleteEventStart) isAction()                 {}
func (DeleteEvent) isAction()                      {}
func (DeleteEventsStart) isAction()                {}
func (DeleteEvents) isAction()                     {}
func (HttpError) isAction()                        {}
func (StartFillingOutForm) isAction()              {}
func (ChangeEndDateOfEvents) isAction()            {}
func (ChangeMaxRadiusOfEventsDetection) isAction() {}
