package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"global-terrorism-dashboard/internal/chart"
	"global-terrorism-dashboard/internal/model"
	"global-terrorism-dashboard/internal/repository"
	"global-terrorism-dashboard/internal/store"
	"global-terrorism-dashboard/internal/validation"
)

var (
	// ErrEventNotFound is returned for ids the store does not hold.
	ErrEventNotFound = errors.New("event not found")
	// ErrJournalDisabled is returned when no ClickHouse journal is configured.
	ErrJournalDisabled = errors.New("action journal is disabled")
)

// EventStore is the part of *store.Store the service depends on.
type EventStore interface {
	State() store.State
	Dispatch(action store.Action)
}

// SessionManager is satisfied by *auth.Session.
type SessionManager interface {
	Login(ctx context.Context, data model.LoginData) (model.User, error)
	Register(ctx context.Context, data model.RegistrationData) (model.User, error)
	Logout()
	User() (model.User, bool)
}

// LogoutNotifier is satisfied by *auth.Session.
type LogoutNotifier interface {
	OnLogout(fn func())
}

// ResetStoreOnLogout empties the store's entities whenever the session ends.
func ResetStoreOnLogout(session LogoutNotifier, st EventStore) {
	session.OnLogout(func() { st.Dispatch(store.ResetEvents{}) })
}

// GeolocationProvider supplies the origin of the radius filter.
type GeolocationProvider interface {
	Location() model.Coordinates
}

// StaticLocation always reports the same coordinates.
type StaticLocation model.Coordinates

func (l StaticLocation) Location() model.Coordinates {
	return model.Coordinates(l)
}

type DashboardService interface {
	Events(origin *model.Coordinates) []model.Event
	State() model.StateView
	FetchEvents()
	AddEvent(draft model.EventDTO) error
	EditEvent(id int64)
	UpdateEvent(id int64, draft model.EventDTO) error
	DeleteEvent(id int64) error
	DeleteEvents(ids []int64) error
	StartFillingOutForm()
	ChangeFilters(req model.FiltersRequest) error

	FatalVictims() chart.PieData
	InjuredVictims() chart.PieData
	EventsOverYears() []chart.YearPoint
	Markers(origin *model.Coordinates) []chart.Marker

	Login(ctx context.Context, data model.LoginData) (model.SessionView, error)
	Register(ctx context.Context, data model.RegistrationData) (model.SessionView, error)
	Logout()
	Session() model.SessionView

	JournalSummary(ctx context.Context) (map[string]uint64, error)
}

// dashboardService validates user input, dispatches actions and serves the
// derived views of the store.
type dashboardService struct {
	store     EventStore
	selectors *store.Selectors
	validator *validation.EventValidator
	session   SessionManager
	location  GeolocationProvider
	journal   repository.ActionRepository
	log       *logrus.Entry
	now       func() time.Time
}

// NewDashboardService constructs a dashboardService. journal may be nil.
func NewDashboardService(
	st EventStore,
	validator *validation.EventValidator,
	session SessionManager,
	location GeolocationProvider,
	journal repository.ActionRepository,
	log *logrus.Entry,
) DashboardService {
	return &dashboardService{
		store:     st,
		selectors: store.NewSelectors(),
		validator: validator,
		session:   session,
		location:  location,
		journal:   journal,
		log:       log,
		now:       time.Now,
	}
}

func (s *dashboardService) origin(override *model.Coordinates) model.Coordinates {
	if override != nil {
		return *override
	}
	return s.location.Location()
}

// Events returns the stored events before the end date and within the
// detection radius of origin.
func (s *dashboardService) Events(origin *model.Coordinates) []model.Event {
	return s.selectors.FilteredEvents(s.store.State(), s.origin(origin))
}

func (s *dashboardService) State() model.StateView {
	state := s.store.State()
	return model.StateView{
		IsLoading:                  state.IsLoading,
		ErrorMessages:              state.ErrorMessages,
		EndDateOfEvents:            state.EndDateOfEvents,
		MaxRadiusOfEventsDetection: state.MaxRadiusOfEventsDetection,
		EventToUpdate:              state.EventToUpdate,
		LastUpdatedEvent:           state.LastUpdatedEvent,
		LastDeletedEvent:           state.LastDeletedEvent,
		NumberOfEvents:             len(state.IDs),
	}
}

func (s *dashboardService) FetchEvents() {
	s.store.Dispatch(store.FetchEvents{})
}

func (s *dashboardService) AddEvent(draft model.EventDTO) error {
	draft.ID = 0
	if err := s.validator.Validate(draft); err != nil {
		return err
	}
	s.store.Dispatch(store.AddEventStart{Draft: draft})
	return nil
}

func (s *dashboardService) EditEvent(id int64) {
	s.store.Dispatch(store.UpdateEventStart{ID: id})
}

func (s *dashboardService) UpdateEvent(id int64, draft model.EventDTO) error {
	draft.ID = id
	if err := s.validator.Validate(draft); err != nil {
		return err
	}
	s.store.Dispatch(store.UpdateEvent{Draft: draft})
	return nil
}

func (s *dashboardService) DeleteEvent(id int64) error {
	event, ok := s.store.State().Event(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}
	s.store.Dispatch(store.DeleteEventStart{Event: event})
	return nil
}

func (s *dashboardService) DeleteEvents(ids []int64) error {
	if len(ids) == 0 {
		return &validation.ValidationError{Messages: []string{"ids cannot be empty"}}
	}
	state := s.store.State()
	events := make([]model.Event, 0, len(ids))
	for _, id := range ids {
		event, ok := state.Event(id)
		if !ok {
			return fmt.Errorf("%w: %d", ErrEventNotFound, id)
		}
		events = append(events, event)
	}
	s.store.Dispatch(store.DeleteEventsStart{Events: events})
	return nil
}

func (s *dashboardService) StartFillingOutForm() {
	s.store.Dispatch(store.StartFillingOutForm{})
}

func (s *dashboardService) ChangeFilters(req model.FiltersRequest) error {
	if req.MaxRadiusOfEventsDetection != nil && *req.MaxRadiusOfEventsDetection < 0 {
		return &validation.ValidationError{Messages: []string{"maxRadiusOfEventsDetection must be at least 0"}}
	}
	if req.ClearMaxRadius && req.MaxRadiusOfEventsDetection != nil {
		return &validation.ValidationError{Messages: []string{"maxRadiusOfEventsDetection cannot be set and cleared at once"}}
	}

	if req.EndDateOfEvents != nil && !req.EndDateOfEvents.IsZero() {
		s.store.Dispatch(store.ChangeEndDateOfEvents{Date: req.EndDateOfEvents.Time})
	}
	s.log.WithFields(logrus.Fields{
		"end_date":     req.EndDateOfEvents,
		"max_radius":   req.MaxRadiusOfEventsDetection,
		"clear_radius": req.ClearMaxRadius,
	}).Debug("filters changed")

	switch {
	case req.ClearMaxRadius:
		s.store.Dispatch(store.ChangeMaxRadiusOfEventsDetection{Radius: nil})
	case req.MaxRadiusOfEventsDetection != nil:
		s.store.Dispatch(store.ChangeMaxRadiusOfEventsDetection{Radius: req.MaxRadiusOfEventsDetection})
	}
	return nil
}

func (s *dashboardService) FatalVictims() chart.PieData {
	return chart.FatalVictimsPie(s.Events(nil))
}

func (s *dashboardService) InjuredVictims() chart.PieData {
	return chart.InjuredVictimsPie(s.Events(nil))
}

func (s *dashboardService) EventsOverYears() []chart.YearPoint {
	return chart.EventsOverYears(s.Events(nil), s.now())
}

func (s *dashboardService) Markers(origin *model.Coordinates) []chart.Marker {
	return chart.Markers(s.Events(origin))
}

func (s *dashboardService) Login(ctx context.Context, data model.LoginData) (model.SessionView, error) {
	if data.UserNameOrEmail == "" || data.Password == "" {
		return model.SessionView{}, &validation.ValidationError{Messages: []string{"userNameOrEmail and password are required"}}
	}
	user, err := s.session.Login(ctx, data)
	if err != nil {
		return model.SessionView{}, err
	}
	return sessionView(user, true), nil
}

func (s *dashboardService) Register(ctx context.Context, data model.RegistrationData) (model.SessionView, error) {
	if err := s.validator.ValidateRegistration(data); err != nil {
		return model.SessionView{}, err
	}
	user, err := s.session.Register(ctx, data)
	if err != nil {
		return model.SessionView{}, err
	}
	return sessionView(user, true), nil
}

// Logout ends the session. The store is cleared by the session's logout hook.
func (s *dashboardService) Logout() {
	s.session.Logout()
}

func (s *dashboardService) Session() model.SessionView {
	user, ok := s.session.User()
	return sessionView(user, ok)
}

func (s *dashboardService) JournalSummary(ctx context.Context) (map[string]uint64, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.CountByAction(ctx)
}

func sessionView(user model.User, ok bool) model.SessionView {
	if !ok {
		return model.SessionView{}
	}
	exp := user.ExpirationDate
	return model.SessionView{Authenticated: true, ExpirationDate: &exp}
}
