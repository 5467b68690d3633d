package mockservice

import (
	"context"

	"global-terrorism-dashboard/internal/chart"
	"global-terrorism-dashboard/internal/model"
	"global-terrorism-dashboard/internal/service"

	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

// Interface compliance check
var _ service.DashboardService = &Service{}

func (m *Service) Events(origin *model.Coordinates) []model.Event {
	args := m.Called(origin)
	return args.Get(0).([]model.Event)
}

func (m *Service) State() model.StateView {
	args := m.Called()
	return args.Get(0).(model.StateView)
}

func (m *Service) FetchEvents() {
	m.Called()
}

func (m *Service) AddEvent(draft model.EventDTO) error {
	args := m.Called(draft)
	return args.Error(0)
}

func (m *Service) EditEvent(id int64) {
	m.Called(id)
}

func (m *Service) UpdateEvent(id int64, draft model.EventDTO) error {
	args := m.Called(id, draft)
	return args.Error(0)
}

func (m *Service) DeleteEvent(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *Service) DeleteEvents(ids []int64) error {
	args := m.Called(ids)
	return args.Error(0)
}

func (m *Service) StartFillingOutForm() {
	m.Called()
}

func (m *Service) ChangeFilters(req model.FiltersRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *Service) FatalVictims() chart.PieData {
	args := m.Called()
	return args.Get(0).(chart.PieData)
}

func (m *Service) InjuredVictims() chart.PieData {
	args := m.Called()
	return args.Get(0).(chart.PieData)
}

func (m *Service) EventsOverYears() []chart.YearPoint {
	args := m.Called()
	return args.Get(0).([]chart.YearPoint)
}

func (m *Service) Markers(origin *model.Coordinates) []chart.Marker {
	args := m.Called(origin)
	return args.Get(0).([]chart.Marker)
}

func (m *Service) Login(ctx context.Context, data model.LoginData) (model.SessionView, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(model.SessionView), args.Error(1)
}

func (m *Service) Register(ctx context.Context, data model.RegistrationData) (model.SessionView, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(model.SessionView), args.Error(1)
}

func (m *Service) Logout() {
	m.Called()
}

func (m *Service) Session() model.SessionView {
	args := m.Called()
	return args.Get(0).(model.SessionView)
}

func (m *Service) JournalSummary(ctx context.Context) (map[string]uint64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]uint64)
	return counts, args.Error(1)
}
