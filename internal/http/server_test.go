package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"global-terrorism-dashboard/internal/config"
	"global-terrorism-dashboard/internal/controller"
	"global-terrorism-dashboard/internal/effects"
	"global-terrorism-dashboard/internal/logger"
	"global-terrorism-dashboard/internal/metrics"
	"global-terrorism-dashboard/internal/model"
	"global-terrorism-dashboard/internal/service"
	"global-terrorism-dashboard/internal/store"
	"global-terrorism-dashboard/internal/testdata/mockapi"
	"global-terrorism-dashboard/internal/testdata/mocksession"
	"global-terrorism-dashboard/internal/validation"
)

type ServerTestSuite struct {
	suite.Suite
	api     *mockapi.EventAPI
	store   *store.Store
	effects *effects.Effects
	server  *Server
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	log := logger.Discard()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	s.api = new(mockapi.EventAPI)
	s.store = store.New(store.InitialState(time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)), store.WithMetrics(m))
	s.effects = effects.New(s.api, s.store, log.Component("effects"), 8, time.Second)
	s.store.Subscribe(s.effects.Listen)

	dashboard := service.NewDashboardService(s.store, validation.NewEventValidator(), &mocksession.Session{},
		service.StaticLocation(model.Coordinates{Latitude: 50, Longitude: 18}), nil, log.Component("service"))
	s.server = NewServer(&config.Config{}, controller.NewDashboardController(dashboard), reg, log.Component("http"))
}

func (s *ServerTestSuite) TearDownTest() {
	s.effects.Shutdown()
	s.api.AssertExpectations(s.T())
}

func (s *ServerTestSuite) do(method, path string, body any) *nethttp.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.server.App().Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func (s *ServerTestSuite) TestHealth() {
	resp := s.do(nethttp.MethodGet, "/health", nil)
	s.Equal(nethttp.StatusOK, resp.StatusCode)
}

func (s *ServerTestSuite) TestFetchThenListAndChart() {
	events := []model.Event{
		{ID: 6, Date: model.NewDate(1999, time.July, 12), City: model.City{Latitude: 20, Longitude: 10},
			Victim: model.Victim{TotalNumberOfFatalities: 11, NumberOfPerpetratorsFatalities: 3}},
		{ID: 12, Date: model.NewDate(1999, time.March, 3), City: model.City{Latitude: 10, Longitude: 20},
			Victim: model.Victim{TotalNumberOfFatalities: 10, NumberOfPerpetratorsFatalities: 2}},
	}
	s.api.On("GetAll", mock.Anything).Return(events, nil).Once()

	resp := s.do(nethttp.MethodPost, "/api/events/fetch", nil)
	s.Require().Equal(nethttp.StatusAccepted, resp.StatusCode)
	s.effects.Shutdown()

	resp = s.do(nethttp.MethodGet, "/api/events", nil)
	s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
	var listed []model.Event
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&listed))
	s.Len(listed, 2)

	resp = s.do(nethttp.MethodPut, "/api/filters", map[string]any{"maxRadiusOfEventsDetection": 3500000})
	s.Require().Equal(nethttp.StatusOK, resp.StatusCode)

	resp = s.do(nethttp.MethodGet, "/api/charts/fatal-victims", nil)
	s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
	var pie struct {
		Data []int64 `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pie))
	s.Equal([]int64{3, 8}, pie.Data)
}

func (s *ServerTestSuite) TestMetricsEndpoint() {
	s.store.Dispatch(store.StartFillingOutForm{})

	resp := s.do(nethttp.MethodGet, "/metrics", nil)
	s.Require().Equal(nethttp.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.True(strings.Contains(string(body), "dashboard_store_actions_total"), "metrics body: %s", body)
}

func (s *ServerTestSuite) TestStateReflectsRejectedDraft() {
	resp := s.do(nethttp.MethodPost, "/api/events", model.EventDTO{})
	s.Equal(nethttp.StatusBadRequest, resp.StatusCode)

	resp = s.do(nethttp.MethodGet, "/api/state", nil)
	var view model.StateView
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&view))
	s.False(view.IsLoading)
}
