package mockapi

import (
	"context"

	"global-terrorism-dashboard/internal/effects"
	"global-terrorism-dashboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type EventAPI struct {
	mock.Mock
}

// Interface compliance check
var _ effects.EventAPI = &EventAPI{}

func (m *EventAPI) GetAll(ctx context.Context) ([]model.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]model.Event)
	return events, args.Error(1)
}

func (m *EventAPI) Get(ctx context.Context, id int64) (model.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *EventAPI) Add(ctx context.Context, draft model.EventDTO) (model.Event, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *EventAPI) Update(ctx context.Context, draft model.EventDTO) (model.Event, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *EventAPI) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
