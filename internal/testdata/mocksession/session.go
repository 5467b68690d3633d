package mocksession

import (
	"context"

	"global-terrorism-dashboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type Session struct {
	mock.Mock
}

func (m *Session) Login(ctx context.Context, data model.LoginData) (model.User, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *Session) Register(ctx context.Context, data model.RegistrationData) (model.User, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *Session) Logout() {
	m.Called()
}

func (m *Session) User() (model.User, bool) {
	args := m.Called()
	return args.Get(0).(model.User), args.Bool(1)
}
