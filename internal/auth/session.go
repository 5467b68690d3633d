// Package auth keeps the bearer token of the logged in user and logs the user
// out when the token expires.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"global-terrorism-dashboard/internal/model"
)

// ErrNotAuthenticated is returned when no valid session exists.
var ErrNotAuthenticated = errors.New("not authenticated")

// Authenticator exchanges credentials or a sign up form for a token.
type Authenticator interface {
	Login(ctx context.Context, data model.LoginData) (model.AuthResponse, error)
	Register(ctx context.Context, data model.RegistrationData) (model.AuthResponse, error)
}

// Session owns the current user and the logout timer.
type Session struct {
	auth    Authenticator
	storage UserStorage
	log     *logrus.Entry
	now     func() time.Time

	// afterFunc arms the logout timer. Replaced in tests.
	afterFunc func(d time.Duration, f func()) stopper

	mu       sync.Mutex
	user     *model.User
	timer    stopper
	timerGen uint64
	onLogout []func()
}

type stopper interface {
	Stop() bool
}

func NewSession(auth Authenticator, storage UserStorage, log *logrus.Entry) *Session {
	return &Session{
		auth:    auth,
		storage: storage,
		log:     log,
		now:     time.Now,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
}

// OnLogout registers fn to run after every logout, manual or timed.
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Login authenticates, persists the user and arms the logout timer.
func (s *Session) Login(ctx context.Context, data model.LoginData) (model.User, error) {
	resp, err := s.auth.Login(ctx, data)
	if err != nil {
		return model.User{}, err
	}
	return s.start(resp, "user logged in")
}

// Register creates an account and starts a session for it, like Login.
func (s *Session) Register(ctx context.Context, data model.RegistrationData) (model.User, error) {
	resp, err := s.auth.Register(ctx, data)
	if err != nil {
		return model.User{}, err
	}
	return s.start(resp, "user registered")
}

func (s *Session) start(resp model.AuthResponse, msg string) (model.User, error) {
	ttl := time.Duration(resp.ExpirationTimeInMilliseconds) * time.Millisecond
	user := model.User{Token: resp.Token, ExpirationDate: s.now().Add(ttl)}

	if err := s.storage.Save(user); err != nil {
		return model.User{}, fmt.Errorf("save user: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.armLocked(ttl)
	s.mu.Unlock()

	s.log.WithField("expires_at", user.ExpirationDate).Info(msg)
	return user, nil
}

// AutoLogin restores a stored user that has not expired yet.
func (s *Session) AutoLogin() (model.User, error) {
	user, err := s.storage.Load()
	if errors.Is(err, ErrNoUser) {
		return model.User{}, ErrNotAuthenticated
	}
	if err != nil {
		return model.User{}, err
	}

	now := s.now()
	if user.Expired(now) {
		if err := s.storage.Remove(); err != nil {
			s.log.WithError(err).Warn("remove expired user")
		}
		return model.User{}, ErrNotAuthenticated
	}

	s.mu.Lock()
	s.user = &user
	s.armLocked(user.ExpirationDate.Sub(now))
	s.mu.Unlock()

	s.log.WithField("expires_at", user.ExpirationDate).Info("user restored from storage")
	return user, nil
}

// Logout clears the stored user and cancels the timer.
func (s *Session) Logout() {
	s.mu.Lock()
	s.timerGen++
	s.logoutLocked()
	callbacks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Close cancels the logout timer without logging out.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Token returns the bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.Token
}

// User returns the current user.
func (s *Session) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// armLocked replaces any running timer. A timer that already fired but lost
// the race for mu sees a stale generation and does nothing.
func (s *Session) armLocked(d time.Duration) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerGen++
	gen := s.timerGen
	s.timer = s.afterFunc(d, func() { s.expire(gen) })
}

func (s *Session) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.timerGen {
		s.mu.Unlock()
		return
	}
	s.timerGen++
	s.logoutLocked()
	callbacks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	s.log.Info("token expired, user logged out")
	for _, fn := range callbacks {
		fn()
	}
}

func (s *Session) logoutLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.user = nil
	if err := s.storage.Remove(); err != nil {
		s.log.WithError(err).Warn("remove stored user")
	}
}
