package store

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"global-terrorism-dashboard/internal/metrics"
)

// Listener observes every reduction in dispatch order.
type Listener func(action Action, prev, next State)

// Store owns the current State. It is created once by the application root and
// handed to every component that reads or changes events.
type Store struct {
	dispatchMu sync.Mutex

	stateMu sync.RWMutex
	state   State

	subsMu sync.Mutex
	subs   []*Subscription

	log     *logrus.Entry
	metrics *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(log *logrus.Entry) Option {
	return func(s *Store) { s.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates a store holding initial.
func New(initial State, opts ...Option) *Store {
	s := &Store{state: initial}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = logrus.NewEntry(l)
	}
	if err := initial.CheckInvariants(); err != nil {
		panic(fmt.Sprintf("store: invalid initial state: %v", err))
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Dispatch reduces action into the current state and notifies subscribers.
// It panics if the reduction breaks the id/entity invariant.
func (s *Store) Dispatch(action Action) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	prev := s.State()

	if finish, ok := action.(UpdateEventFinish); ok {
		if _, exists := prev.Entities[finish.Event.ID]; !exists {
			s.log.WithField("event_id", finish.Event.ID).
				Warn("updated event is not in the store, inserting it")
		}
	}

	next := Reduce(prev, action)
	if err := next.CheckInvariants(); err != nil {
		panic(fmt.Sprintf("store: %s broke the id invariant: %v", action.Type(), err))
	}

	s.stateMu.Lock()
	s.state = next
	s.stateMu.Unlock()

	s.observe(action, next)

	s.subsMu.Lock()
	subs := make([]*Subscription, len(s.subs))
	copy(subs, s.subs)
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.notify(action, prev, next)
	}
}

func (s *Store) observe(action Action, next State) {
	entry := s.log.WithField("action", action.Type())
	if herr, ok := action.(HttpError); ok {
		entry.WithField("errors", herr.Messages).Warn("api operation failed")
	} else {
		entry.Debug("action reduced")
	}

	if s.metrics == nil {
		return
	}
	s.metrics.ActionsDispatched.WithLabelValues(action.Type()).Inc()
	s.metrics.StoredEvents.Set(float64(len(next.IDs)))
	if _, ok := action.(HttpError); ok {
		s.metrics.HTTPErrors.Inc()
	}
}

// Subscribe registers fn for every subsequent dispatch.
func (s *Store) Subscribe(fn Listener) *Subscription {
	sub := &Subscription{store: s, fn: fn}
	s.subsMu.Lock()
	s.subs = append(s.subs, sub)
	s.subsMu.Unlock()
	return sub
}

func (s *Store) remove(sub *Subscription) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, candidate := range s.subs {
		if candidate == sub {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Subscription is a scoped registration returned by Subscribe.
type Subscription struct {
	store *Store

	mu     sync.Mutex
	fn     Listener
	closed bool
}

// Unsubscribe stops delivery. It is idempotent and once it returns the
// listener is never called again. It must not be called from the listener.
func (sub *Subscription) Unsubscribe() {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	sub.closed = true
	sub.fn = nil
	sub.mu.Unlock()

	sub.store.remove(sub)
}

func (sub *Subscription) notify(action Action, prev, next State) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	sub.fn(action, prev, next)
}
