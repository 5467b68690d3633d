// Package effects turns trigger actions into API calls and dispatches the
// outcome back into the store.
package effects

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"global-terrorism-dashboard/internal/client"
	"global-terrorism-dashboard/internal/model"
	"global-terrorism-dashboard/internal/store"
)

// EventAPI is the subset of the REST client the effects need.
type EventAPI interface {
	GetAll(ctx context.Context) ([]model.Event, error)
	Get(ctx context.Context, id int64) (model.Event, error)
	Add(ctx context.Context, draft model.EventDTO) (model.Event, error)
	Update(ctx context.Context, draft model.EventDTO) (model.Event, error)
	Delete(ctx context.Context, id int64) error
}

// Dispatcher receives result actions. *store.Store satisfies it.
type Dispatcher interface {
	Dispatch(action store.Action)
}

type Effects struct {
	api        EventAPI
	dispatcher Dispatcher
	log        *logrus.Entry
	timeout    time.Duration

	queue chan store.Action

	mu     sync.RWMutex
	closed bool

	loop     sync.WaitGroup
	inflight sync.WaitGroup
}

// New starts the effects loop. Every trigger gets its own call with the given
// timeout; completions race and the last one to dispatch wins.
func New(api EventAPI, dispatcher Dispatcher, log *logrus.Entry, bufferSize int, timeout time.Duration) *Effects {
	e := &Effects{
		api:        api,
		dispatcher: dispatcher,
		log:        log,
		timeout:    timeout,
		queue:      make(chan store.Action, bufferSize),
	}
	e.loop.Add(1)
	go e.startLoop()
	return e
}

// IsTrigger reports whether action starts an API call.
func IsTrigger(action store.Action) bool {
	switch action.(type) {
	case store.FetchEvents, store.AddEventStart, store.UpdateEventStart,
		store.UpdateEvent, store.DeleteEventStart, store.DeleteEventsStart:
		return true
	default:
		return false
	}
}

// Listen is a store.Listener that forwards triggers to the queue.
func (e *Effects) Listen(action store.Action, _, _ store.State) {
	if IsTrigger(action) {
		e.Enqueue(action)
	}
}

// Enqueue schedules action. Actions arriving after Shutdown are dropped.
func (e *Effects) Enqueue(action store.Action) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		e.log.WithField("action", action.Type()).Debug("effects stopped, action dropped")
		return
	}
	e.queue <- action
}

// Shutdown stops intake and waits for every in-flight call to dispatch.
func (e *Effects) Shutdown() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.queue)
	e.mu.Unlock()

	e.loop.Wait()
	e.inflight.Wait()
	e.log.Info("effects stopped")
}

func (e *Effects) startLoop() {
	defer e.loop.Done()
	for action := range e.queue {
		e.inflight.Add(1)
		go func(action store.Action) {
			defer e.inflight.Done()
			e.run(action)
		}(action)
	}
}

func (e *Effects) run(action store.Action) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	switch a := action.(type) {
	case store.FetchEvents:
		events, err := e.api.GetAll(ctx)
		if err != nil {
			e.fail(action, err)
			return
		}
		e.dispatcher.Dispatch(store.SetEvents{Events: events})

	case store.AddEventStart:
		event, err := e.api.Add(ctx, a.Draft)
		if err != nil {
			e.fail(action, err)
			return
		}
		e.dispatcher.Dispatch(store.AddEvent{Event: event})

	case store.UpdateEventStart:
		event, err := e.api.Get(ctx, a.ID)
		if err != nil {
			e.fail(action, err)
			return
		}
		e.dispatcher.Dispatch(store.UpdateEventFetch{Event: event})

	case store.UpdateEvent:
		event, err := e.api.Update(ctx, a.Draft)
		if err != nil {
			e.fail(action, err)
			return
		}
		e.dispatcher.Dispatch(store.UpdateEventFinish{Event: event})

	case store.DeleteEventStart:
		if err := e.api.Delete(ctx, a.Event.ID); err != nil {
			e.fail(action, err)
			return
		}
		e.dispatcher.Dispatch(store.DeleteEvent{Event: a.Event})

	case store.DeleteEventsStart:
		deleted := make([]int64, 0, len(a.Events))
		for _, event := range a.Events {
			if err := e.api.Delete(ctx, event.ID); err != nil {
				// Events already gone on the server leave the store too.
				if len(deleted) > 0 {
					e.dispatcher.Dispatch(store.DeleteEvents{IDs: deleted})
				}
				e.fail(action, err)
				return
			}
			deleted = append(deleted, event.ID)
		}
		e.dispatcher.Dispatch(store.DeleteEvents{IDs: deleted})
	}
}

func (e *Effects) fail(action store.Action, err error) {
	e.log.WithError(err).WithField("action", action.Type()).Warn("api call failed")
	e.dispatcher.Dispatch(store.HttpError{Messages: client.Messages(err)})
}
