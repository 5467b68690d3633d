package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"global-terrorism-dashboard/internal/metrics"
	"global-terrorism-dashboard/internal/model"
	"global-terrorism-dashboard/internal/repository"
	"global-terrorism-dashboard/internal/store"
)

type JournalWorker interface {
	Enqueue(entry model.JournalEntry)
	Listen(action store.Action, prev, next store.State)
	Shutdown()
}

type batchJournalWorker struct {
	repo          repository.ActionRepository
	queue         chan model.JournalEntry
	batchSize     int
	flushInterval time.Duration
	log           *logrus.Entry
	metrics       *metrics.Metrics
	now           func() time.Time

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewBatchJournalWorker starts a worker that writes entries to repo when the
// batch is full or the interval elapses. m may be nil.
func NewBatchJournalWorker(repo repository.ActionRepository, log *logrus.Entry, m *metrics.Metrics, bufferSize, batchSize int, interval time.Duration) *batchJournalWorker {
	worker := &batchJournalWorker{
		repo:          repo,
		queue:         make(chan model.JournalEntry, bufferSize),
		batchSize:     batchSize,
		flushInterval: interval,
		log:           log,
		metrics:       m,
		now:           time.Now,
	}
	worker.wg.Add(1)
	go worker.startLoop()
	return worker
}

// Listen journals every dispatched action. It is meant to be passed to
// store.Subscribe.
func (w *batchJournalWorker) Listen(action store.Action, _, _ store.State) {
	w.Enqueue(NewJournalEntry(action, w.now()))
}

// Enqueue blocks when the buffer is full. Entries after Shutdown are dropped.
func (w *batchJournalWorker) Enqueue(entry model.JournalEntry) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	w.queue <- entry
}

func (w *batchJournalWorker) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	w.log.Info("journal worker shutting down, draining queue")
	w.wg.Wait()
	w.log.Info("journal worker stopped")
}

func (w *batchJournalWorker) startLoop() {
	defer w.wg.Done()

	var batch []model.JournalEntry
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-w.queue:
			if !ok {
				if len(batch) > 0 {
					w.bulkInsert(batch)
				}
				return
			}

			batch = append(batch, entry)
			if len(batch) >= w.batchSize {
				w.log.WithField("batch_size", len(batch)).Debug("batch size reached")
				w.bulkInsert(batch)
				batch = nil
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.bulkInsert(batch)
				batch = nil
			}
		}
	}
}

func (w *batchJournalWorker) bulkInsert(entries []model.JournalEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := "ok"
	if err := w.repo.CreateBatch(ctx, entries); err != nil {
		result = "error"
		w.log.WithError(err).WithField("entries", len(entries)).Error("journal flush failed")
	} else {
		w.log.WithField("entries", len(entries)).Debug("journal flushed")
	}

	if w.metrics != nil {
		w.metrics.JournalFlushed.WithLabelValues(result).Add(float64(len(entries)))
	}
}

// NewJournalEntry describes action for the journal.
func NewJournalEntry(action store.Action, at time.Time) model.JournalEntry {
	entry := model.JournalEntry{
		ID:           uuid.New(),
		Action:       action.Type(),
		DispatchedAt: at,
	}

	switch a := action.(type) {
	case store.SetEvents:
		entry.EventIDs = eventIDs(a.Events)
	case store.AddEvent:
		entry.EventIDs = []int64{a.Event.ID}
	case store.UpdateEventStart:
		entry.EventIDs = []int64{a.ID}
	case store.UpdateEventFetch:
		entry.EventIDs = []int64{a.Event.ID}
	case store.UpdateEvent:
		entry.EventIDs = []int64{a.Draft.ID}
	case store.UpdateEventFinish:
		entry.EventIDs = []int64{a.Event.ID}
	case store.DeleteEventStart:
		entry.EventIDs = []int64{a.Event.ID}
	case store.DeleteEvent:
		entry.EventIDs = []int64{a.Event.ID}
	case store.DeleteEventsStart:
		entry.EventIDs = eventIDs(a.Events)
	case store.DeleteEvents:
		entry.EventIDs = append([]int64(nil), a.IDs...)
	case store.HttpError:
		entry.Errors = append([]string(nil), a.Messages...)
	}

	return entry
}

func eventIDs(events []model.Event) []int64 {
	ids := make([]int64, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}
