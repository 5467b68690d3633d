package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the dashboard.
type Metrics struct {
	ActionsDispatched *prometheus.CounterVec
	HTTPErrors        prometheus.Counter
	StoredEvents      prometheus.Gauge
	APIRequestSeconds *prometheus.HistogramVec
	JournalFlushed    *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ActionsDispatched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dashboard",
				Subsystem: "store",
				Name:      "actions_total",
				Help:      "Number of actions reduced by the event store",
			},
			[]string{"type"},
		),
		HTTPErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "dashboard",
				Subsystem: "store",
				Name:      "http_errors_total",
				Help:      "Number of failed API operations folded into the store",
			},
		),
		StoredEvents: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "dashboard",
				Subsystem: "store",
				Name:      "events",
				Help:      "Number of events currently held by the store",
			},
		),
		APIRequestSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "dashboard",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Duration of calls to the Global Terrorism API",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "status"},
		),
		JournalFlushed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dashboard",
				Subsystem: "journal",
				Name:      "entries_total",
				Help:      "Number of journal entries flushed, by result",
			},
			[]string{"result"},
		),
	}
}
