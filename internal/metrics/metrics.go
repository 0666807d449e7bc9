// README: Prometheus collectors for itinerary generation, fallbacks and expense imports.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "voyage"

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	generations      *prometheus.CounterVec
	fallbacks        *prometheus.CounterVec
	generateDuration *prometheus.HistogramVec
	expenseImported  prometheus.Counter
	expenseSkipped   prometheus.Counter
	llmTokens        *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		generations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "itinerary",
				Name:      "generations_total",
				Help:      "Itineraries returned, by source (llm, cache, mock).",
			},
			[]string{"source"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "itinerary",
				Name:      "fallbacks_total",
				Help:      "Generations that fell back to the mock, by failure kind.",
			},
			[]string{"kind"},
		),
		generateDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "itinerary",
				Name:      "generate_duration_seconds",
				Help:      "End-to-end generation latency.",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 90},
			},
			[]string{"source"},
		),
		expenseImported: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "expense",
			Name:      "imported_total",
			Help:      "Expense records created from itinerary activities.",
		}),
		expenseSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "expense",
			Name:      "skipped_total",
			Help:      "Activities not imported (duplicate or no cost).",
		}),
		llmTokens: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "tokens_total",
				Help:      "Tokens reported by the model provider, by provider and kind (prompt, completion).",
			},
			[]string{"provider", "kind"},
		),
	}
}

func (m *Metrics) ObserveGeneration(source string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(source).Inc()
	m.generateDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveFallback(kind string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveImport(imported, skipped int) {
	if m == nil {
		return
	}
	m.expenseImported.Add(float64(imported))
	m.expenseSkipped.Add(float64(skipped))
}

// ObserveTokens records provider-reported usage. Zero counts are skipped.
func (m *Metrics) ObserveTokens(provider string, prompt, completion int) {
	if m == nil {
		return
	}
	if prompt > 0 {
		m.llmTokens.WithLabelValues(provider, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		m.llmTokens.WithLabelValues(provider, "completion").Add(float64(completion))
	}
}
