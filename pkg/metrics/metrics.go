// Package metrics holds the Prometheus collectors exported by the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBuckets are latency buckets in seconds. Profile computation is CPU
// bound and fast, so the low end is denser than usual.
var DefaultBuckets = []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25} //nolint: gochecknoglobals

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Calculator groups the collectors updated by the calculator service.
type Calculator struct {
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	batchSize    prometheus.Histogram
}

// NewCalculator creates the calculator collectors and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func NewCalculator(reg prometheus.Registerer) (*Calculator, error) {
	c := &Calculator{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "numerology",
			Name:      "calculations_total",
			Help:      "Number of calculations by operation, mapping system and outcome.",
		}, []string{"operation", "system", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "numerology",
			Name:      "calculation_duration_seconds",
			Help:      "Time spent computing profiles and single metrics.",
			Buckets:   DefaultBuckets,
		}, []string{"operation"}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "numerology",
			Name:      "batch_size",
			Help:      "Number of profiles per batch request.",
			Buckets:   prometheus.LinearBuckets(5, 5, 10),
		}),
	}
	if reg == nil {
		return c, nil
	}

	for _, col := range []prometheus.Collector{c.calculations, c.duration, c.batchSize} {
		if err := reg.Register(col); err != nil {
			return nil, err //nolint: wrapcheck
		}
	}

	return c, nil
}

// Observe records one finished calculation.
func (c *Calculator) Observe(operation, system, outcome string, took time.Duration) {
	if c == nil {
		return
	}
	c.calculations.WithLabelValues(operation, system, outcome).Inc()
	c.duration.WithLabelValues(operation).Observe(took.Seconds())
}

// ObserveBatch records the size of a batch request.
func (c *Calculator) ObserveBatch(size int) {
	if c == nil {
		return
	}
	c.batchSize.Observe(float64(size))
}
