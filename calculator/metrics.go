package calculator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// scanTotal counts scans by outcome
	scanTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waveguide_scan_total",
		Help: "Total residual grid scans by result",
	}, []string{"result"}) // "ok", "invalid" or "canceled"

	// scanDuration tracks wall time of a whole grid scan
	scanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "waveguide_scan_duration_seconds",
		Help:    "Grid scan duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	})

	// taskTotal counts characteristic-equation tasks by regime
	taskTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waveguide_chareq_tasks_total",
		Help: "Total characteristic-equation evaluations by regime",
	}, []string{"regime"})

	// bracketCount tracks sign changes found per scan
	bracketCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "waveguide_scan_brackets",
		Help:    "Number of residual sign changes found per scan",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
	})
)
