package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dealboard"

var (
	RequestsHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_requests",
			Help:      "Time taken to process requests",
			Buckets:   []float64{.005, .01, .025, .05, .075, .1, .15, .2, .25, .5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"route", "method", "error"},
	)

	StoreMutationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Number of completed store mutations",
		}, []string{"kind"},
	)

	BoardAgreementsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "board_agreements",
			Help:      "Stores the number of agreements per board column",
		}, []string{"status"},
	)
)

func CollectRequestsMetric(route, method string, err error, start time.Time) {
	RequestsHistogram.
		WithLabelValues(route, method, errLabelValue(err)).
		Observe(time.Since(start).Seconds())
}

func CollectStoreMutation(kind string) {
	StoreMutationsCounter.
		WithLabelValues(kind).
		Inc()
}

func CollectBoardColumn(status string, val float64) {
	BoardAgreementsGauge.
		WithLabelValues(status).
		Set(val)
}

// ErrLabelValue returns string representation of error label value
func errLabelValue(err error) string {
	if err != nil {
		return "true"
	}
	return "false"
}
