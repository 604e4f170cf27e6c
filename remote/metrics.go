package remote

import "github.com/prometheus/client_golang/prometheus"

const (
	resultOK       = "ok"
	resultFallback = "fallback"
	resultAbsent   = "absent"
	resultSkipped  = "skipped"
	resultFailed   = "failed"
)

var (
	encodedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "errchain",
		Name:      "encoded_total",
		Help:      "Errors converted to a status, by whether the chain was attached (ok) or dropped (fallback).",
	}, []string{"result"})

	decodedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "errchain",
		Name:      "decoded_total",
		Help:      "Statuses wrapped, by outcome of the chain reconstruction.",
	}, []string{"result"})
)

// Collectors returns the counters of this package for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{encodedTotal, decodedTotal}
}
