// Package metrics holds the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "settleup"

// Metrics groups every collector the server records into.
type Metrics struct {
	// RPCRequests counts finished RPCs by procedure and Connect code.
	RPCRequests *prometheus.CounterVec

	// RPCDuration observes RPC latency in seconds by procedure.
	RPCDuration *prometheus.HistogramVec

	// SimplifiedTransfers observes how many transfers each simplification emits.
	SimplifiedTransfers prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Finished RPCs by procedure and code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		SimplifiedTransfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simplified_transfers",
			Help:      "Number of transfers emitted per debt simplification.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
	}
	reg.MustRegister(m.RPCRequests, m.RPCDuration, m.SimplifiedTransfers)
	return m
}

// ObserveTransfers records one simplification. Safe on a nil receiver.
func (m *Metrics) ObserveTransfers(n int) {
	if m == nil {
		return
	}
	m.SimplifiedTransfers.Observe(float64(n))
}
