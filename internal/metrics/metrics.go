// Package metrics exposes Prometheus collectors for the billsplitter server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the server's collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RPCRequests        *prometheus.CounterVec
	RPCDuration        *prometheus.HistogramVec
	BillsCreated       prometheus.Counter
	AllocationFailures *prometheus.CounterVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RPCRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "billsplitter_rpc_requests_total",
			Help: "Total number of RPCs handled, by procedure and result code",
		}, []string{"procedure", "code"}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "billsplitter_rpc_duration_seconds",
			Help:    "Duration of RPC handling",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"procedure"}),
		BillsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "billsplitter_bills_created_total",
			Help: "Total number of bills created",
		}),
		AllocationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "billsplitter_allocation_failures_total",
			Help: "Split computations rejected by the allocation engine, by reason",
		}, []string{"reason"}),
	}
}

// NewRegistry returns a registry with the Go runtime and process collectors installed.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ObserveRPC records one finished RPC.
// Call with time.Now() at the start of the call.
func (m *Metrics) ObserveRPC(procedure, code string, start time.Time) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
}

// IncrementBillsCreated records a successful bill creation.
func (m *Metrics) IncrementBillsCreated() {
	if m == nil {
		return
	}
	m.BillsCreated.Inc()
}

// IncrementAllocationFailure records a split rejected for reason.
func (m *Metrics) IncrementAllocationFailure(reason string) {
	if m == nil {
		return
	}
	m.AllocationFailures.WithLabelValues(reason).Inc()
}
