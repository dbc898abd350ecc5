// Package metrics exposes Prometheus instrumentation for the RPC layer and
// the ledger coordinator.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fintrack"

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	rpcRequests     *prometheus.CounterVec
	rpcDuration     *prometheus.HistogramVec
	budgetsAdjusted *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		budgetsAdjusted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "budget_spend_adjustments_total",
			Help:      "Budget rows whose spend was adjusted, by ledger operation.",
		}, []string{"operation"}),
	}
	reg.MustRegister(
		m.rpcRequests,
		m.rpcDuration,
		m.budgetsAdjusted,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// BudgetsAdjusted implements ledger.Observer.
func (m *Metrics) BudgetsAdjusted(op string, n int64) {
	if n > 0 {
		m.budgetsAdjusted.WithLabelValues(op).Add(float64(n))
	}
}

// Interceptor records request counts and latency for every RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			var connectErr *connect.Error
			if errors.As(err, &connectErr) {
				code = connectErr.Code().String()
			} else if err != nil {
				code = connect.CodeUnknown.String()
			}
			m.rpcRequests.WithLabelValues(procedure, code).Inc()
			m.rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
