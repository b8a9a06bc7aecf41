package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service holds the Prometheus collectors.
type Service struct {
	Operations         *prometheus.CounterVec
	ValidationFailures prometheus.Counter
	TxCommitted        prometheus.Counter
	TxRolledBack       prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

// NewHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wtadb_operations_total",
			Help: "The total number of logical operations executed, by operation.",
		}, []string{"op"}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wtadb_validation_failures_total",
			Help: "The total number of field values rejected by validation.",
		}),
		TxCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wtadb_transactions_committed_total",
			Help: "The total number of committed write transactions.",
		}),
		TxRolledBack: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wtadb_transactions_rolled_back_total",
			Help: "The total number of rolled-back write transactions.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wtadb_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Operations,
		s.ValidationFailures,
		s.TxCommitted,
		s.TxRolledBack,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncOperation(op string) {
	s.Operations.WithLabelValues(op).Inc()
}

func (s *Service) IncValidationFailure() {
	s.ValidationFailures.Inc()
}

func (s *Service) IncTxCommitted() {
	s.TxCommitted.Inc()
}

func (s *Service) IncTxRolledBack() {
	s.TxRolledBack.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
