package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the service in a private
// registry, so constructing it twice (tests) never panics.
type Metrics struct {
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	ledgerOps       *prometheus.CounterVec
	ledgerVolume    *prometheus.CounterVec
	commissions     prometheus.Counter
	gatewayErrors   *prometheus.CounterVec
	gatewayLinks    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cardly_http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status"},
		),
		ledgerOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardly_ledger_operations_total",
				Help: "Ledger operations by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		ledgerVolume: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardly_ledger_volume_total",
				Help: "Sum of completed transaction amounts by kind.",
			},
			[]string{"kind"},
		),
		commissions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cardly_commissions_created_total",
				Help: "Commissions created by usage transactions.",
			},
		),
		gatewayErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardly_gateway_errors_total",
				Help: "Failed calls to the payment gateway.",
			},
			[]string{"operation"},
		),
		gatewayLinks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardly_gateway_links_total",
				Help: "External linkage outcomes by state.",
			},
			[]string{"state"},
		),
	}
}

func (m *Metrics) RecordRequest(method string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}

// RecordLedgerOperation counts one ledger operation. outcome is "ok" or the
// error kind that ended it.
func (m *Metrics) RecordLedgerOperation(operation, outcome string) {
	m.ledgerOps.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) AddLedgerVolume(kind string, amount float64) {
	m.ledgerVolume.WithLabelValues(kind).Add(amount)
}

func (m *Metrics) IncrCommission() {
	m.commissions.Inc()
}

func (m *Metrics) IncrGatewayError(operation string) {
	m.gatewayErrors.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncrGatewayLink(state string) {
	m.gatewayLinks.WithLabelValues(state).Inc()
}
