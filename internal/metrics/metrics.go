package metrics

import (
	"alcyxob/gym-admin/internal/domain"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the admin API. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	PaymentTransitions      *prometheus.CounterVec
	PaymentTransitionErrors *prometheus.CounterVec
	SubscriptionCascades    *prometheus.CounterVec
	HTTPRequestDuration     *prometheus.HistogramVec
}

// New registers every collector with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PaymentTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gym_admin_payment_transitions_total",
				Help: "Payment requests moved out of Pending, by resulting status",
			},
			[]string{"status"},
		),
		PaymentTransitionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gym_admin_payment_transition_errors_total",
				Help: "Failed approve/reject attempts, by error type",
			},
			[]string{"error_type"},
		),
		SubscriptionCascades: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gym_admin_subscription_cascades_total",
				Help: "Subscription updates triggered by approvals, by outcome",
			},
			[]string{"outcome"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gym_admin_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *Metrics) PaymentTransitioned(status domain.PaymentStatus) {
	if m == nil {
		return
	}
	m.PaymentTransitions.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) PaymentTransitionFailed(errorType string) {
	if m == nil {
		return
	}
	m.PaymentTransitionErrors.WithLabelValues(errorType).Inc()
}

// SubscriptionCascaded records whether an approval found its user
// ("applied") or not ("user_missing").
func (m *Metrics) SubscriptionCascaded(outcome string) {
	if m == nil {
		return
	}
	m.SubscriptionCascades.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
