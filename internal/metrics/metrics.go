package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the order-workflow counters on a private registry so tests can
// construct as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	OrdersPlaced         *prometheus.CounterVec
	PaymentVerifications *prometheus.CounterVec
	StatusUpdates        prometheus.Counter
}

const (
	VerificationOK                = "ok"
	VerificationSignatureMismatch = "signature_mismatch"
	VerificationPaymentFailed     = "payment_failed"
	VerificationError             = "error"
)

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		OrdersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "order",
			Name:      "placed_total",
			Help:      "Orders accepted by the workflow, by payment method.",
		}, []string{"method"}),
		PaymentVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "order",
			Name:      "payment_verifications_total",
			Help:      "Gateway payment verification attempts, by result.",
		}, []string{"result"}),
		StatusUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "order",
			Name:      "status_updates_total",
			Help:      "Admin fulfillment status updates applied.",
		}),
	}

	registry.MustRegister(m.OrdersPlaced, m.PaymentVerifications, m.StatusUpdates)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
