// Package metrics expone métricas Prometheus de la API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Nombres de las métricas.
const (
	MetricRequestsTotal          = "supermall_http_requests_total"
	MetricRequestDurationSeconds = "supermall_http_request_duration_seconds"
	MetricOrdersPlacedTotal      = "supermall_orders_placed_total"
	MetricWebhookEventsTotal     = "supermall_payment_webhook_events_total"
)

// Registry agrupa el registro propio (sin el global de Prometheus) y los colectores de la API.
type Registry struct {
	reg             *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	ordersPlaced    *prometheus.CounterVec
	webhookEvents   *prometheus.CounterVec
}

// NewRegistry registra los colectores de proceso y Go junto con los de la API.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRequestsTotal,
			Help: "Peticiones HTTP atendidas por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricRequestDurationSeconds,
			Help:    "Latencia de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ordersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricOrdersPlacedTotal,
			Help: "Pedidos creados por método de pago.",
		}, []string{"payment_method"}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricWebhookEventsTotal,
			Help: "Eventos de webhook de pagos por resultado.",
		}, []string{"result"}),
	}
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requestsTotal,
		r.requestDuration,
		r.ordersPlaced,
		r.webhookEvents,
	)
	return r
}

// ObserveRequest registra una petición terminada. route es el patrón (/api/products/:id), no la URL.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// OrdersPlaced suma n pedidos creados con el método de pago dado.
func (r *Registry) OrdersPlaced(paymentMethod string, n int) {
	r.ordersPlaced.WithLabelValues(paymentMethod).Add(float64(n))
}

// WebhookEvent result: processed, invalid_signature, error.
func (r *Registry) WebhookEvent(result string) {
	r.webhookEvents.WithLabelValues(result).Inc()
}

// Handler endpoint de scraping.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer para tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
