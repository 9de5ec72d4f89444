package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Order-subsystem counters, registered once at package init.
var (
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tianguistore",
		Name:      "orders_created_total",
		Help:      "Orders successfully created.",
	})
	OrdersCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tianguistore",
		Name:      "orders_cancelled_total",
		Help:      "Orders cancelled by users or support.",
	})
	OrdersRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tianguistore",
		Name:      "orders_rejected_total",
		Help:      "Order operations rejected, by reason.",
	}, []string{"reason"})
	CartsCleared = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tianguistore",
		Name:      "carts_cleared_total",
		Help:      "Carts cleared after successful order creation.",
	})
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tianguistore",
		Name:      "http_requests_total",
		Help:      "HTTP requests, by method and status.",
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(
		OrdersCreated,
		OrdersCancelled,
		OrdersRejected,
		CartsCleared,
		HTTPRequests,
	)
}

// Handler exposes the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
