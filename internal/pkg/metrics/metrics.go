// Package metrics declares the business counters exposed on each service's
// /metrics endpoint. Counters are registered once at import time through
// promauto; handlers and services increment them directly.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OrdersCreated counts orders created, labelled by their initial status.
	OrdersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Number of orders created, by initial status.",
	}, []string{"status"})

	// OrderStatusChanged counts status transitions, labelled old -> new.
	OrderStatusChanged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changed_total",
		Help: "Number of order status transitions, by previous and new status.",
	}, []string{"from", "to"})

	// OrdersDeleted counts deleted orders.
	OrdersDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Number of orders deleted.",
	})

	// ProductsCreated counts products registered in the catalog.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Number of products created.",
	})
)

// Handler returns the HTTP handler serving the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
