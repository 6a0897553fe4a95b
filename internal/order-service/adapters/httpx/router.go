package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	pkghttpx "github.com/jcmexdev/ecommerce-orders/internal/pkg/httpx"
	"github.com/jcmexdev/ecommerce-orders/internal/pkg/metrics"
)

func NewRouter(handler *Handler) http.Handler {
	r := pkghttpx.NewRouter()

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", handler.CreateOrder)
		r.Get("/", handler.ListOrders)
		r.Get("/{id}", handler.GetOrder)
		r.Get("/user/{userID}", handler.ListOrdersByUser)
		r.Get("/status/{status}", handler.ListOrdersByStatus)
		r.Patch("/{id}/status", handler.UpdateStatus)
		r.Delete("/{id}", handler.DeleteOrder)
	})

	r.Handle("/metrics", metrics.Handler())

	return r
}
