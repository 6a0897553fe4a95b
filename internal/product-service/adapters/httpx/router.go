package httpx

import (
	"github.com/go-chi/chi/v5"

	pkghttpx "github.com/jcmexdev/ecommerce-orders/internal/pkg/httpx"
	"github.com/jcmexdev/ecommerce-orders/internal/pkg/metrics"
)

// NewRouter wires the catalog endpoints onto the shared router.
func NewRouter(h *Handler) *chi.Mux {
	r := pkghttpx.NewRouter()

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Post("/", h.CreateProduct)
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Patch("/{id}/stock", h.SetStock)
		r.Delete("/{id}", h.DeleteProduct)
	})

	r.Handle("/metrics", metrics.Handler())
	return r
}
