// Package httpx exposes the product catalog over HTTP.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	pkghttpx "github.com/jcmexdev/ecommerce-orders/internal/pkg/httpx"
	"github.com/jcmexdev/ecommerce-orders/internal/product-service/domain"
)

// CatalogService is the application surface the handler needs.
type CatalogService interface {
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	SetStock(ctx context.Context, id string, stock int) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type Handler struct {
	svc CatalogService
}

func NewHandler(svc CatalogService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	p, err := req.toDomain()
	if err != nil {
		pkghttpx.WriteError(w, http.StatusBadRequest, "invalid_request", "price must be a decimal string")
		return
	}

	created, err := h.svc.CreateProduct(r.Context(), p)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusCreated, mapProductToResponse(created))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusOK, mapProductToResponse(p))
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusOK, mapProductsToResponse(products))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	p, err := req.toDomain()
	if err != nil {
		pkghttpx.WriteError(w, http.StatusBadRequest, "invalid_request", "price must be a decimal string")
		return
	}
	p.ID = chi.URLParam(r, "id")

	updated, err := h.svc.UpdateProduct(r.Context(), p)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusOK, mapProductToResponse(updated))
}

func (h *Handler) SetStock(w http.ResponseWriter, r *http.Request) {
	var req setStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	updated, err := h.svc.SetStock(r.Context(), chi.URLParam(r, "id"), req.Stock)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusOK, mapProductToResponse(updated))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidProduct):
		pkghttpx.WriteError(w, http.StatusBadRequest, "invalid_product", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		pkghttpx.WriteError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, domain.ErrDuplicateName):
		pkghttpx.WriteError(w, http.StatusConflict, "duplicate_name", err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		pkghttpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
