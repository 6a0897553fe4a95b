package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/ecommerce-orders/internal/order-service/app"
	"github.com/jcmexdev/ecommerce-orders/internal/order-service/domain"
	pkghttpx "github.com/jcmexdev/ecommerce-orders/internal/pkg/httpx"
)

// OrderService is what the handler needs from the application layer.
type OrderService interface {
	CreateOrder(ctx context.Context, userID string, items []app.LineItem) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListOrdersByStatus(ctx context.Context, status string) ([]domain.Order, error)
	ChangeStatus(ctx context.Context, id, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// Handler exposes the order workflow over HTTP.
type Handler struct {
	service OrderService
}

func NewHandler(service OrderService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	items := make([]app.LineItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = app.LineItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	order, err := h.service.CreateOrder(r.Context(), req.UserID, items)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	pkghttpx.WriteJSON(w, http.StatusCreated, mapOrderToResponse(order))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusOK, mapOrderToResponse(order))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusOK, mapOrdersToResponse(orders))
}

func (h *Handler) ListOrdersByUser(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrdersByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusOK, mapOrdersToResponse(orders))
}

func (h *Handler) ListOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrdersByStatus(r.Context(), chi.URLParam(r, "status"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusOK, mapOrdersToResponse(orders))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	order, err := h.service.ChangeStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusOK, mapOrderToResponse(order))
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeDomainError maps the workflow's error taxonomy onto HTTP statuses:
// invalid request and insufficient stock are 400, unknown order 404,
// terminal-order mutation 409, unreachable collaborator 503.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var stockErr *domain.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		pkghttpx.WriteJSON(w, http.StatusBadRequest, pkghttpx.ErrorResponse{
			Error:   "insufficient_stock",
			Message: stockErr.Error(),
			Details: insufficientStockDetails{
				ProductID: stockErr.ProductID,
				Available: stockErr.Available,
				Requested: stockErr.Requested,
			},
		})
	case errors.Is(err, domain.ErrInvalidRequest):
		pkghttpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		pkghttpx.WriteError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, domain.ErrIllegalTransition):
		pkghttpx.WriteError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		pkghttpx.WriteError(w, http.StatusServiceUnavailable, "dependency_unavailable", err.Error())
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err)
		pkghttpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
