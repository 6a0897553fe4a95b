// Package httpx exposes the user directory over HTTP.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	pkghttpx "github.com/jcmexdev/ecommerce-orders/internal/pkg/httpx"
	"github.com/jcmexdev/ecommerce-orders/internal/pkg/metrics"
	"github.com/jcmexdev/ecommerce-orders/internal/user-service/domain"
)

// DirectoryService is the application surface the handler needs.
type DirectoryService interface {
	RegisterUser(ctx context.Context, u domain.User) (domain.User, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type Handler struct {
	svc DirectoryService
}

func NewHandler(svc DirectoryService) *Handler {
	return &Handler{svc: svc}
}

type userRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	u, err := h.svc.RegisterUser(r.Context(), domain.User{Name: req.Name, Email: req.Email})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusCreated, userResponse(u))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	pkghttpx.WriteJSON(w, http.StatusOK, userResponse(u))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse(u))
	}
	pkghttpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidUser):
		pkghttpx.WriteError(w, http.StatusBadRequest, "invalid_user", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		pkghttpx.WriteError(w, http.StatusNotFound, "user_not_found", err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		pkghttpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// NewRouter wires the directory endpoints onto the shared router.
func NewRouter(h *Handler) *chi.Mux {
	r := pkghttpx.NewRouter()

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/", h.RegisterUser)
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
	})

	r.Handle("/metrics", metrics.Handler())
	return r
}
