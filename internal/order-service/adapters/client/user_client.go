// Package client contains the HTTP adapters for the order workflow's two
// collaborators: the user directory and the product catalog. Both speak
// JSON over HTTP and carry W3C trace context via otelhttp.
//
// Error contract: a 404 from a collaborator proves absence and maps to the
// matching not-found sentinel; transport failures, timeouts and any other
// status map to domain.ErrUnavailable because existence is then unknown.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/ecommerce-orders/internal/order-service/domain"
)

// newHTTPClient builds the shared client configuration: a per-request
// timeout as a safety net (callers still control cancellation through ctx)
// and an otelhttp transport so outbound calls become client spans.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   5 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// UserClient implements domain.UserDirectory against the user service.
type UserClient struct {
	baseURL string
	http    *http.Client
}

var _ domain.UserDirectory = (*UserClient)(nil)

func NewUserClient(baseURL string) *UserClient {
	return &UserClient{
		baseURL: baseURL,
		http:    newHTTPClient(),
	}
}

type userDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *UserClient) GetUser(ctx context.Context, id string) (domain.User, error) {
	var u domain.User

	url := fmt.Sprintf("%s/api/v1/users/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return u, fmt.Errorf("build user request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return u, fmt.Errorf("%w: user service: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var dto userDTO
		if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
			return u, fmt.Errorf("%w: decode user response: %v", domain.ErrUnavailable, err)
		}
		return domain.User{ID: dto.ID, Name: dto.Name, Email: dto.Email}, nil
	case http.StatusNotFound:
		return u, fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
	default:
		return u, fmt.Errorf("%w: user service returned %s", domain.ErrUnavailable, resp.Status)
	}
}
