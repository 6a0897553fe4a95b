package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/ecommerce-orders/internal/order-service/domain"
)

// ProductClient implements domain.ProductCatalog against the product service.
type ProductClient struct {
	baseURL string
	http    *http.Client
}

var _ domain.ProductCatalog = (*ProductClient)(nil)

func NewProductClient(baseURL string) *ProductClient {
	return &ProductClient{
		baseURL: baseURL,
		http:    newHTTPClient(),
	}
}

type productDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
}

type setStockDTO struct {
	Stock int `json:"stock"`
}

func (c *ProductClient) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product

	url := fmt.Sprintf("%s/api/v1/products/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return p, fmt.Errorf("build product request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return p, fmt.Errorf("%w: product service: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var dto productDTO
		if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
			return p, fmt.Errorf("%w: decode product response: %v", domain.ErrUnavailable, err)
		}
		price, err := decimal.NewFromString(dto.Price)
		if err != nil {
			return p, fmt.Errorf("%w: product %s price %q: %v", domain.ErrUnavailable, id, dto.Price, err)
		}
		return domain.Product{ID: dto.ID, Name: dto.Name, Price: price, Stock: dto.Stock}, nil
	case http.StatusNotFound:
		return p, fmt.Errorf("product %s: %w", id, domain.ErrProductNotFound)
	default:
		return p, fmt.Errorf("%w: product service returned %s", domain.ErrUnavailable, resp.Status)
	}
}

// SetStock overwrites the stock level of a product. The catalog offers no
// conditional decrement, so the caller's read-check-write is not atomic.
func (c *ProductClient) SetStock(ctx context.Context, id string, stock int) error {
	body, err := json.Marshal(setStockDTO{Stock: stock})
	if err != nil {
		return fmt.Errorf("encode stock update: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/products/%s/stock", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build stock request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: product service: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("product %s: %w", id, domain.ErrProductNotFound)
	default:
		return fmt.Errorf("%w: product service returned %s", domain.ErrUnavailable, resp.Status)
	}
}
