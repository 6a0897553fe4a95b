package httpx

import (
	"time"

	"github.com/jcmexdev/ecommerce-orders/internal/order-service/domain"
)

type createOrderRequest struct {
	UserID string           `json:"user_id"`
	Items  []orderItemInput `json:"items"`
}

type orderItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	Status      string              `json:"status"`
	OrderDate   string              `json:"order_date"`
	TotalAmount string              `json:"total_amount"`
	Items       []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

// insufficientStockDetails is attached to the error body so the caller can
// see which product ran short and by how much.
type insufficientStockDetails struct {
	ProductID string `json:"product_id"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

func mapOrderToResponse(order *domain.Order) orderResponse {
	items := make([]orderItemResponse, len(order.Items))
	for i, it := range order.Items {
		items[i] = orderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice.String(),
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal.String(),
		}
	}
	return orderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		Status:      string(order.Status),
		OrderDate:   order.OrderDate.UTC().Format(time.RFC3339Nano),
		TotalAmount: order.TotalAmount.String(),
		Items:       items,
	}
}

func mapOrdersToResponse(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = mapOrderToResponse(&orders[i])
	}
	return out
}
