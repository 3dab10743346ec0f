package dto

import (
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderItemRequest línea pedida al crear una orden.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest body para POST /orders/newOrder. Status vacío = PENDING.
type CreateOrderRequest struct {
	Items  []OrderItemRequest `json:"items"`
	Status string             `json:"status"`
}

// UpdateOrderStatusRequest body para PATCH /orders/:id/updateStatus.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// SearchOrdersRequest body para POST /orders/search.
type SearchOrdersRequest struct {
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	Status    string           `json:"status"`
	MinValue  *decimal.Decimal `json:"minValue"`
	MaxValue  *decimal.Decimal `json:"maxValue"`
}

// AddOrderItemRequest body para POST /order-items/addItem.
type AddOrderItemRequest struct {
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateOrderItemQuantityRequest body para PUT /order-items/updateQuantity/:id.
type UpdateOrderItemQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// OrderItemResponse salida de una línea de orden.
type OrderItemResponse struct {
	ID        string           `json:"id"`
	OrderID   string           `json:"orderId"`
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// OrderResponse salida de una orden con sus líneas.
type OrderResponse struct {
	ID         string              `json:"id"`
	Status     string              `json:"status"`
	TotalValue decimal.Decimal     `json:"totalValue"`
	TotalItems int                 `json:"totalItems"`
	Date       time.Time           `json:"date"`
	Items      []OrderItemResponse `json:"items"`
}

// CancelOrderResponse salida de PATCH /orders/:id/cancelOrder.
type CancelOrderResponse struct {
	Message string         `json:"message"`
	Order   *OrderResponse `json:"order"`
}

// NewOrderItemResponse mapea la línea a su DTO.
func NewOrderItemResponse(it *entity.OrderItem) *OrderItemResponse {
	if it == nil {
		return nil
	}
	return &OrderItemResponse{
		ID:        it.ID,
		OrderID:   it.OrderID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		Price:     it.Price,
		Product:   NewProductResponse(it.Product),
	}
}

// NewOrderItemList mapea una lista de líneas.
func NewOrderItemList(items []*entity.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *NewOrderItemResponse(it))
	}
	return out
}

// NewOrderResponse mapea la orden a su DTO.
func NewOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:         o.ID,
		Status:     o.Status,
		TotalValue: o.TotalValue,
		TotalItems: o.TotalItems,
		Date:       o.Date,
		Items:      NewOrderItemList(o.Items),
	}
}

// NewOrderList mapea una lista de órdenes.
func NewOrderList(list []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *NewOrderResponse(o))
	}
	return out
}
