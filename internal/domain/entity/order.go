package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. SHIPPED y CANCELED son terminales.
const (
	OrderStatusPending  = "PENDING"
	OrderStatusShipped  = "SHIPPED"
	OrderStatusCanceled = "CANCELED"
)

// Order agrupa líneas de pedido con totales derivados de ellas.
type Order struct {
	ID         string
	Status     string
	TotalValue decimal.Decimal // Σ price × quantity
	TotalItems int             // Σ quantity
	Date       time.Time

	Items []*OrderItem
}

// OrderItem línea de una orden. Price es la foto del precio del producto al agregarla.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal

	Product *Product // opcional
}
