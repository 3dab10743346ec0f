package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine proyección de solo lectura de una línea vendida, usada por los reportes.
type SaleLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	OrderDate   time.Time
	OrderStatus string
}
