package entity

import "time"

// Tipos de movimiento del historial de stock.
const (
	StockHistoryIN  = "IN"  // entrada
	StockHistoryOUT = "OUT" // salida
)

// StockHistory registro inmutable de un movimiento de stock de un producto.
type StockHistory struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int // siempre positivo; el signo lo da Type
	Date      time.Time
}

// Signed devuelve la cantidad con signo (+IN, -OUT).
func (h *StockHistory) Signed() int {
	if h.Type == StockHistoryOUT {
		return -h.Quantity
	}
	return h.Quantity
}
