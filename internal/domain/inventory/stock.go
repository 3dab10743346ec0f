package inventory

import (
	"fmt"

	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
)

// ApplyMovement devuelve el stock resultante de aplicar un movimiento IN/OUT.
// Un OUT mayor que el stock disponible falla con ErrInsufficientStock.
func ApplyMovement(stock int, movementType string, quantity int) (int, error) {
	if quantity <= 0 {
		return stock, fmt.Errorf("%w: quantity debe ser positiva", domain.ErrInvalidInput)
	}
	switch movementType {
	case entity.StockHistoryIN:
		return stock + quantity, nil
	case entity.StockHistoryOUT:
		if stock < quantity {
			return stock, domain.ErrInsufficientStock
		}
		return stock - quantity, nil
	default:
		return stock, fmt.Errorf("%w: type debe ser IN u OUT", domain.ErrInvalidInput)
	}
}

// CompensatingMovement calcula el movimiento que lleva el stock de oldStock a newStock.
// ok es false cuando no hay diferencia y no corresponde registrar historial.
func CompensatingMovement(oldStock, newStock int) (movementType string, quantity int, ok bool) {
	switch {
	case newStock > oldStock:
		return entity.StockHistoryIN, newStock - oldStock, true
	case newStock < oldStock:
		return entity.StockHistoryOUT, oldStock - newStock, true
	default:
		return "", 0, false
	}
}

// HistoryBalance suma con signo los movimientos (IN − OUT).
// Si todas las mutaciones pasan por el historial, coincide con el stock actual.
func HistoryBalance(history []*entity.StockHistory) int {
	total := 0
	for _, h := range history {
		total += h.Signed()
	}
	return total
}
