package inventory

import (
	"fmt"

	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StatusAction resultado de evaluar un cambio de estado de orden.
type StatusAction int

const (
	StatusNoop   StatusAction = iota // mismo estado, nada que hacer
	StatusSet                        // sobrescribir el estado
	StatusCancel                     // cancelar devolviendo stock
)

// ValidStatus indica si s es un estado de orden conocido.
func ValidStatus(s string) bool {
	switch s {
	case entity.OrderStatusPending, entity.OrderStatusShipped, entity.OrderStatusCanceled:
		return true
	}
	return false
}

// OrderTotals recalcula totalValue y totalItems desde las líneas actuales.
// Siempre desde cero: nunca se parchea el total anterior.
func OrderTotals(items []*entity.OrderItem) (decimal.Decimal, int) {
	value := decimal.Zero
	count := 0
	for _, it := range items {
		value = value.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		count += it.Quantity
	}
	return value, count
}

// EnsureEditable falla si la orden no admite cambios en sus líneas.
func EnsureEditable(order *entity.Order) error {
	if order.Status != entity.OrderStatusPending {
		return fmt.Errorf("%w: la orden está %s y no es editable", domain.ErrInvalidTransition, order.Status)
	}
	return nil
}

// EnsureCancelable aplica las guardas de cancelación.
func EnsureCancelable(order *entity.Order) error {
	switch order.Status {
	case entity.OrderStatusCanceled:
		return fmt.Errorf("%w: la orden ya está cancelada", domain.ErrInvalidTransition)
	case entity.OrderStatusShipped:
		return fmt.Errorf("%w: la orden ya fue despachada", domain.ErrInvalidTransition)
	}
	return nil
}

// ResolveStatusChange decide qué hacer al pedir el estado target para una orden en current.
// PENDING → SHIPPED sobrescribe; PENDING → CANCELED cancela; los estados terminales no cambian.
func ResolveStatusChange(current, target string) (StatusAction, error) {
	if !ValidStatus(target) {
		return StatusNoop, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, target)
	}
	if current == target {
		return StatusNoop, nil
	}
	if current != entity.OrderStatusPending {
		return StatusNoop, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, current, target)
	}
	switch target {
	case entity.OrderStatusShipped:
		return StatusSet, nil
	case entity.OrderStatusCanceled:
		return StatusCancel, nil
	}
	return StatusNoop, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, current, target)
}

// RequestedQuantities agrega las cantidades pedidas por producto, conservando el orden de aparición.
func RequestedQuantities(items []*entity.OrderItem) (ids []string, qty map[string]int) {
	qty = make(map[string]int, len(items))
	for _, it := range items {
		if _, seen := qty[it.ProductID]; !seen {
			ids = append(ids, it.ProductID)
		}
		qty[it.ProductID] += it.Quantity
	}
	return ids, qty
}
