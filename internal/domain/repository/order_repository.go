package repository

import (
	"context"
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderFilter criterios de búsqueda de órdenes. Campos nil/vacíos no filtran.
type OrderFilter struct {
	From     *time.Time
	To       *time.Time
	Status   string
	MinValue *decimal.Decimal
	MaxValue *decimal.Decimal
}

// OrderRepository define el puerto de persistencia para Order.
// Las lecturas devuelven la orden con sus líneas y el producto de cada línea.
type OrderRepository interface {
	// Create inserta la orden y sus líneas (Items) en una sola operación lógica.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden (sin líneas).
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	UpdateTotals(ctx context.Context, id string, totalValue decimal.Decimal, totalItems int) error
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context) ([]*entity.Order, error)
	Search(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
}

// OrderItemRepository define el puerto de persistencia para las líneas de una orden.
type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.OrderItem, error)
	// GetForUpdate bloquea la fila de la línea (sin producto). (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.OrderItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
}
