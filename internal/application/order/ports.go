package order

import (
	"context"

	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una única transacción con todos los repositorios que toca el flujo de órdenes.
// Si fn devuelve error no queda ningún cambio: ni stock, ni líneas, ni historial.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		historyRepo repository.StockHistoryRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
	) error) error
}
