package inventory

import (
	"context"

	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que stock e historial se actualicen juntos o no se actualicen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		historyRepo repository.StockHistoryRepository,
	) error) error
}
