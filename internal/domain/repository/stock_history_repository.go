package repository

import (
	"context"
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
)

// StockHistoryFilter criterios de búsqueda del historial.
type StockHistoryFilter struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
}

// StockHistoryRepository puerto del historial de stock. Solo inserción y lectura:
// el historial es inmutable. Los listados van del más reciente al más antiguo.
type StockHistoryRepository interface {
	Create(ctx context.Context, history *entity.StockHistory) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockHistory, error)
	Search(ctx context.Context, filter StockHistoryFilter) ([]*entity.StockHistory, error)
}
