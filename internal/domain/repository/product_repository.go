package repository

import (
	"context"
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter criterios de búsqueda de productos. Campos vacíos/nil no filtran.
type ProductFilter struct {
	Name        string   // substring, sin distinguir mayúsculas
	CategoryIDs []string // categoría y sus descendientes ya expandidos
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Available   *bool     // true: stock > 0; false: stock <= 0
	ActiveAt    time.Time // solo productos vigentes en este instante
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, stock int) error
	ListActive(ctx context.Context, now time.Time) ([]*entity.Product, error)
	Search(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, now time.Time, threshold int) ([]*entity.Product, error)
}
