package repository

import (
	"context"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// El árbol se arma en memoria a partir de ListAll (lista de adyacencia por padre).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	ListAll(ctx context.Context) ([]*entity.Category, error)
}
