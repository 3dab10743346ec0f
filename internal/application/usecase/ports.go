package usecase

import (
	"context"

	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

// CategoryTxRunner ejecuta fn con el repositorio de categorías atado a una transacción
// que excluye cualquier otra escritura del árbol hasta el commit.
type CategoryTxRunner interface {
	RunCategories(ctx context.Context, fn func(repo repository.CategoryRepository) error) error
}
