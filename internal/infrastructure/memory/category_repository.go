package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	a access
}

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.categories[category.ID]; ok {
			return fmt.Errorf("categoría duplicada: %s", category.ID)
		}
		d.categories[category.ID] = copyCategory(category)
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.a.read(func(d *data) error {
		if c, ok := d.categories[id]; ok {
			out = copyCategory(c)
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.categories[category.ID]; !ok {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, category.ID)
		}
		d.categories[category.ID] = copyCategory(category)
		return nil
	})
}

func (r *CategoryRepo) ListAll(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.a.read(func(d *data) error {
		for _, c := range d.categories {
			out = append(out, copyCategory(c))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out, err
}
