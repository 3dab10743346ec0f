package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	a access
}

// Create guarda una copia del producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.products[product.ID]; ok {
			return fmt.Errorf("producto duplicado: %s", product.ID)
		}
		d.products[product.ID] = copyProduct(product)
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(d *data) error {
		if p, ok := d.products[id]; ok {
			out = productView(d, p)
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya es exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza todos los campos persistidos del producto.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.products[product.ID]; !ok {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, product.ID)
		}
		d.products[product.ID] = copyProduct(product)
		return nil
	})
}

// UpdateStock fija el stock del producto.
func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	return r.a.write(func(d *data) error {
		p, ok := d.products[id]
		if !ok {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		p.Stock = stock
		p.UpdatedAt = time.Now()
		return nil
	})
}

// ListActive productos vigentes por precio ascendente.
func (r *ProductRepo) ListActive(ctx context.Context, now time.Time) ([]*entity.Product, error) {
	return r.Search(ctx, repository.ProductFilter{ActiveAt: now})
}

// Search aplica el filtro sobre los productos vigentes en filter.ActiveAt.
func (r *ProductRepo) Search(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var categories map[string]bool
	if len(filter.CategoryIDs) > 0 {
		categories = make(map[string]bool, len(filter.CategoryIDs))
		for _, id := range filter.CategoryIDs {
			categories[id] = true
		}
	}
	name := strings.ToLower(filter.Name)

	var out []*entity.Product
	err := r.a.read(func(d *data) error {
		for _, p := range d.products {
			if !p.IsActive(filter.ActiveAt) {
				continue
			}
			if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
				continue
			}
			if categories != nil && !categories[p.CategoryID] {
				continue
			}
			if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
				continue
			}
			if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
				continue
			}
			if filter.Available != nil && (p.Stock > 0) != *filter.Available {
				continue
			}
			out = append(out, productView(d, p))
		}
		return nil
	})
	sortByPrice(out)
	return out, err
}

// ListLowStock productos vigentes con stock < threshold, del menor stock al mayor.
func (r *ProductRepo) ListLowStock(_ context.Context, now time.Time, threshold int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.read(func(d *data) error {
		for _, p := range d.products {
			if p.IsActive(now) && p.Stock < threshold {
				out = append(out, productView(d, p))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stock != out[j].Stock {
			return out[i].Stock < out[j].Stock
		}
		return out[i].Name < out[j].Name
	})
	return out, err
}

func sortByPrice(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Price.Equal(list[j].Price) {
			return list[i].Price.LessThan(list[j].Price)
		}
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
}
