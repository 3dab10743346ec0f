package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo historial en memoria, solo inserción.
type StockHistoryRepo struct {
	a access
}

func (r *StockHistoryRepo) Create(_ context.Context, history *entity.StockHistory) error {
	return r.a.write(func(d *data) error {
		cp := *history
		d.history = append(d.history, &cp)
		return nil
	})
}

func (r *StockHistoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockHistory, error) {
	return r.Search(ctx, repository.StockHistoryFilter{ProductID: productID})
}

// Search del más reciente al más antiguo; a igual fecha, el último insertado primero.
func (r *StockHistoryRepo) Search(_ context.Context, filter repository.StockHistoryFilter) ([]*entity.StockHistory, error) {
	var out []*entity.StockHistory
	err := r.a.read(func(d *data) error {
		for i := len(d.history) - 1; i >= 0; i-- {
			h := d.history[i]
			if filter.ProductID != "" && h.ProductID != filter.ProductID {
				continue
			}
			if filter.Type != "" && h.Type != filter.Type {
				continue
			}
			if filter.From != nil && h.Date.Before(*filter.From) {
				continue
			}
			if filter.To != nil && h.Date.After(*filter.To) {
				continue
			}
			cp := *h
			out = append(out, &cp)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, err
}
