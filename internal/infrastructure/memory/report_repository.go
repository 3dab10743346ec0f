package memory

import (
	"context"
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reportes sobre el almacén en memoria.
type ReportRepo struct {
	a access
}

func (r *ReportRepo) ListSaleLines(_ context.Context, from, to *time.Time) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	err := r.a.read(func(d *data) error {
		for _, id := range d.itemOrder {
			it := d.items[id]
			o, ok := d.orders[it.OrderID]
			if !ok {
				continue
			}
			if from != nil && o.Date.Before(*from) {
				continue
			}
			if to != nil && o.Date.After(*to) {
				continue
			}
			line := &entity.SaleLine{
				ProductID:   it.ProductID,
				Quantity:    it.Quantity,
				Price:       it.Price,
				OrderDate:   o.Date,
				OrderStatus: o.Status,
			}
			if p, ok := d.products[it.ProductID]; ok {
				line.ProductName = p.Name
			}
			out = append(out, line)
		}
		return nil
	})
	return out, err
}
