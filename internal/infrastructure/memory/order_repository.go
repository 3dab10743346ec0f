package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.OrderRepository     = (*OrderRepo)(nil)
	_ repository.OrderItemRepository = (*OrderItemRepo)(nil)
)

// OrderRepo órdenes en memoria. Las líneas viven en data.items.
type OrderRepo struct {
	a access
}

// Create guarda la orden y sus líneas.
func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.orders[order.ID]; ok {
			return fmt.Errorf("orden duplicada: %s", order.ID)
		}
		cp := *order
		cp.Items = nil
		d.orders[order.ID] = &cp
		for _, it := range order.Items {
			if err := insertItem(d, it); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.a.read(func(d *data) error {
		if o, ok := d.orders[id]; ok {
			out = orderView(d, o)
		}
		return nil
	})
	return out, err
}

// GetForUpdate devuelve la orden sin líneas.
func (r *OrderRepo) GetForUpdate(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.a.read(func(d *data) error {
		if o, ok := d.orders[id]; ok {
			cp := *o
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) UpdateTotals(_ context.Context, id string, totalValue decimal.Decimal, totalItems int) error {
	return r.a.write(func(d *data) error {
		o, ok := d.orders[id]
		if !ok {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
		}
		o.TotalValue = totalValue
		o.TotalItems = totalItems
		return nil
	})
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.a.write(func(d *data) error {
		o, ok := d.orders[id]
		if !ok {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
		}
		o.Status = status
		return nil
	})
}

func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	return r.Search(ctx, repository.OrderFilter{})
}

// Search de la más reciente a la más antigua.
func (r *OrderRepo) Search(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.a.read(func(d *data) error {
		for _, o := range d.orders {
			if filter.From != nil && o.Date.Before(*filter.From) {
				continue
			}
			if filter.To != nil && o.Date.After(*filter.To) {
				continue
			}
			if filter.Status != "" && o.Status != filter.Status {
				continue
			}
			if filter.MinValue != nil && o.TotalValue.LessThan(*filter.MinValue) {
				continue
			}
			if filter.MaxValue != nil && o.TotalValue.GreaterThan(*filter.MaxValue) {
				continue
			}
			out = append(out, orderView(d, o))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

// OrderItemRepo líneas de orden en memoria.
type OrderItemRepo struct {
	a access
}

func (r *OrderItemRepo) Create(_ context.Context, item *entity.OrderItem) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.orders[item.OrderID]; !ok {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, item.OrderID)
		}
		return insertItem(d, item)
	})
}

func (r *OrderItemRepo) GetByID(_ context.Context, id string) (*entity.OrderItem, error) {
	var out *entity.OrderItem
	err := r.a.read(func(d *data) error {
		if it, ok := d.items[id]; ok {
			out = itemView(d, it)
		}
		return nil
	})
	return out, err
}

// GetForUpdate devuelve la línea sin producto; dentro de una transacción el Store ya está serializado.
func (r *OrderItemRepo) GetForUpdate(_ context.Context, id string) (*entity.OrderItem, error) {
	var out *entity.OrderItem
	err := r.a.read(func(d *data) error {
		if it, ok := d.items[id]; ok {
			cp := *it
			cp.Product = nil
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *OrderItemRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	return r.a.write(func(d *data) error {
		it, ok := d.items[id]
		if !ok {
			return fmt.Errorf("%w: línea %s", domain.ErrNotFound, id)
		}
		it.Quantity = quantity
		return nil
	})
}

func (r *OrderItemRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.items[id]; !ok {
			return fmt.Errorf("%w: línea %s", domain.ErrNotFound, id)
		}
		delete(d.items, id)
		for i, itemID := range d.itemOrder {
			if itemID == id {
				d.itemOrder = append(d.itemOrder[:i], d.itemOrder[i+1:]...)
				break
			}
		}
		return nil
	})
}

func (r *OrderItemRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	err := r.a.read(func(d *data) error {
		out = itemsOf(d, orderID)
		return nil
	})
	return out, err
}

func insertItem(d *data, item *entity.OrderItem) error {
	if _, ok := d.items[item.ID]; ok {
		return fmt.Errorf("línea duplicada: %s", item.ID)
	}
	cp := *item
	cp.Product = nil
	d.items[item.ID] = &cp
	d.itemOrder = append(d.itemOrder, item.ID)
	return nil
}

func itemView(d *data, it *entity.OrderItem) *entity.OrderItem {
	cp := *it
	if p, ok := d.products[it.ProductID]; ok {
		cp.Product = productView(d, p)
	}
	return &cp
}

func itemsOf(d *data, orderID string) []*entity.OrderItem {
	out := make([]*entity.OrderItem, 0)
	for _, id := range d.itemOrder {
		if it := d.items[id]; it.OrderID == orderID {
			out = append(out, itemView(d, it))
		}
	}
	return out
}

func orderView(d *data, o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = itemsOf(d, o.ID)
	return &cp
}
