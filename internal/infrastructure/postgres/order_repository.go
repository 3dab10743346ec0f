package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes sobre PostgreSQL. Las lecturas traen líneas y producto de cada línea.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const insertOrderItem = `INSERT INTO order_items (id, order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4, $5)`

// Create inserta la orden y sus líneas en un solo batch.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	batch := &pgx.Batch{}
	batch.Queue(`INSERT INTO orders (id, status, total_value, total_items, date) VALUES ($1, $2, $3, $4, $5)`,
		order.ID, order.Status, order.TotalValue, order.TotalItems, order.Date)
	for _, it := range order.Items {
		batch.Queue(insertOrderItem, it.ID, order.ID, it.ProductID, it.Quantity, it.Price)
	}
	br := r.q.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return translateError("insert order", err)
		}
	}
	if err := br.Close(); err != nil {
		return translateError("insert order", err)
	}
	return nil
}

// GetByID orden con líneas. (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	order, err := r.getOrder(ctx, `SELECT id, status, total_value, total_items, date FROM orders WHERE id = $1`, id)
	if err != nil || order == nil {
		return order, err
	}
	items, err := listItems(ctx, r.q, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

// GetForUpdate bloquea la fila de la orden (sin líneas).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOrder(ctx, `SELECT id, status, total_value, total_items, date FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) getOrder(ctx context.Context, query, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.Status, &o.TotalValue, &o.TotalItems, &o.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

func (r *OrderRepo) UpdateTotals(ctx context.Context, id string, totalValue decimal.Decimal, totalItems int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET total_value = $2, total_items = $3 WHERE id = $1`, id, totalValue, totalItems)
	if err != nil {
		return translateError("update order totals", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return translateError("update order status", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	return r.Search(ctx, repository.OrderFilter{})
}

// Search de la más reciente a la más antigua; las líneas se cargan en una segunda consulta.
func (r *OrderRepo) Search(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var (
		args  argList
		conds []string
	)
	if filter.From != nil {
		conds = append(conds, "date >= "+args.add(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "date <= "+args.add(*filter.To))
	}
	if filter.Status != "" {
		conds = append(conds, "status = "+args.add(filter.Status))
	}
	if filter.MinValue != nil {
		conds = append(conds, "total_value >= "+args.add(*filter.MinValue))
	}
	if filter.MaxValue != nil {
		conds = append(conds, "total_value <= "+args.add(*filter.MaxValue))
	}
	query := `SELECT id, status, total_value, total_items, date FROM orders` +
		whereClause(conds) + ` ORDER BY date DESC, id ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	var (
		list []*entity.Order
		ids  []string
	)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.Status, &o.TotalValue, &o.TotalItems, &o.Date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
		ids = append(ids, o.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := listItems(ctx, r.q, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Items = items[o.ID]
	}
	return list, nil
}
