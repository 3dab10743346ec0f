package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

var _ repository.OrderItemRepository = (*OrderItemRepo)(nil)

// OrderItemRepo líneas de orden sobre PostgreSQL.
type OrderItemRepo struct {
	q Querier
}

// NewOrderItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderItemRepository(q Querier) *OrderItemRepo {
	return &OrderItemRepo{q: q}
}

// itemWithProduct línea con su producto y la categoría del producto.
const itemWithProduct = `
	SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
	       ` + productColumns + `, c.id, c.description, c.parent_id
	FROM order_items oi
	JOIN products p ON p.id = oi.product_id
	LEFT JOIN categories c ON c.id = p.category_id`

func (r *OrderItemRepo) Create(ctx context.Context, item *entity.OrderItem) error {
	_, err := r.q.Exec(ctx, insertOrderItem, item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price)
	if err != nil {
		return translateError("insert order item", err)
	}
	return nil
}

// GetByID (nil, nil) si no existe.
func (r *OrderItemRepo) GetByID(ctx context.Context, id string) (*entity.OrderItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, itemWithProduct+` WHERE oi.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return it, nil
}

// GetForUpdate lee la línea con SELECT ... FOR UPDATE; la cantidad devuelta es la vigente tras el bloqueo.
func (r *OrderItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.OrderItem, error) {
	var it entity.OrderItem
	err := r.q.QueryRow(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items WHERE id = $1
		FOR UPDATE`, id,
	).Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item for update: %w", err)
	}
	return &it, nil
}

func (r *OrderItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE order_items SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return translateError("update order item", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: línea %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *OrderItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: línea %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *OrderItemRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	items, err := listItems(ctx, r.q, []string{orderID})
	if err != nil {
		return nil, err
	}
	if items[orderID] == nil {
		return []*entity.OrderItem{}, nil
	}
	return items[orderID], nil
}

// listItems carga las líneas de varias órdenes en una consulta, agrupadas por orden y en orden de inserción.
func listItems(ctx context.Context, q Querier, orderIDs []string) (map[string][]*entity.OrderItem, error) {
	rows, err := q.Query(ctx, itemWithProduct+` WHERE oi.order_id = ANY($1) ORDER BY oi.seq ASC`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]*entity.OrderItem, len(orderIDs))
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*entity.OrderItem, error) {
	var (
		it          entity.OrderItem
		p           entity.Product
		catID       *string
		catDesc     *string
		catParentID *string
	)
	if err := row.Scan(
		&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price,
		&p.ID, &p.Name, &p.Stock, &p.Price, &p.CategoryID, &p.ThruDate, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catDesc, &catParentID,
	); err != nil {
		return nil, err
	}
	if catID != nil {
		p.Category = &entity.Category{ID: *catID, ParentID: catParentID}
		if catDesc != nil {
			p.Category.Description = *catDesc
		}
	}
	it.Product = &p
	return &it, nil
}
