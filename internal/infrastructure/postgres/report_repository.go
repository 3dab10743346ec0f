package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de lectura para los reportes de ventas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ListSaleLines líneas de órdenes con fecha de orden en el rango. El filtro por estado lo aplica el dominio.
func (r *ReportRepo) ListSaleLines(ctx context.Context, from, to *time.Time) ([]*entity.SaleLine, error) {
	query := `
		SELECT oi.product_id, p.name, oi.quantity, oi.price, o.date, o.status
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE ($1::timestamptz IS NULL OR o.date >= $1)
		  AND ($2::timestamptz IS NULL OR o.date <= $2)
		ORDER BY o.date ASC, oi.seq ASC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity, &l.Price, &l.OrderDate, &l.OrderStatus); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
