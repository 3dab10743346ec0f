package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo historial de stock sobre PostgreSQL. Solo INSERT y SELECT.
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

func (r *StockHistoryRepo) Create(ctx context.Context, h *entity.StockHistory) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_history (id, product_id, type, quantity, date) VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.ProductID, h.Type, h.Quantity, h.Date,
	)
	if err != nil {
		return translateError("insert stock history", err)
	}
	return nil
}

func (r *StockHistoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockHistory, error) {
	return r.Search(ctx, repository.StockHistoryFilter{ProductID: productID})
}

// Search del más reciente al más antiguo.
func (r *StockHistoryRepo) Search(ctx context.Context, filter repository.StockHistoryFilter) ([]*entity.StockHistory, error) {
	var (
		args  argList
		conds []string
	)
	if filter.ProductID != "" {
		conds = append(conds, "product_id = "+args.add(filter.ProductID))
	}
	if filter.Type != "" {
		conds = append(conds, "type = "+args.add(filter.Type))
	}
	if filter.From != nil {
		conds = append(conds, "date >= "+args.add(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "date <= "+args.add(*filter.To))
	}
	query := `SELECT id, product_id, type, quantity, date FROM stock_history` +
		whereClause(conds) + ` ORDER BY date DESC, seq DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search stock history: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockHistory
	for rows.Next() {
		var h entity.StockHistory
		if err := rows.Scan(&h.ID, &h.ProductID, &h.Type, &h.Quantity, &h.Date); err != nil {
			return nil, fmt.Errorf("scan stock history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
