package repository

import (
	"context"
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
)

// ReportRepository consultas de solo lectura para reportes de ventas.
type ReportRepository interface {
	// ListSaleLines devuelve las líneas de órdenes con fecha de orden en [from, to] (límites opcionales),
	// incluyendo el estado de la orden para que el dominio decida qué cuenta como venta.
	ListSaleLines(ctx context.Context, from, to *time.Time) ([]*entity.SaleLine, error)
}
