package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Granularidades de agrupación para el reporte de ventas por fecha.
const (
	GroupByDay   = "day"
	GroupByMonth = "month"
	GroupByYear  = "year"
)

// ProductSales ventas acumuladas de un producto.
type ProductSales struct {
	ProductID     string
	ProductName   string
	TotalQuantity int
	TotalRevenue  decimal.Decimal
}

// PeriodSales ventas acumuladas de un período (día, mes o año).
type PeriodSales struct {
	Period        string
	TotalQuantity int
	TotalRevenue  decimal.Decimal
}

// AggregateByProduct agrupa las líneas por producto, ordenado por ingreso descendente.
// Las líneas de órdenes canceladas no cuentan como venta.
func AggregateByProduct(lines []*entity.SaleLine) []ProductSales {
	byID := make(map[string]*ProductSales)
	var order []string
	for _, l := range lines {
		if l.OrderStatus == entity.OrderStatusCanceled {
			continue
		}
		ps, ok := byID[l.ProductID]
		if !ok {
			ps = &ProductSales{ProductID: l.ProductID, ProductName: l.ProductName, TotalRevenue: decimal.Zero}
			byID[l.ProductID] = ps
			order = append(order, l.ProductID)
		}
		ps.TotalQuantity += l.Quantity
		ps.TotalRevenue = ps.TotalRevenue.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	out := make([]ProductSales, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TotalRevenue.Equal(out[j].TotalRevenue) {
			return out[i].TotalRevenue.GreaterThan(out[j].TotalRevenue)
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out
}

// PeriodKey formatea la fecha según la granularidad (UTC): YYYY-MM-DD, YYYY-MM o YYYY.
func PeriodKey(t time.Time, groupBy string) (string, error) {
	t = t.UTC()
	switch groupBy {
	case GroupByDay:
		return t.Format("2006-01-02"), nil
	case GroupByMonth:
		return t.Format("2006-01"), nil
	case GroupByYear:
		return t.Format("2006"), nil
	}
	return "", fmt.Errorf("%w: groupBy debe ser day, month o year", domain.ErrInvalidInput)
}

// AggregateByPeriod agrupa las líneas por período en orden cronológico.
func AggregateByPeriod(lines []*entity.SaleLine, groupBy string) ([]PeriodSales, error) {
	if _, err := PeriodKey(time.Time{}, groupBy); err != nil {
		return nil, err
	}
	byKey := make(map[string]*PeriodSales)
	for _, l := range lines {
		if l.OrderStatus == entity.OrderStatusCanceled {
			continue
		}
		key, _ := PeriodKey(l.OrderDate, groupBy)
		ps, ok := byKey[key]
		if !ok {
			ps = &PeriodSales{Period: key, TotalRevenue: decimal.Zero}
			byKey[key] = ps
		}
		ps.TotalQuantity += l.Quantity
		ps.TotalRevenue = ps.TotalRevenue.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	out := make([]PeriodSales, 0, len(byKey))
	for _, ps := range byKey {
		out = append(out, *ps)
	}
	// Las claves tienen ancho fijo, el orden lexicográfico es cronológico.
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}
