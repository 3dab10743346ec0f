package dto

import "github.com/shopspring/decimal"

// SalesReportRequest parámetros de query de los reportes de ventas.
type SalesReportRequest struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	GroupBy   string `query:"groupBy"`
}

// SalesByProductDTO ventas acumuladas por producto.
type SalesByProductDTO struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// SalesByDateDTO ventas acumuladas por período (YYYY-MM-DD, YYYY-MM o YYYY).
type SalesByDateDTO struct {
	Date          string          `json:"date"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}
