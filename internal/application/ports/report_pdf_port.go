package ports

import (
	"context"
	"time"

	"github.com/jhoicas/storetrack-api/internal/application/dto"
)

// SalesReportPDFGenerator genera la representación PDF del reporte de ventas por producto.
// from/to son los límites opcionales usados para el encabezado del documento.
type SalesReportPDFGenerator interface {
	GenerateSalesByProductPDF(
		ctx context.Context,
		rows []dto.SalesByProductDTO,
		from, to *time.Time,
	) ([]byte, error)
}
