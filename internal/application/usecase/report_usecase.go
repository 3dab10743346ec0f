package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/ports"
	domaininv "github.com/jhoicas/storetrack-api/internal/domain/inventory"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

// ReportUseCase reportes de ventas de solo lectura. Las órdenes canceladas no cuentan como venta.
type ReportUseCase struct {
	repo   repository.ReportRepository
	pdfGen ports.SalesReportPDFGenerator
}

// NewReportUseCase construye el caso de uso. pdfGen puede ser nil si no se expone el PDF.
func NewReportUseCase(repo repository.ReportRepository, pdfGen ports.SalesReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, pdfGen: pdfGen}
}

// SalesByProduct cantidad e ingreso por producto en el rango opcional, por ingreso descendente.
func (uc *ReportUseCase) SalesByProduct(ctx context.Context, in dto.SalesReportRequest) ([]dto.SalesByProductDTO, error) {
	rows, _, _, err := uc.salesByProduct(ctx, in)
	return rows, err
}

// SalesByDate cantidad e ingreso por día, mes o año (por defecto día), en orden cronológico.
func (uc *ReportUseCase) SalesByDate(ctx context.Context, in dto.SalesReportRequest) ([]dto.SalesByDateDTO, error) {
	from, to, err := dto.ParsePeriod(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	groupBy := in.GroupBy
	if groupBy == "" {
		groupBy = domaininv.GroupByDay
	}
	if _, err := domaininv.PeriodKey(time.Time{}, groupBy); err != nil {
		return nil, err
	}
	lines, err := uc.repo.ListSaleLines(ctx, from, to)
	if err != nil {
		return nil, err
	}
	periods, err := domaininv.AggregateByPeriod(lines, groupBy)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesByDateDTO, 0, len(periods))
	for _, p := range periods {
		out = append(out, dto.SalesByDateDTO{Date: p.Period, TotalQuantity: p.TotalQuantity, TotalRevenue: p.TotalRevenue})
	}
	return out, nil
}

// SalesByProductPDF genera el reporte de ventas por producto en PDF.
func (uc *ReportUseCase) SalesByProductPDF(ctx context.Context, in dto.SalesReportRequest) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, errors.New("generador de PDF no configurado")
	}
	rows, from, to, err := uc.salesByProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateSalesByProductPDF(ctx, rows, from, to)
}

func (uc *ReportUseCase) salesByProduct(ctx context.Context, in dto.SalesReportRequest) ([]dto.SalesByProductDTO, *time.Time, *time.Time, error) {
	from, to, err := dto.ParsePeriod(in.StartDate, in.EndDate)
	if err != nil {
		return nil, nil, nil, err
	}
	lines, err := uc.repo.ListSaleLines(ctx, from, to)
	if err != nil {
		return nil, nil, nil, err
	}
	sales := domaininv.AggregateByProduct(lines)
	out := make([]dto.SalesByProductDTO, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.SalesByProductDTO{
			ProductID:     s.ProductID,
			ProductName:   s.ProductName,
			TotalQuantity: s.TotalQuantity,
			TotalRevenue:  s.TotalRevenue,
		})
	}
	return out, from, to, nil
}
