package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/usecase"
	"github.com/jhoicas/storetrack-api/pkg/logger"
)

// ReportHandler maneja los reportes de ventas.
type ReportHandler struct {
	uc  *usecase.ReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// SalesByProduct godoc
// @Summary      Ventas por producto
// @Description  Cantidad e ingresos por producto, excluye órdenes canceladas. Orden descendente por ingresos.
// @Tags         reports
// @Produce      json
// @Param        startDate  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        endDate    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200        {array}   dto.SalesByProductDTO
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /reports/salesByProduct [get]
func (h *ReportHandler) SalesByProduct(c *fiber.Ctx) error {
	in := salesReportQuery(c)
	out, err := h.uc.SalesByProduct(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SalesByDate godoc
// @Summary      Ventas por período
// @Tags         reports
// @Produce      json
// @Param        startDate  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        endDate    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        groupBy    query  string  false  "day, month o year"  default(day)
// @Success      200        {array}   dto.SalesByDateDTO
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /reports/salesByDate [get]
func (h *ReportHandler) SalesByDate(c *fiber.Ctx) error {
	in := salesReportQuery(c)
	out, err := h.uc.SalesByDate(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SalesByProductPDF godoc
// @Summary      Ventas por producto en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        startDate  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        endDate    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200        {file}    binary
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /reports/salesByProduct/pdf [get]
func (h *ReportHandler) SalesByProductPDF(c *fiber.Ctx) error {
	in := salesReportQuery(c)
	pdf, err := h.uc.SalesByProductPDF(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ventas-por-producto.pdf"`)
	return c.Send(pdf)
}

func salesReportQuery(c *fiber.Ctx) dto.SalesReportRequest {
	return dto.SalesReportRequest{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		GroupBy:   c.Query("groupBy"),
	}
}
