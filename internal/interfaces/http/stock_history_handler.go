package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/inventory"
	"github.com/jhoicas/storetrack-api/pkg/logger"
)

// StockHistoryHandler maneja las peticiones HTTP del historial de stock.
type StockHistoryHandler struct {
	uc  *inventory.RegisterMovementUseCase
	log *logger.Logger
}

// NewStockHistoryHandler construye el handler.
func NewStockHistoryHandler(uc *inventory.RegisterMovementUseCase, log *logger.Logger) *StockHistoryHandler {
	return &StockHistoryHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Description  IN suma y OUT resta del stock del producto en la misma transacción.
// @Tags         stock-history
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockHistoryRequest  true  "productId, type (IN|OUT), quantity, date opcional"
// @Success      201   {object}  dto.CreateStockHistoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /stockHistory/newHistory [post]
func (h *StockHistoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockHistoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProduct godoc
// @Summary      Historial de un producto
// @Tags         stock-history
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {array}  dto.StockHistoryResponse
// @Router       /stockHistory/getByProductId/{productId} [get]
func (h *StockHistoryHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProductResponse(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar movimientos
// @Tags         stock-history
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SearchStockHistoryRequest  true  "Producto, tipo y rango de fechas"
// @Success      200   {array}   dto.StockHistoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /stockHistory/search [post]
func (h *StockHistoryHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchStockHistoryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.SearchFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
