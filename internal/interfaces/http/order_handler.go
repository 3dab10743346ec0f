package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/order"
	"github.com/jhoicas/storetrack-api/pkg/logger"
)

// OrderHandler maneja las peticiones HTTP de órdenes y sus líneas.
type OrderHandler struct {
	uc  *order.OrderUseCase
	log *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.OrderUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear orden
// @Description  Valida stock de todas las líneas, descuenta inventario y registra salidas en una sola transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Líneas y estado inicial opcional"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /orders/newOrder [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateOrder(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /orders/getAll [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/getById/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Description  PENDING a SHIPPED o CANCELED. Cancelar restaura el stock.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /orders/{id}/updateStatus [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar órdenes
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SearchOrdersRequest  true  "Rango de fechas, estado y rango de total"
// @Success      200   {array}   dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /orders/search [post]
func (h *OrderHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchOrdersRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.Search(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.CancelOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/{id}/cancelOrder [patch]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar línea a una orden pendiente
// @Tags         order-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddOrderItemRequest  true  "Orden, producto y cantidad"
// @Success      201   {object}  dto.OrderItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /order-items/addItem [post]
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddOrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddItem(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItemQuantity godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         order-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la línea"
// @Param        body  body  dto.UpdateOrderItemQuantityRequest  true  "Nueva cantidad"
// @Success      200   {object}  dto.OrderItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /order-items/updateQuantity/{id} [put]
func (h *OrderHandler) UpdateItemQuantity(c *fiber.Ctx) error {
	var in dto.UpdateOrderItemQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateItemQuantity(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar línea de una orden pendiente
// @Tags         order-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /order-items/removeItem/{id} [delete]
func (h *OrderHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListItems godoc
// @Summary      Líneas de una orden
// @Tags         order-items
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden"
// @Success      200      {array}   dto.OrderItemResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /order-items/order/{orderId} [get]
func (h *OrderHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.uc.ListItems(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
