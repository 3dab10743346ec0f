package order_test

import (
	"context"
	"testing"

	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/inventory"
	"github.com/jhoicas/storetrack-api/internal/application/order"
	"github.com/jhoicas/storetrack-api/internal/application/usecase"
	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	domaininv "github.com/jhoicas/storetrack-api/internal/domain/inventory"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	orders   *order.OrderUseCase
	products *usecase.ProductUseCase
	history  *inventory.RegisterMovementUseCase
	category string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	categories := usecase.NewCategoryUseCase(store, store.Categories())
	cat, err := categories.Create(context.Background(), dto.CreateCategoryRequest{Description: "Ferretería"})
	require.NoError(t, err)
	return &fixture{
		ctx:      context.Background(),
		store:    store,
		orders:   order.NewOrderUseCase(store, store.Orders(), store.OrderItems()),
		products: usecase.NewProductUseCase(store, store.Products(), store.Categories(), 100),
		history:  inventory.NewRegisterMovementUseCase(store, store.StockHistory()),
		category: cat.ID,
	}
}

func (f *fixture) product(t *testing.T, name string, stock int, price int64) *dto.ProductResponse {
	t.Helper()
	p, err := f.products.Create(f.ctx, dto.CreateProductRequest{
		Name:       name,
		Stock:      &stock,
		Price:      decimal.NewFromInt(price),
		CategoryID: f.category,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// assertLedger verifica que el historial del producto explique su stock actual.
func (f *fixture) assertLedger(t *testing.T, id string) {
	t.Helper()
	hist, err := f.store.StockHistory().ListByProduct(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, f.stock(t, id), domaininv.HistoryBalance(hist))
}

func (f *fixture) assertTotals(t *testing.T, o *dto.OrderResponse) {
	t.Helper()
	value, count := decimal.Zero, 0
	for _, it := range o.Items {
		value = value.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		count += it.Quantity
	}
	assert.True(t, value.Equal(o.TotalValue), "totalValue %s != %s", o.TotalValue, value)
	assert.Equal(t, count, o.TotalItems)
}

func TestCreateOrder_DescuentaStockYRegistraSalida(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 50, 12)

	o, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 10}}})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.True(t, decimal.NewFromInt(120).Equal(o.TotalValue))
	assert.Equal(t, 10, o.TotalItems)
	assert.Equal(t, 40, f.stock(t, a.ID))
	f.assertLedger(t, a.ID)
}

func TestCreateOrder_StockInsuficienteEsAtomico(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 50, 12)
	b := f.product(t, "Serrucho", 5, 30)

	_, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{
		{ProductID: a.ID, Quantity: 10},
		{ProductID: b.ID, Quantity: 3},
		{ProductID: b.ID, Quantity: 3},
	}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Serrucho")

	assert.Equal(t, 50, f.stock(t, a.ID))
	assert.Equal(t, 5, f.stock(t, b.ID))
	list, err := f.orders.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateOrder_Validaciones(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 50, 12)

	_, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{
		Items:  []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 1}},
		Status: entity.OrderStatusCanceled,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: "no-existe", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_ProductoVencidoNoDisponible(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 50, 12)
	_, err := f.products.Expire(f.ctx, a.ID)
	require.NoError(t, err)

	_, err = f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_RestauraStockUnaEntradaPorLinea(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 50, 12)
	b := f.product(t, "Serrucho", 20, 30)

	o, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{
		{ProductID: a.ID, Quantity: 10},
		{ProductID: b.ID, Quantity: 4},
	}})
	require.NoError(t, err)

	res, err := f.orders.Cancel(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCanceled, res.Order.Status)
	assert.Equal(t, 50, f.stock(t, a.ID))
	assert.Equal(t, 20, f.stock(t, b.ID))

	hist, err := f.store.StockHistory().ListByProduct(f.ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, hist, 3) // IN 50, OUT 10, IN 10
	types := []string{hist[0].Type, hist[1].Type, hist[2].Type}
	assert.ElementsMatch(t, []string{entity.StockHistoryIN, entity.StockHistoryOUT, entity.StockHistoryIN}, types)
	f.assertLedger(t, a.ID)
	f.assertLedger(t, b.ID)

	_, err = f.orders.Cancel(f.ctx, o.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "ya está cancelada")
	assert.Equal(t, 50, f.stock(t, a.ID), "la segunda cancelación no devuelve stock")
}

func TestCancel_OrdenDespachadaRechazada(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 50, 12)
	o, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 5}}})
	require.NoError(t, err)

	_, err = f.orders.UpdateStatus(f.ctx, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusShipped})
	require.NoError(t, err)

	_, err = f.orders.Cancel(f.ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 45, f.stock(t, a.ID))

	_, err = f.orders.Cancel(f.ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_Guardas(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 50, 12)
	o, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 5}}})
	require.NoError(t, err)

	same, err := f.orders.UpdateStatus(f.ctx, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusPending})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, same.Status)

	_, err = f.orders.UpdateStatus(f.ctx, o.ID, dto.UpdateOrderStatusRequest{Status: "LOST"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	canceled, err := f.orders.UpdateStatus(f.ctx, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusCanceled})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCanceled, canceled.Status)
	assert.Equal(t, 50, f.stock(t, a.ID), "cancelar vía updateStatus devuelve el stock")

	_, err = f.orders.UpdateStatus(f.ctx, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusShipped})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestItems_TotalesSiempreRecalculados(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 50, 12)
	b := f.product(t, "Serrucho", 20, 30)
	o, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 2}}})
	require.NoError(t, err)

	item, err := f.orders.AddItem(f.ctx, dto.AddOrderItemRequest{OrderID: o.ID, ProductID: b.ID, Quantity: 3})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(item.Price))
	assert.Equal(t, 17, f.stock(t, b.ID))

	got, err := f.orders.GetByID(f.ctx, o.ID)
	require.NoError(t, err)
	f.assertTotals(t, got)
	assert.Equal(t, 5, got.TotalItems)

	_, err = f.orders.UpdateItemQuantity(f.ctx, item.ID, dto.UpdateOrderItemQuantityRequest{Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 19, f.stock(t, b.ID))
	got, err = f.orders.GetByID(f.ctx, o.ID)
	require.NoError(t, err)
	f.assertTotals(t, got)

	_, err = f.orders.UpdateItemQuantity(f.ctx, item.ID, dto.UpdateOrderItemQuantityRequest{Quantity: 20})
	require.NoError(t, err, "con la cantidad anterior devuelta alcanzan 20")
	assert.Equal(t, 0, f.stock(t, b.ID))

	after, err := f.orders.RemoveItem(f.ctx, item.ID)
	require.NoError(t, err)
	f.assertTotals(t, after)
	assert.Len(t, after.Items, 1)
	assert.Equal(t, 20, f.stock(t, b.ID))
	f.assertLedger(t, a.ID)
	f.assertLedger(t, b.ID)
}

func TestUpdateItemQuantity_InsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 10, 12)
	o, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 4}}})
	require.NoError(t, err)
	itemID := o.Items[0].ID

	_, err = f.orders.UpdateItemQuantity(f.ctx, itemID, dto.UpdateOrderItemQuantityRequest{Quantity: 11})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 6, f.stock(t, a.ID), "la devolución provisional no queda aplicada")
	items, err := f.orders.ListItems(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, items[0].Quantity)
	f.assertLedger(t, a.ID)
}

func TestItems_OrdenNoEditable(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 10, 12)
	o, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{
		Items:  []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 1}},
		Status: entity.OrderStatusShipped,
	})
	require.NoError(t, err)

	_, err = f.orders.AddItem(f.ctx, dto.AddOrderItemRequest{OrderID: o.ID, ProductID: a.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.orders.UpdateItemQuantity(f.ctx, o.Items[0].ID, dto.UpdateOrderItemQuantityRequest{Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.orders.RemoveItem(f.ctx, o.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.orders.AddItem(f.ctx, dto.AddOrderItemRequest{OrderID: "no-existe", ProductID: a.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.orders.ListItems(f.ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpire_LineasHistoricasSiguenConsultables(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 10, 12)
	o, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 2}}})
	require.NoError(t, err)

	_, err = f.products.Expire(f.ctx, a.ID)
	require.NoError(t, err)

	list, err := f.products.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	items, err := f.orders.ListItems(f.ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ProductID)
	require.NotNil(t, items[0].Product)
	assert.NotNil(t, items[0].Product.ThruDate)
}

func TestUpdateItemQuantity_ProductoVencidoSoloReduce(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 10, 12)
	o, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 2}}})
	require.NoError(t, err)
	_, err = f.products.Expire(f.ctx, a.ID)
	require.NoError(t, err)
	itemID := o.Items[0].ID

	_, err = f.orders.UpdateItemQuantity(f.ctx, itemID, dto.UpdateOrderItemQuantityRequest{Quantity: 3})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 8, f.stock(t, a.ID))

	it, err := f.orders.UpdateItemQuantity(f.ctx, itemID, dto.UpdateOrderItemQuantityRequest{Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, it.Quantity)
	assert.Equal(t, 9, f.stock(t, a.ID))

	_, err = f.orders.RemoveItem(f.ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, 10, f.stock(t, a.ID))
	f.assertLedger(t, a.ID)
}

func TestSearch_FiltraPorEstadoYValor(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Martillo", 100, 10)
	small, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 1}}})
	require.NoError(t, err)
	big, err := f.orders.CreateOrder(f.ctx, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: a.ID, Quantity: 20}}})
	require.NoError(t, err)
	_, err = f.orders.Cancel(f.ctx, small.ID)
	require.NoError(t, err)

	minValue := decimal.NewFromInt(100)
	res, err := f.orders.Search(f.ctx, dto.SearchOrdersRequest{MinValue: &minValue})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, big.ID, res[0].ID)

	res, err = f.orders.Search(f.ctx, dto.SearchOrdersRequest{Status: entity.OrderStatusCanceled})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, small.ID, res[0].ID)

	_, err = f.orders.Search(f.ctx, dto.SearchOrdersRequest{StartDate: "2024-05-10", EndDate: "2024-05-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
