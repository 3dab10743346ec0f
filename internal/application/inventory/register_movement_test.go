package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/inventory"
	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMovement_AplicaDeltaYDevuelveStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "Arroz", 10, nil)
	uc := inventory.NewRegisterMovementUseCase(store, store.StockHistory())

	res, err := uc.RegisterMovementFromRequest(ctx, dto.CreateStockHistoryRequest{ProductID: "Arroz", Type: "IN", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 15, res.UpdatedStock)
	assert.Equal(t, entity.StockHistoryIN, res.History.Type)

	res, err = uc.RegisterMovementFromRequest(ctx, dto.CreateStockHistoryRequest{ProductID: "Arroz", Type: "OUT", Quantity: 15, Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.UpdatedStock)
	assert.True(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Equal(res.History.Date))
}

func TestRegisterMovement_Errores(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "Arroz", 3, nil)
	uc := inventory.NewRegisterMovementUseCase(store, store.StockHistory())

	_, err := uc.RegisterMovementFromRequest(ctx, dto.CreateStockHistoryRequest{ProductID: "Arroz", Type: "OUT", Quantity: 4})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Arroz")

	_, err = uc.RegisterMovementFromRequest(ctx, dto.CreateStockHistoryRequest{ProductID: "Arroz", Type: "MOVE", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovementFromRequest(ctx, dto.CreateStockHistoryRequest{ProductID: "Arroz", Type: "IN", Quantity: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovementFromRequest(ctx, dto.CreateStockHistoryRequest{ProductID: "Fideos", Type: "IN", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := store.Products().GetByID(ctx, "Arroz")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock, "los movimientos rechazados no tocan el stock")
}

func TestStockHistorySearch_RecientesPrimero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "Arroz", 0, nil)
	seedProduct(t, store, "Fideos", 0, nil)
	uc := inventory.NewRegisterMovementUseCase(store, store.StockHistory())

	for _, in := range []dto.CreateStockHistoryRequest{
		{ProductID: "Arroz", Type: "IN", Quantity: 10, Date: "2024-01-01"},
		{ProductID: "Arroz", Type: "OUT", Quantity: 2, Date: "2024-02-01"},
		{ProductID: "Fideos", Type: "IN", Quantity: 7, Date: "2024-03-01"},
	} {
		_, err := uc.RegisterMovementFromRequest(ctx, in)
		require.NoError(t, err)
	}

	list, err := uc.ListByProductResponse(ctx, "Arroz")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.StockHistoryOUT, list[0].Type)

	list, err = uc.SearchFromRequest(ctx, dto.SearchStockHistoryRequest{Type: "IN", StartDate: "2024-01-01", EndDate: "2024-02-28"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Arroz", list[0].ProductID)

	_, err = uc.SearchFromRequest(ctx, dto.SearchStockHistoryRequest{Type: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
