package inventory_test

import (
	"testing"

	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMovement(t *testing.T) {
	got, err := inventory.ApplyMovement(10, entity.StockHistoryIN, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, got)

	got, err = inventory.ApplyMovement(10, entity.StockHistoryOUT, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, got, "una salida igual al stock deja el producto en cero")

	_, err = inventory.ApplyMovement(10, entity.StockHistoryOUT, 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = inventory.ApplyMovement(10, entity.StockHistoryIN, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.ApplyMovement(10, "ADJUST", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompensatingMovement(t *testing.T) {
	typ, qty, ok := inventory.CompensatingMovement(40, 55)
	assert.True(t, ok)
	assert.Equal(t, entity.StockHistoryIN, typ)
	assert.Equal(t, 15, qty)

	typ, qty, ok = inventory.CompensatingMovement(40, 12)
	assert.True(t, ok)
	assert.Equal(t, entity.StockHistoryOUT, typ)
	assert.Equal(t, 28, qty)

	_, _, ok = inventory.CompensatingMovement(7, 7)
	assert.False(t, ok)
}

func TestHistoryBalance(t *testing.T) {
	history := []*entity.StockHistory{
		{Type: entity.StockHistoryIN, Quantity: 50},
		{Type: entity.StockHistoryOUT, Quantity: 10},
		{Type: entity.StockHistoryIN, Quantity: 10},
	}
	assert.Equal(t, 50, inventory.HistoryBalance(history))
	assert.Equal(t, 0, inventory.HistoryBalance(nil))
}
