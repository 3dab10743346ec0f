package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storetrack-api/internal/application/dto"
)

func TestGenerateSalesByProductPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("storetrack-api")
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	out, err := g.GenerateSalesByProductPDF(context.Background(), []dto.SalesByProductDTO{
		{ProductID: "a", ProductName: "Martillo", TotalQuantity: 1200, TotalRevenue: decimal.RequireFromString("14400.5")},
		{ProductID: "b", ProductName: "Serrucho", TotalQuantity: 3, TotalRevenue: decimal.NewFromInt(75)},
	}, &from, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateSalesByProductPDF_SinFilas(t *testing.T) {
	out, err := NewMarotoPDFGenerator("storetrack-api").GenerateSalesByProductPDF(context.Background(), nil, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMoney_SeparadoresEnEspañol(t *testing.T) {
	g := NewMarotoPDFGenerator("x")
	assert.Equal(t, "$12.345,50", g.money(decimal.RequireFromString("12345.5")))
}

func TestPeriodLabel(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "histórico", periodLabel(nil, nil))
	assert.Equal(t, "desde 05/03/2024", periodLabel(&d, nil))
	assert.Equal(t, "hasta 05/03/2024", periodLabel(nil, &d))
}
