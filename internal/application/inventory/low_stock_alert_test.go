package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/storetrack-api/internal/application/inventory"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/memory"
	"github.com/jhoicas/storetrack-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, subject, body string
	calls             int
	err               error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.calls++
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func seedProduct(t *testing.T, store *memory.Store, name string, stock int, thru *time.Time) {
	t.Helper()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID:        name,
		Name:      name,
		Stock:     stock,
		Price:     decimal.NewFromInt(1),
		ThruDate:  thru,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}))
}

func TestLowStockAlert_EnviaSoloProductosVigentesBajoUmbral(t *testing.T) {
	store := memory.NewStore()
	past := time.Now().Add(-time.Hour)
	seedProduct(t, store, "Arroz", 5, nil)
	seedProduct(t, store, "Azúcar", 1500, nil)
	seedProduct(t, store, "Harina", 2, &past)

	mailer := &fakeMailer{}
	uc := inventory.NewLowStockAlertUseCase(store.Products(), mailer, "ops@example.com", 100, logger.Nop())

	n, err := uc.CheckAndNotify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, "ops@example.com", mailer.to)
	assert.Equal(t, inventory.LowStockAlertSubject, mailer.subject)
	assert.Contains(t, mailer.body, "- Arroz (Stock: 5)")
	assert.NotContains(t, mailer.body, "Harina", "los productos vencidos no se reportan")
	assert.NotContains(t, mailer.body, "Azúcar")
}

func TestLowStockAlert_SinProductosNoEnvia(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "Azúcar", 1500, nil)

	mailer := &fakeMailer{}
	uc := inventory.NewLowStockAlertUseCase(store.Products(), mailer, "ops@example.com", 100, logger.Nop())

	n, err := uc.CheckAndNotify(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, mailer.calls)
}

func TestLowStockAlert_ErrorDeEnvio(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "Arroz", 5, nil)

	mailer := &fakeMailer{err: errors.New("smtp caído")}
	uc := inventory.NewLowStockAlertUseCase(store.Products(), mailer, "ops@example.com", 100, logger.Nop())

	_, err := uc.CheckAndNotify(context.Background())
	assert.Error(t, err)
	assert.NotPanics(t, func() { uc.Run(context.Background()) }, "Run descarta el error, el fallo solo se registra")
}

func TestLowStockAlertBody_FormateaMiles(t *testing.T) {
	body := inventory.LowStockAlertBody([]*entity.Product{{Name: "Tornillos", Stock: 1234}})
	assert.Contains(t, body, "- Tornillos (Stock: 1,234)")
}
