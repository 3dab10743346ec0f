package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	domaininv "github.com/jhoicas/storetrack-api/internal/domain/inventory"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

// RegisterMovementUseCase es el libro de historial de stock: cada movimiento IN/OUT
// se registra y aplica al producto en la misma transacción, con la fila bloqueada (SELECT FOR UPDATE).
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	historyRepo repository.StockHistoryRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, historyRepo repository.StockHistoryRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, historyRepo: historyRepo}
}

// MovementInputDTO entrada para registrar un movimiento. Date nil = ahora.
type MovementInputDTO struct {
	ProductID string
	Type      string
	Quantity  int
	Date      *time.Time
}

// RegisterMovement valida la entrada, bloquea el producto, aplica el delta y guarda el movimiento.
// Devuelve el movimiento creado y el stock resultante.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.StockHistory, int, error) {
	if input.ProductID == "" || input.Type == "" || input.Quantity == 0 {
		return nil, 0, fmt.Errorf("%w: productId, type y quantity son requeridos", domain.ErrInvalidInput)
	}
	if input.Type != entity.StockHistoryIN && input.Type != entity.StockHistoryOUT {
		return nil, 0, fmt.Errorf("%w: type debe ser IN u OUT", domain.ErrInvalidInput)
	}
	if input.Quantity < 0 {
		return nil, 0, fmt.Errorf("%w: quantity debe ser positiva", domain.ErrInvalidInput)
	}
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	var (
		history  *entity.StockHistory
		newStock int
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.StockHistoryRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, input.ProductID)
		}
		history, err = RegisterMovementInTx(ctx, productRepo, historyRepo, product, input.Type, input.Quantity, date)
		if err != nil {
			return err
		}
		newStock = product.Stock
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return history, newStock, nil
}

// RegisterMovementInTx aplica un movimiento usando los repositorios de la transacción del caller.
// product debe estar bloqueado (GetForUpdate); su Stock queda actualizado al valor resultante.
// Lo usan el flujo de órdenes y el libro de productos para que todo cambio de stock deje rastro.
func RegisterMovementInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	historyRepo repository.StockHistoryRepository,
	product *entity.Product,
	movementType string,
	quantity int,
	date time.Time,
) (*entity.StockHistory, error) {
	newStock, err := domaininv.ApplyMovement(product.Stock, movementType, quantity)
	if err != nil {
		if err == domain.ErrInsufficientStock {
			return nil, fmt.Errorf("%w para %s (disponible %d, solicitado %d)",
				domain.ErrInsufficientStock, product.Name, product.Stock, quantity)
		}
		return nil, err
	}
	if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
		return nil, err
	}
	history := &entity.StockHistory{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      movementType,
		Quantity:  quantity,
		Date:      date,
	}
	if err := historyRepo.Create(ctx, history); err != nil {
		return nil, err
	}
	product.Stock = newStock
	return history, nil
}

// RegisterAdjustmentInTx lleva el stock del producto a newStock registrando el movimiento compensatorio.
// Devuelve nil si no hubo cambio.
func RegisterAdjustmentInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	historyRepo repository.StockHistoryRepository,
	product *entity.Product,
	newStock int,
	date time.Time,
) (*entity.StockHistory, error) {
	if newStock < 0 {
		return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}
	movementType, quantity, ok := domaininv.CompensatingMovement(product.Stock, newStock)
	if !ok {
		return nil, nil
	}
	return RegisterMovementInTx(ctx, productRepo, historyRepo, product, movementType, quantity, date)
}

// ListByProduct devuelve el historial de un producto, del más reciente al más antiguo.
func (uc *RegisterMovementUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.StockHistory, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: productId es requerido", domain.ErrInvalidInput)
	}
	return uc.historyRepo.ListByProduct(ctx, productID)
}

// Search filtra el historial por producto, tipo y rango de fechas.
func (uc *RegisterMovementUseCase) Search(ctx context.Context, filter repository.StockHistoryFilter) ([]*entity.StockHistory, error) {
	if filter.Type != "" && filter.Type != entity.StockHistoryIN && filter.Type != entity.StockHistoryOUT {
		return nil, fmt.Errorf("%w: type debe ser IN u OUT", domain.ErrInvalidInput)
	}
	return uc.historyRepo.Search(ctx, filter)
}
