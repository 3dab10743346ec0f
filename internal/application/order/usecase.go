package order

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/inventory"
	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	domaininv "github.com/jhoicas/storetrack-api/internal/domain/inventory"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

// OrderUseCase flujo de órdenes: creación, cambios de estado, cancelación y edición de líneas.
// Toda mutación corre en una transacción; los productos se bloquean en orden ascendente de id.
type OrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	itemRepo  repository.OrderItemRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, itemRepo repository.OrderItemRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, itemRepo: itemRepo}
}

// CreateOrder valida stock de todas las líneas antes de mutar y luego descuenta stock
// dejando un OUT por línea. Status vacío = PENDING.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden debe tener al menos una línea", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.OrderStatusPending
	}
	switch status {
	case entity.OrderStatusPending, entity.OrderStatusShipped:
	case entity.OrderStatusCanceled:
		return nil, fmt.Errorf("%w: no se puede crear una orden cancelada", domain.ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
	}

	now := time.Now()
	order := &entity.Order{
		ID:     uuid.New().String(),
		Status: status,
		Date:   now,
	}
	for i, it := range in.Items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("%w: items[%d].productId es requerido", domain.ErrInvalidInput, i)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: items[%d].quantity debe ser positiva", domain.ErrInvalidInput, i)
		}
		order.Items = append(order.Items, &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	err := uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.StockHistoryRepository,
		orderRepo repository.OrderRepository,
		_ repository.OrderItemRepository,
	) error {
		ids, requested := domaininv.RequestedQuantities(order.Items)
		products, err := lockProducts(ctx, productRepo, ids)
		if err != nil {
			return err
		}
		// Primera pasada: existencia, vigencia y stock contra la cantidad combinada por producto.
		for _, id := range ids {
			p := products[id]
			if p == nil || !p.IsActive(now) {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
			}
			if p.Stock < requested[id] {
				return fmt.Errorf("%w para %s (disponible %d, solicitado %d)",
					domain.ErrInsufficientStock, p.Name, p.Stock, requested[id])
			}
		}
		for _, it := range order.Items {
			it.Price = products[it.ProductID].Price
			it.Product = products[it.ProductID]
		}
		order.TotalValue, order.TotalItems = domaininv.OrderTotals(order.Items)
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, it := range order.Items {
			if _, err := inventory.RegisterMovementInTx(ctx, productRepo, historyRepo,
				products[it.ProductID], entity.StockHistoryOUT, it.Quantity, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(order), nil
}

// GetByID devuelve la orden con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(order), nil
}

// List devuelve todas las órdenes, de la más reciente a la más antigua.
func (uc *OrderUseCase) List(ctx context.Context) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderList(list), nil
}

// Search filtra por rango de fechas, estado y rango de valor total.
func (uc *OrderUseCase) Search(ctx context.Context, in dto.SearchOrdersRequest) ([]dto.OrderResponse, error) {
	from, to, err := dto.ParsePeriod(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if in.Status != "" && !domaininv.ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, in.Status)
	}
	if in.MinValue != nil && in.MaxValue != nil && in.MinValue.GreaterThan(*in.MaxValue) {
		return nil, fmt.Errorf("%w: minValue no puede ser mayor que maxValue", domain.ErrInvalidInput)
	}
	list, err := uc.orderRepo.Search(ctx, repository.OrderFilter{
		From:     from,
		To:       to,
		Status:   in.Status,
		MinValue: in.MinValue,
		MaxValue: in.MaxValue,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewOrderList(list), nil
}

// UpdateStatus aplica un cambio de estado con guardas: PENDING → SHIPPED sobrescribe,
// PENDING → CANCELED cancela devolviendo stock, mismo estado no hace nada.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if in.Status == "" {
		return nil, fmt.Errorf("%w: status es requerido", domain.ErrInvalidInput)
	}
	err := uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.StockHistoryRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
	) error {
		order, err := lockOrder(ctx, orderRepo, id)
		if err != nil {
			return err
		}
		action, err := domaininv.ResolveStatusChange(order.Status, in.Status)
		if err != nil {
			return err
		}
		switch action {
		case domaininv.StatusSet:
			return orderRepo.UpdateStatus(ctx, id, in.Status)
		case domaininv.StatusCancel:
			return cancelInTx(ctx, productRepo, historyRepo, orderRepo, itemRepo, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Cancel devuelve el stock de cada línea con un IN por línea y deja la orden CANCELED.
func (uc *OrderUseCase) Cancel(ctx context.Context, id string) (*dto.CancelOrderResponse, error) {
	err := uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.StockHistoryRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
	) error {
		order, err := lockOrder(ctx, orderRepo, id)
		if err != nil {
			return err
		}
		if err := domaininv.EnsureCancelable(order); err != nil {
			return err
		}
		return cancelInTx(ctx, productRepo, historyRepo, orderRepo, itemRepo, order)
	})
	if err != nil {
		return nil, err
	}
	out, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CancelOrderResponse{Message: "Order canceled successfully", Order: out}, nil
}

func (uc *OrderUseCase) load(ctx context.Context, id string) (*entity.Order, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id de orden requerido", domain.ErrInvalidInput)
	}
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return order, nil
}

func cancelInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	historyRepo repository.StockHistoryRepository,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	order *entity.Order,
) error {
	items, err := itemRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	ids, _ := domaininv.RequestedQuantities(items)
	products, err := lockProducts(ctx, productRepo, ids)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, it := range items {
		p := products[it.ProductID]
		if p == nil {
			return fmt.Errorf("%w: producto %s de la línea %s", domain.ErrNotFound, it.ProductID, it.ID)
		}
		if _, err := inventory.RegisterMovementInTx(ctx, productRepo, historyRepo,
			p, entity.StockHistoryIN, it.Quantity, now); err != nil {
			return err
		}
	}
	return orderRepo.UpdateStatus(ctx, order.ID, entity.OrderStatusCanceled)
}

func lockOrder(ctx context.Context, orderRepo repository.OrderRepository, id string) (*entity.Order, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id de orden requerido", domain.ErrInvalidInput)
	}
	order, err := orderRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return order, nil
}

// lockProducts bloquea los productos en orden ascendente de id. Los inexistentes quedan en nil.
func lockProducts(ctx context.Context, productRepo repository.ProductRepository, ids []string) (map[string]*entity.Product, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	out := make(map[string]*entity.Product, len(sorted))
	for _, id := range sorted {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = p
	}
	return out, nil
}

// recomputeTotals recalcula los totales de la orden desde sus líneas actuales.
func recomputeTotals(ctx context.Context, orderRepo repository.OrderRepository, itemRepo repository.OrderItemRepository, orderID string) error {
	items, err := itemRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	value, count := domaininv.OrderTotals(items)
	return orderRepo.UpdateTotals(ctx, orderID, value, count)
}
