package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/inventory"
	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	domaininv "github.com/jhoicas/storetrack-api/internal/domain/inventory"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

// AddItem agrega una línea a una orden PENDING con la foto del precio actual del producto.
func (uc *OrderUseCase) AddItem(ctx context.Context, in dto.AddOrderItemRequest) (*dto.OrderItemResponse, error) {
	if in.OrderID == "" || in.ProductID == "" {
		return nil, fmt.Errorf("%w: orderId y productId son requeridos", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser positiva", domain.ErrInvalidInput)
	}
	var item *entity.OrderItem
	err := uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.StockHistoryRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
	) error {
		order, err := lockOrder(ctx, orderRepo, in.OrderID)
		if err != nil {
			return err
		}
		if err := domaininv.EnsureEditable(order); err != nil {
			return err
		}
		now := time.Now()
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive(now) {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}
		if _, err := inventory.RegisterMovementInTx(ctx, productRepo, historyRepo,
			product, entity.StockHistoryOUT, in.Quantity, now); err != nil {
			return err
		}
		item = &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Price:     product.Price,
			Product:   product,
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		return recomputeTotals(ctx, orderRepo, itemRepo, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return dto.NewOrderItemResponse(item), nil
}

// UpdateItemQuantity cambia la cantidad de una línea. La devolución provisional y el nuevo descuento
// se registran como un único movimiento por la diferencia neta; si no alcanza el stock no cambia nada.
func (uc *OrderUseCase) UpdateItemQuantity(ctx context.Context, itemID string, in dto.UpdateOrderItemQuantityRequest) (*dto.OrderItemResponse, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: id de línea requerido", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser positiva", domain.ErrInvalidInput)
	}
	var item *entity.OrderItem
	err := uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.StockHistoryRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
	) error {
		order, err := lockItemOrder(ctx, orderRepo, itemRepo, itemID)
		if err != nil {
			return err
		}
		// La cantidad se toma de la fila bloqueada: otra edición pudo cambiarla antes del bloqueo.
		item, err = lockItem(ctx, itemRepo, itemID)
		if err != nil {
			return err
		}
		product, err := productRepo.GetForUpdate(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
		}
		now := time.Now()
		// Un producto dado de baja solo admite reducir o quitar líneas existentes.
		if in.Quantity > item.Quantity && !product.IsActive(now) {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
		}
		// Con la cantidad anterior devuelta, el stock disponible es product.Stock + item.Quantity.
		if available := product.Stock + item.Quantity; available < in.Quantity {
			return fmt.Errorf("%w para %s (disponible %d, solicitado %d)",
				domain.ErrInsufficientStock, product.Name, available, in.Quantity)
		}
		switch delta := in.Quantity - item.Quantity; {
		case delta > 0:
			_, err = inventory.RegisterMovementInTx(ctx, productRepo, historyRepo, product, entity.StockHistoryOUT, delta, now)
		case delta < 0:
			_, err = inventory.RegisterMovementInTx(ctx, productRepo, historyRepo, product, entity.StockHistoryIN, -delta, now)
		}
		if err != nil {
			return err
		}
		if err := itemRepo.UpdateQuantity(ctx, item.ID, in.Quantity); err != nil {
			return err
		}
		item.Quantity = in.Quantity
		item.Product = product
		return recomputeTotals(ctx, orderRepo, itemRepo, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return dto.NewOrderItemResponse(item), nil
}

// RemoveItem elimina una línea de una orden PENDING devolviendo su cantidad al stock.
// Devuelve la orden con los totales recalculados.
func (uc *OrderUseCase) RemoveItem(ctx context.Context, itemID string) (*dto.OrderResponse, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: id de línea requerido", domain.ErrInvalidInput)
	}
	var orderID string
	err := uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.StockHistoryRepository,
		orderRepo repository.OrderRepository,
		itemRepo repository.OrderItemRepository,
	) error {
		order, err := lockItemOrder(ctx, orderRepo, itemRepo, itemID)
		if err != nil {
			return err
		}
		orderID = order.ID
		item, err := lockItem(ctx, itemRepo, itemID)
		if err != nil {
			return err
		}
		product, err := productRepo.GetForUpdate(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
		}
		if _, err := inventory.RegisterMovementInTx(ctx, productRepo, historyRepo,
			product, entity.StockHistoryIN, item.Quantity, time.Now()); err != nil {
			return err
		}
		if err := itemRepo.Delete(ctx, item.ID); err != nil {
			return err
		}
		return recomputeTotals(ctx, orderRepo, itemRepo, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, orderID)
}

// ListItems devuelve las líneas de la orden con su producto.
func (uc *OrderUseCase) ListItems(ctx context.Context, orderID string) ([]dto.OrderItemResponse, error) {
	if _, err := uc.load(ctx, orderID); err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderItemList(items), nil
}

// lockItemOrder ubica la orden de la línea, la bloquea y exige que siga PENDING.
// El orden de bloqueo es orden, línea y luego producto, igual que en el resto del flujo.
func lockItemOrder(
	ctx context.Context,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	itemID string,
) (*entity.Order, error) {
	item, err := getItem(ctx, itemRepo, itemID)
	if err != nil {
		return nil, err
	}
	order, err := lockOrder(ctx, orderRepo, item.OrderID)
	if err != nil {
		return nil, err
	}
	if err := domaininv.EnsureEditable(order); err != nil {
		return nil, err
	}
	return order, nil
}

// lockItem relee la línea con bloqueo; NotFound si otra transacción la eliminó.
func lockItem(ctx context.Context, itemRepo repository.OrderItemRepository, id string) (*entity.OrderItem, error) {
	item, err := itemRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: línea %s", domain.ErrNotFound, id)
	}
	return item, nil
}

func getItem(ctx context.Context, itemRepo repository.OrderItemRepository, id string) (*entity.OrderItem, error) {
	item, err := itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: línea %s", domain.ErrNotFound, id)
	}
	return item, nil
}
