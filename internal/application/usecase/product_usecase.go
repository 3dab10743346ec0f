package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/inventory"
	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	domaininv "github.com/jhoicas/storetrack-api/internal/domain/inventory"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

// ProductUseCase libro de productos. Todo cambio de stock pasa por el historial en la misma transacción.
type ProductUseCase struct {
	txRunner          inventory.TxRunner
	repo              repository.ProductRepository
	categoryRepo      repository.CategoryRepository
	lowStockThreshold int
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	lowStockThreshold int,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:          txRunner,
		repo:              repo,
		categoryRepo:      categoryRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// priceScale decimales de products.price (NUMERIC(14,2)); ambos drivers guardan el precio ya redondeado.
const priceScale = 2

// Create crea el producto y registra un IN por el stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Stock == nil || in.CategoryID == "" {
		return nil, fmt.Errorf("%w: name, stock, price y categoryId son requeridos", domain.ErrInvalidInput)
	}
	if *in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}
	price := in.Price.Round(priceScale)
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price debe ser positivo", domain.ErrInvalidInput)
	}
	category, err := uc.requireCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		Stock:      0,
		Price:      price,
		CategoryID: in.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, historyRepo repository.StockHistoryRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if *in.Stock == 0 {
			return nil
		}
		_, err := inventory.RegisterMovementInTx(ctx, productRepo, historyRepo, product, entity.StockHistoryIN, *in.Stock, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	product.Category = category
	return dto.NewProductResponse(product), nil
}

// GetByID devuelve un producto vigente. Uno vencido se informa como no encontrado.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive(time.Now()) {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return dto.NewProductResponse(product), nil
}

// List devuelve los productos vigentes con su categoría, por precio ascendente.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	return dto.NewProductList(list), nil
}

// Update aplica los campos enviados. Un cambio de stock deja el movimiento compensatorio (IN/OUT por la diferencia).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	var category *entity.Category
	if in.CategoryID != nil {
		var err error
		if category, err = uc.requireCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, historyRepo repository.StockHistoryRepository) error {
		var err error
		product, err = productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		now := time.Now()
		if in.Stock != nil {
			if _, err := inventory.RegisterAdjustmentInTx(ctx, productRepo, historyRepo, product, *in.Stock, now); err != nil {
				return err
			}
		}
		if in.Name != nil {
			product.Name = strings.TrimSpace(*in.Name)
		}
		if in.Price != nil {
			product.Price = in.Price.Round(priceScale)
		}
		if in.CategoryID != nil {
			product.CategoryID = *in.CategoryID
			product.Category = category
		}
		if in.ThruDate != nil {
			thru := *in.ThruDate
			product.ThruDate = &thru
		}
		product.UpdatedAt = now
		return productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return uc.withCategory(ctx, product)
}

// UpdateStock fija el stock en un valor exacto registrando el movimiento compensatorio.
func (uc *ProductUseCase) UpdateStock(ctx context.Context, id string, in dto.UpdateStockRequest) (*dto.ProductResponse, error) {
	if in.Stock == nil {
		return nil, fmt.Errorf("%w: stock es requerido", domain.ErrInvalidInput)
	}
	if *in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, historyRepo repository.StockHistoryRepository) error {
		var err error
		product, err = productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		_, err = inventory.RegisterAdjustmentInTx(ctx, productRepo, historyRepo, product, *in.Stock, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.withCategory(ctx, product)
}

// Expire da de baja lógica el producto (thruDate = ahora). Si ya estaba vencido conserva su fecha.
// No toca stock ni historial.
func (uc *ProductUseCase) Expire(ctx context.Context, id string) (*dto.ExpireProductResponse, error) {
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.StockHistoryRepository) error {
		var err error
		product, err = productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		now := time.Now()
		if !product.IsActive(now) {
			return nil
		}
		product.ThruDate = &now
		product.UpdatedAt = now
		return productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	out, err := uc.withCategory(ctx, product)
	if err != nil {
		return nil, err
	}
	return &dto.ExpireProductResponse{Message: "Product expired successfully", Product: out}, nil
}

// Search filtra productos vigentes. categoryId incluye todas las subcategorías.
func (uc *ProductUseCase) Search(ctx context.Context, in dto.SearchProductRequest) ([]dto.ProductResponse, error) {
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return nil, fmt.Errorf("%w: minPrice no puede ser mayor que maxPrice", domain.ErrInvalidInput)
	}
	filter := repository.ProductFilter{
		Name:      strings.TrimSpace(in.Name),
		MinPrice:  in.MinPrice,
		MaxPrice:  in.MaxPrice,
		Available: in.IsAvailable.Ptr(),
		ActiveAt:  time.Now(),
	}
	if in.CategoryID != "" {
		categories, err := uc.categoryRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		filter.CategoryIDs = domaininv.DescendantIDs(categories, in.CategoryID)
	}
	list, err := uc.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewProductList(list), nil
}

// LowStock devuelve los productos vigentes con stock por debajo del umbral configurado.
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx, time.Now(), uc.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	return dto.NewProductList(list), nil
}

func (uc *ProductUseCase) requireCategory(ctx context.Context, id string) (*entity.Category, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: categoryId es requerido", domain.ErrInvalidInput)
	}
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return category, nil
}

func (uc *ProductUseCase) withCategory(ctx context.Context, product *entity.Product) (*dto.ProductResponse, error) {
	if product.Category == nil && product.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(ctx, product.CategoryID)
		if err != nil {
			return nil, err
		}
		product.Category = category
	}
	return dto.NewProductResponse(product), nil
}
