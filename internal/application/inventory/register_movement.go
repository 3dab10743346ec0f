package inventory

import (
	"context"

	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.CreateStockHistoryRequest) (*dto.CreateStockHistoryResponse, error) {
	date, err := dto.ParseDateBound(in.Date, false)
	if err != nil {
		return nil, err
	}
	history, stock, err := uc.RegisterMovement(ctx, MovementInputDTO{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Date:      date,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreateStockHistoryResponse{
		History:      dto.NewStockHistoryResponse(history),
		UpdatedStock: stock,
	}, nil
}

// ListByProductResponse variante de ListByProduct que devuelve DTOs.
func (uc *RegisterMovementUseCase) ListByProductResponse(ctx context.Context, productID string) ([]dto.StockHistoryResponse, error) {
	list, err := uc.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return dto.NewStockHistoryList(list), nil
}

// SearchFromRequest adapta el body de búsqueda al filtro del repositorio.
func (uc *RegisterMovementUseCase) SearchFromRequest(ctx context.Context, in dto.SearchStockHistoryRequest) ([]dto.StockHistoryResponse, error) {
	from, to, err := dto.ParsePeriod(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	list, err := uc.Search(ctx, repository.StockHistoryFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		From:      from,
		To:        to,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewStockHistoryList(list), nil
}
