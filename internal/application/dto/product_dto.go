package dto

import (
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /products/addNewProduct.
type CreateProductRequest struct {
	Name       string          `json:"name"`
	Stock      *int            `json:"stock"`
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"categoryId"`
}

// UpdateProductRequest body para PUT /products/update/:id. Campos nil se conservan.
type UpdateProductRequest struct {
	Name       *string          `json:"name"`
	Stock      *int             `json:"stock"`
	Price      *decimal.Decimal `json:"price"`
	CategoryID *string          `json:"categoryId"`
	ThruDate   *time.Time       `json:"thruDate"`
}

// UpdateStockRequest body para PATCH /products/:id/stock.
type UpdateStockRequest struct {
	Stock *int `json:"stock"`
}

// SearchProductRequest body para POST /products/searchProduct.
type SearchProductRequest struct {
	Name        string           `json:"name"`
	CategoryID  string           `json:"categoryId"`
	MinPrice    *decimal.Decimal `json:"minPrice"`
	MaxPrice    *decimal.Decimal `json:"maxPrice"`
	IsAvailable OptionalBool     `json:"isAvailable"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Stock      int               `json:"stock"`
	Price      decimal.Decimal   `json:"price"`
	CategoryID string            `json:"categoryId"`
	ThruDate   *time.Time        `json:"thruDate"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Category   *CategoryResponse `json:"category,omitempty"`
}

// ExpireProductResponse salida de POST /products/:id/expire.
type ExpireProductResponse struct {
	Message string           `json:"message"`
	Product *ProductResponse `json:"product"`
}

// NewProductResponse mapea la entidad a su DTO.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	out := &ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Stock:      p.Stock,
		Price:      p.Price,
		CategoryID: p.CategoryID,
		ThruDate:   p.ThruDate,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.Category != nil {
		out.Category = NewCategoryResponse(p.Category)
	}
	return out
}

// NewProductList mapea una lista de productos (nunca nil, para serializar []).
func NewProductList(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *NewProductResponse(p))
	}
	return out
}
