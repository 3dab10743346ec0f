package dto

import (
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
)

// CreateStockHistoryRequest body para POST /stockHistory/newHistory.
type CreateStockHistoryRequest struct {
	ProductID string `json:"productId"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Date      string `json:"date,omitempty"`
}

// SearchStockHistoryRequest body para POST /stockHistory/search.
type SearchStockHistoryRequest struct {
	ProductID string `json:"productId"`
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// StockHistoryResponse salida de un movimiento.
type StockHistoryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
}

// CreateStockHistoryResponse movimiento registrado y stock resultante.
type CreateStockHistoryResponse struct {
	History      StockHistoryResponse `json:"history"`
	UpdatedStock int                  `json:"updatedStock"`
}

// NewStockHistoryResponse mapea el movimiento a su DTO.
func NewStockHistoryResponse(h *entity.StockHistory) StockHistoryResponse {
	return StockHistoryResponse{
		ID:        h.ID,
		ProductID: h.ProductID,
		Type:      h.Type,
		Quantity:  h.Quantity,
		Date:      h.Date,
	}
}

// NewStockHistoryList mapea una lista de movimientos.
func NewStockHistoryList(list []*entity.StockHistory) []StockHistoryResponse {
	out := make([]StockHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, NewStockHistoryResponse(h))
	}
	return out
}
