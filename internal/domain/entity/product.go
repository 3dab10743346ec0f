package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock disponible.
// Nunca se elimina: ThruDate marca el fin de vigencia (baja lógica).
type Product struct {
	ID         string
	Name       string
	Stock      int
	Price      decimal.Decimal
	CategoryID string
	ThruDate   *time.Time // nil o futuro = activo
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category // opcional, poblado por los listados
}

// IsActive indica si el producto sigue vigente en el instante now.
func (p *Product) IsActive(now time.Time) bool {
	return p.ThruDate == nil || p.ThruDate.After(now)
}
