package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is the authoritative catalog record. Codigo is the sole identity:
// assigned once, never changed, and the only key foreign references use.
type Producto struct {
	Codigo    string `gorm:"primaryKey;size:50"`
	Nombre    string `gorm:"index;not null"`
	Categoria string `gorm:"index;not null"`
	// PrecioMenor is the retail tier, PrecioMayor the wholesale tier. Always >= 0.
	PrecioMenor decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioMayor decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostoCompra decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Unidad      *string         `gorm:"size:30"`
	// CodigoBarra is unique when present; NULL rows do not collide.
	CodigoBarra *string `gorm:"size:50;uniqueIndex"`
	// UltimaActualizacion has date granularity. Bumped on every mutation,
	// including bulk adjustments that touch a single price tier.
	UltimaActualizacion time.Time `gorm:"type:date;not null"`
}

func (Producto) TableName() string { return "productos" }

var cien = decimal.NewFromInt(100)

// DiferenciaPorcentual is the derived gap between the two tiers:
// (menor - mayor) / mayor * 100, rounded to 2 decimals.
// Zero when the wholesale price is zero.
func (p *Producto) DiferenciaPorcentual() decimal.Decimal {
	if p.PrecioMayor.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return p.PrecioMenor.Sub(p.PrecioMayor).Div(p.PrecioMayor).Mul(cien).Round(2)
}
