package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistorialPrecio records every price change applied to a product.
// Rows are append-only: never updated, never deleted.
type HistorialPrecio struct {
	ID                 uint            `gorm:"primaryKey"`
	ProductoCodigo     string          `gorm:"size:50;not null;index"`
	MenorAntes         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MenorDespues       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MayorAntes         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MayorDespues       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PorcentajeAplicado decimal.Decimal `gorm:"type:decimal(7,2);not null"`
	Motivo             string          `gorm:"not null;default:'actualizacion_masiva'"` // actualizacion_masiva | manual
	CreatedAt          time.Time
}

func (HistorialPrecio) TableName() string { return "historial_precios" }
