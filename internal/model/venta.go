package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoVenta values. A sale is always one or the other.
const (
	TipoVentaMinorista = "Minorista"
	TipoVentaMayorista = "Mayorista"
)

// Venta is an immutable sale record. Total is always computed server-side
// from the line subtotals at creation time, never trusted from the caller.
type Venta struct {
	ID            uint            `gorm:"primaryKey"`
	Fecha         time.Time       `gorm:"not null;index"`
	ClienteNombre string          `gorm:"not null;default:'Cliente General'"`
	TipoVenta     string          `gorm:"type:varchar(20);not null;index"`
	Observaciones *string         `gorm:"type:text"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Detalles are owned by the venta: deleting a venta cascades to them.
	Detalles []DetalleVenta `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

func (Venta) TableName() string { return "ventas" }

// DetalleVenta is one line of a sale. CodigoProducto, NombreProducto and
// PrecioUnitario are frozen copies taken at sale time; they are never
// refreshed from the catalog, even if the product later changes or is deleted.
// ProductoCodigo is a weak reference only: the DB sets it to NULL when the
// product is deleted, and the snapshot fields remain the source of truth.
type DetalleVenta struct {
	ID             uint            `gorm:"primaryKey"`
	VentaID        uint            `gorm:"not null;index"`
	ProductoCodigo *string         `gorm:"size:50;index"`
	CodigoProducto string          `gorm:"size:50;not null"`
	NombreProducto string          `gorm:"not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoCodigo;references:Codigo;constraint:OnDelete:SET NULL"`
}

func (DetalleVenta) TableName() string { return "detalles_venta" }
