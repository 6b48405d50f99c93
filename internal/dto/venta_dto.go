package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoCodigo string          `json:"producto_codigo" validate:"required,min=1,max=50"`
	Cantidad       decimal.Decimal `json:"cantidad"`
}

type CrearVentaRequest struct {
	ClienteNombre string             `json:"cliente_nombre"`
	TipoVenta     string             `json:"tipo_venta"    validate:"required,oneof=Minorista Mayorista"`
	Observaciones *string            `json:"observaciones"`
	// ClienteEmail, when present, triggers an async PDF receipt email after the
	// sale is committed. Best-effort: never affects the sale itself.
	ClienteEmail *string            `json:"cliente_email" validate:"omitempty,email"`
	Items        []ItemVentaRequest `json:"items"         validate:"dive"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type VentaFilter struct {
	TipoVenta  string `form:"tipo_venta"`
	FechaDesde string `form:"fecha_desde"`
	FechaHasta string `form:"fecha_hasta"`
	// Limit is clamped server-side to [1,200]; 50 when absent.
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ID uint `json:"id"`
	// ProductoCodigo is the weak reference; nil once the product was deleted.
	ProductoCodigo *string `json:"producto_codigo"`
	// Frozen snapshot fields, authoritative for display regardless of the
	// current catalog state.
	CodigoProducto string          `json:"codigo_producto"`
	NombreProducto string          `json:"nombre_producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID            uint                   `json:"id"`
	Fecha         string                 `json:"fecha"` // RFC 3339
	ClienteNombre string                 `json:"cliente_nombre"`
	TipoVenta     string                 `json:"tipo_venta"`
	Observaciones *string                `json:"observaciones"`
	Total         decimal.Decimal        `json:"total"`
	Detalles      []DetalleVentaResponse `json:"detalles"`
}

type VentaListResponse struct {
	Data   []VentaResponse `json:"data"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type EstadisticasVentasResponse struct {
	TotalVentas   int64                      `json:"total_ventas"`
	TotalMonto    decimal.Decimal            `json:"total_monto"`
	VentasPorTipo map[string]int64           `json:"ventas_por_tipo"`
	MontoPorTipo  map[string]decimal.Decimal `json:"monto_por_tipo"`
}
