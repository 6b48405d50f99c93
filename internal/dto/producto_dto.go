package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Codigo      string          `json:"codigo"        validate:"required,min=1,max=50"`
	Nombre      string          `json:"nombre"        validate:"required,min=1,max=200"`
	Categoria   string          `json:"categoria"     validate:"required"`
	PrecioMenor decimal.Decimal `json:"precio_menor"  validate:"min=0"`
	PrecioMayor decimal.Decimal `json:"precio_mayor"  validate:"min=0"`
	CostoCompra decimal.Decimal `json:"costo_compra"  validate:"min=0"`
	Unidad      *string         `json:"unidad"`
	CodigoBarra *string         `json:"codigo_barra"  validate:"omitempty,max=50"`
}

// ActualizarProductoRequest enumerates exactly the mutable fields; nil means
// "leave unchanged". Codigo is identity and cannot appear here.
type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"        validate:"omitempty,min=1,max=200"`
	Categoria   *string          `json:"categoria"     validate:"omitempty,min=1"`
	PrecioMenor *decimal.Decimal `json:"precio_menor"`
	PrecioMayor *decimal.Decimal `json:"precio_mayor"`
	CostoCompra *decimal.Decimal `json:"costo_compra"`
	Unidad      *string          `json:"unidad"`
	CodigoBarra *string          `json:"codigo_barra"  validate:"omitempty,max=50"`
}

type AsignarCodigoBarraRequest struct {
	CodigoBarra string `json:"codigo_barra" validate:"required,min=1,max=50"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductoFilter drives the catalog search. Query matches nombre, codigo and
// codigo_barra (case-insensitive substring, OR); Categoria is exact; the price
// range applies to the retail tier only.
type ProductoFilter struct {
	Query     string   `form:"q"`
	Categoria string   `form:"categoria"`
	PrecioMin *float64 `form:"precio_min"`
	PrecioMax *float64 `form:"precio_max"`
	// Limit is clamped server-side to [1,200]; 50 when absent.
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	Codigo              string          `json:"codigo"`
	Nombre              string          `json:"nombre"`
	Categoria           string          `json:"categoria"`
	PrecioMenor         decimal.Decimal `json:"precio_menor"`
	PrecioMayor         decimal.Decimal `json:"precio_mayor"`
	CostoCompra         decimal.Decimal `json:"costo_compra"`
	Unidad              *string         `json:"unidad"`
	CodigoBarra         *string         `json:"codigo_barra"`
	UltimaActualizacion string          `json:"ultima_actualizacion"` // YYYY-MM-DD
	// DiferenciaPorcentual is derived: (menor-mayor)/mayor*100, 0 when mayor is 0.
	DiferenciaPorcentual decimal.Decimal `json:"diferencia_porcentual"`
}

type ProductoListResponse struct {
	Data   []ProductoResponse `json:"data"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

// EstadisticasCatalogoResponse mirrors the /estadisticas report.
type EstadisticasCatalogoResponse struct {
	TotalProductos          int64            `json:"total_productos"`
	ProductosPorCategoria   map[string]int64 `json:"productos_por_categoria"`
	ProductosSinPrecio      int64            `json:"productos_sin_precio"`
	ProductosSinCodigoBarra int64            `json:"productos_sin_codigo_barra"`
	PromedioPrecioMenor     decimal.Decimal  `json:"promedio_precio_menor"`
	PromedioPrecioMayor     decimal.Decimal  `json:"promedio_precio_mayor"`
}

// ConsultaPreciosResponse is returned by the public price check endpoint (no side effects).
type ConsultaPreciosResponse struct {
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Categoria   string          `json:"categoria"`
	PrecioMenor decimal.Decimal `json:"precio_menor"`
	PrecioMayor decimal.Decimal `json:"precio_mayor"`
}
