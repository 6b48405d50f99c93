package dto

import "github.com/shopspring/decimal"

// Price tier selectors for bulk adjustments.
const (
	AplicarAMenor = "menor"
	AplicarAMayor = "mayor"
	AplicarAAmbos = "ambos"
)

// ActualizacionMasivaRequest selects products by exactly one of Categoria or
// Codigos. When neither is supplied the operation is a deliberate no-op: a
// guard against accidentally repricing the whole catalog.
type ActualizacionMasivaRequest struct {
	Categoria *string  `json:"categoria"`
	Codigos   []string `json:"codigos"`
	// Porcentaje may be negative (discount) or zero, which rewrites the same
	// prices but still bumps ultima_actualizacion and records history.
	Porcentaje decimal.Decimal `json:"porcentaje"`
	AplicarA   string          `json:"aplicar_a"  validate:"required,oneof=menor mayor ambos"`
	// Preview computes the would-be prices without persisting anything.
	Preview bool `json:"preview"`
}

type CambioPrecio struct {
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	MenorActual decimal.Decimal `json:"menor_actual"`
	MenorNuevo  decimal.Decimal `json:"menor_nuevo"`
	MayorActual decimal.Decimal `json:"mayor_actual"`
	MayorNuevo  decimal.Decimal `json:"mayor_nuevo"`
}

type ActualizacionMasivaResponse struct {
	ProductosActualizados int            `json:"productos_actualizados"`
	Preview               bool           `json:"preview"`
	Cambios               []CambioPrecio `json:"cambios,omitempty"`
}
