package dto

import "github.com/shopspring/decimal"

type HistorialPrecioResponse struct {
	ID                 uint            `json:"id"`
	ProductoCodigo     string          `json:"producto_codigo"`
	MenorAntes         decimal.Decimal `json:"menor_antes"`
	MenorDespues       decimal.Decimal `json:"menor_despues"`
	MayorAntes         decimal.Decimal `json:"mayor_antes"`
	MayorDespues       decimal.Decimal `json:"mayor_despues"`
	PorcentajeAplicado decimal.Decimal `json:"porcentaje_aplicado"`
	Motivo             string          `json:"motivo"`
	CreatedAt          string          `json:"created_at"` // RFC 3339
}

type HistorialPrecioListResponse struct {
	Data   []HistorialPrecioResponse `json:"data"`
	Total  int64                     `json:"total"`
	Limit  int                       `json:"limit"`
	Offset int                       `json:"offset"`
}
