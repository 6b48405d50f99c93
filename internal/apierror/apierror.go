// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// Stable machine-readable error codes. The frontend switches on these, so they
// never change once published.
const (
	CodeNotFound         = "not_found"
	CodeCodigoDuplicado  = "codigo_duplicado"
	CodeCodigoBarraEnUso = "codigo_barra_en_uso"
	CodeValidacion       = "validacion"
	CodeCarritoVacio     = "carrito_vacio"
	CodeProductoNoExiste = "producto_no_existe"
	CodeStorage          = "storage"
	CodeRateLimited      = "rate_limited"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func New(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: CodeValidacion, Detail: "Error de validacion", Fields: fields}
}
