package service

import (
	"errors"
	"fmt"
)

// Every failure the core can produce maps to one of these stable kinds, so the
// HTTP layer can pick the right status code. None is ever swallowed: anything
// not listed here surfaces to the caller as a storage error.
var (
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrVentaNoEncontrada    = errors.New("venta no encontrada")
	ErrCodigoDuplicado      = errors.New("ya existe un producto con ese código")
	ErrCodigoBarraEnUso     = errors.New("el código de barras ya pertenece a otro producto")
	ErrValidacion           = errors.New("datos inválidos")
	ErrCarritoVacio         = errors.New("la venta no tiene items")
	ErrCantidadInvalida     = errors.New("la cantidad debe ser mayor a cero")
)

// ProductoNoExisteError reports which code was missing while building a sale.
// It aborts the whole sale: no partial venta is ever persisted.
type ProductoNoExisteError struct {
	Codigo string
}

func (e *ProductoNoExisteError) Error() string {
	return fmt.Sprintf("producto con código %s no encontrado", e.Codigo)
}
