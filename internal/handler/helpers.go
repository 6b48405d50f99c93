package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/quepia/sistema-lafuga/internal/apierror"
	"github.com/quepia/sistema-lafuga/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails,
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidacion, "JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError translates domain errors into the stable wire taxonomy.
// Anything unrecognized is a storage-level failure: logged by the error
// handler middleware, opaque 500 to the client.
func respondError(c *gin.Context, err error) {
	var noExiste *service.ProductoNoExisteError
	switch {
	case errors.Is(err, service.ErrProductoNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(apierror.CodeNotFound, "Producto no encontrado"))
	case errors.Is(err, service.ErrVentaNoEncontrada):
		c.JSON(http.StatusNotFound, apierror.New(apierror.CodeNotFound, "Venta no encontrada"))
	case errors.Is(err, service.ErrCodigoDuplicado):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeCodigoDuplicado, "Ya existe un producto con ese codigo"))
	case errors.Is(err, service.ErrCodigoBarraEnUso):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeCodigoBarraEnUso, "El codigo de barras ya esta asignado a otro producto"))
	case errors.Is(err, service.ErrCarritoVacio):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(apierror.CodeCarritoVacio, "La venta no tiene items"))
	case errors.Is(err, service.ErrCantidadInvalida):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(apierror.CodeValidacion, "La cantidad debe ser mayor a cero"))
	case errors.Is(err, service.ErrValidacion):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(apierror.CodeValidacion, err.Error()))
	case errors.As(err, &noExiste):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(apierror.CodeProductoNoExiste, noExiste.Error()))
	default:
		// Attach and abort; the ErrorHandler middleware logs it with request
		// context and writes the opaque 500.
		_ = c.Error(err)
		c.Abort()
	}
}
