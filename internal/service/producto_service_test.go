package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/quepia/sistema-lafuga/internal/dto"
	"github.com/quepia/sistema-lafuga/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildProductoSvc() (service.ProductoService, *stubProductoRepo) {
	repo := newStubProductoRepo()
	return service.NewProductoService(repo, nil), repo
}

func TestCrearProducto(t *testing.T) {
	svc, repo := buildProductoSvc()

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Codigo:      "GAL-001",
		Nombre:      "Galletitas surtidas",
		Categoria:   "Almacen",
		PrecioMenor: decimal.NewFromFloat(1850),
		PrecioMayor: decimal.NewFromFloat(1520),
		CostoCompra: decimal.NewFromFloat(1100),
		CodigoBarra: ptr("7791234500017"),
	})
	require.NoError(t, err)
	assert.Equal(t, "GAL-001", resp.Codigo)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), resp.UltimaActualizacion)

	stored, ok := repo.productos["GAL-001"]
	require.True(t, ok)
	assert.Equal(t, "Almacen", stored.Categoria)
}

func TestCrearProducto_CodigoDuplicado(t *testing.T) {
	svc, repo := buildProductoSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1850, 1520, nil)

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Codigo:    "GAL-001",
		Nombre:    "Otro producto",
		Categoria: "Almacen",
	})
	assert.ErrorIs(t, err, service.ErrCodigoDuplicado)
}

func TestCrearProducto_CodigoBarraEnUso(t *testing.T) {
	svc, repo := buildProductoSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1850, 1520, ptr("7791234500017"))

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Codigo:      "ARR-010",
		Nombre:      "Arroz",
		Categoria:   "Almacen",
		CodigoBarra: ptr("7791234500017"),
	})
	assert.ErrorIs(t, err, service.ErrCodigoBarraEnUso)
}

func TestCrearProducto_CodigoBarraVacioNoColisiona(t *testing.T) {
	svc, repo := buildProductoSvc()

	// Two products sent with codigo_barra "" must both succeed: empty means
	// "no barcode" and is stored as NULL, never as '' under the unique index.
	for _, codigo := range []string{"SAL-001", "SAL-002"} {
		resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
			Codigo:      codigo,
			Nombre:      "Sal fina " + codigo,
			Categoria:   "Almacen",
			PrecioMenor: decimal.NewFromFloat(900),
			PrecioMayor: decimal.NewFromFloat(750),
			CostoCompra: decimal.NewFromFloat(500),
			CodigoBarra: ptr(""),
		})
		require.NoError(t, err)
		assert.Nil(t, resp.CodigoBarra)
	}
	assert.Nil(t, repo.productos["SAL-001"].CodigoBarra)
	assert.Nil(t, repo.productos["SAL-002"].CodigoBarra)
}

func TestCrearProducto_PrecioNegativo(t *testing.T) {
	svc, _ := buildProductoSvc()

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Codigo:      "MAL-001",
		Nombre:      "Precio roto",
		Categoria:   "Almacen",
		PrecioMenor: decimal.NewFromFloat(-10),
	})
	assert.ErrorIs(t, err, service.ErrValidacion)
}

func TestObtenerPorCodigo_NoEncontrado(t *testing.T) {
	svc, _ := buildProductoSvc()

	_, err := svc.ObtenerPorCodigo(context.Background(), "NO-EXISTE")
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}

func TestActualizarProducto_Parcial(t *testing.T) {
	svc, repo := buildProductoSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1850, 1520, nil)

	nuevoNombre := "Galletitas premium"
	resp, err := svc.Actualizar(context.Background(), "GAL-001", dto.ActualizarProductoRequest{
		Nombre: &nuevoNombre,
	})
	require.NoError(t, err)
	assert.Equal(t, "Galletitas premium", resp.Nombre)
	// Untouched fields survive.
	assert.Equal(t, "1850", resp.PrecioMenor.String())
	assert.Equal(t, "1520", resp.PrecioMayor.String())
	// The modification date is bumped even for a name-only change.
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), resp.UltimaActualizacion)
}

func TestActualizarProducto_CodigoBarraDeOtro(t *testing.T) {
	svc, repo := buildProductoSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1850, 1520, ptr("7791234500017"))
	seedProducto(repo, "ARR-010", "Arroz", "Almacen", 1290, 1050, nil)

	_, err := svc.Actualizar(context.Background(), "ARR-010", dto.ActualizarProductoRequest{
		CodigoBarra: ptr("7791234500017"),
	})
	assert.ErrorIs(t, err, service.ErrCodigoBarraEnUso)
}

func TestActualizarProducto_QuitarCodigoBarra(t *testing.T) {
	svc, repo := buildProductoSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1850, 1520, ptr("7791234500017"))

	resp, err := svc.Actualizar(context.Background(), "GAL-001", dto.ActualizarProductoRequest{
		CodigoBarra: ptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.CodigoBarra)
}

func TestEliminarProducto(t *testing.T) {
	svc, repo := buildProductoSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1850, 1520, nil)

	require.NoError(t, svc.Eliminar(context.Background(), "GAL-001"))
	_, ok := repo.productos["GAL-001"]
	assert.False(t, ok)

	err := svc.Eliminar(context.Background(), "GAL-001")
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}

func TestAsignarCodigoBarra(t *testing.T) {
	svc, repo := buildProductoSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1850, 1520, nil)

	resp, err := svc.AsignarCodigoBarra(context.Background(), "GAL-001", dto.AsignarCodigoBarraRequest{
		CodigoBarra: "7791234500017",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.CodigoBarra)
	assert.Equal(t, "7791234500017", *resp.CodigoBarra)

	// Re-assigning the same barcode to the same product is idempotent.
	_, err = svc.AsignarCodigoBarra(context.Background(), "GAL-001", dto.AsignarCodigoBarraRequest{
		CodigoBarra: "7791234500017",
	})
	assert.NoError(t, err)

	// But another product cannot take it.
	seedProducto(repo, "ARR-010", "Arroz", "Almacen", 1290, 1050, nil)
	_, err = svc.AsignarCodigoBarra(context.Background(), "ARR-010", dto.AsignarCodigoBarraRequest{
		CodigoBarra: "7791234500017",
	})
	assert.ErrorIs(t, err, service.ErrCodigoBarraEnUso)
}

func TestBuscar_FiltroCategoria(t *testing.T) {
	svc, repo := buildProductoSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1850, 1520, nil)
	seedProducto(repo, "LIM-205", "Lavandina", "Limpieza", 980, 790, nil)

	resp, err := svc.Buscar(context.Background(), dto.ProductoFilter{Categoria: "Limpieza", Limit: 50})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "LIM-205", resp.Data[0].Codigo)
	assert.EqualValues(t, 1, resp.Total)
}

func TestBuscar_LimiteMaximo(t *testing.T) {
	svc, repo := buildProductoSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1850, 1520, nil)

	resp, err := svc.Buscar(context.Background(), dto.ProductoFilter{Limit: 999})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Limit)
}
