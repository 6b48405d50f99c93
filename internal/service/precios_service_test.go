package service_test

import (
	"context"
	"testing"

	"github.com/quepia/sistema-lafuga/internal/dto"
	"github.com/quepia/sistema-lafuga/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPreciosSvc() (service.PreciosService, *stubProductoRepo, *stubHistorialRepo) {
	productos := newStubProductoRepo()
	historial := &stubHistorialRepo{}
	return service.NewPreciosService(productos, historial, nil), productos, historial
}

func TestAjusteMasivo_SinSelector(t *testing.T) {
	svc, repo, historial := buildPreciosSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1000, 800, nil)

	resp, err := svc.AjusteMasivo(context.Background(), dto.ActualizacionMasivaRequest{
		Porcentaje: decimal.NewFromFloat(10),
		AplicarA:   dto.AplicarAAmbos,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ProductosActualizados)
	// Nothing touched.
	assert.Equal(t, "1000", repo.productos["GAL-001"].PrecioMenor.String())
	assert.Empty(t, historial.filas)
}

func TestAjusteMasivo_PorCategoria(t *testing.T) {
	svc, repo, historial := buildPreciosSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1000, 800, nil)
	seedProducto(repo, "ARR-010", "Arroz", "Almacen", 500, 400, nil)
	seedProducto(repo, "LIM-205", "Lavandina", "Limpieza", 980, 790, nil)

	resp, err := svc.AjusteMasivo(context.Background(), dto.ActualizacionMasivaRequest{
		Categoria:  ptr("Almacen"),
		Porcentaje: decimal.NewFromFloat(10),
		AplicarA:   dto.AplicarAAmbos,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ProductosActualizados)

	assert.Equal(t, "1100", repo.productos["GAL-001"].PrecioMenor.String())
	assert.Equal(t, "880", repo.productos["GAL-001"].PrecioMayor.String())
	assert.Equal(t, "550", repo.productos["ARR-010"].PrecioMenor.String())
	// Other categories untouched.
	assert.Equal(t, "980", repo.productos["LIM-205"].PrecioMenor.String())

	// One history row per adjusted product, carrying before/after.
	require.Len(t, historial.filas, 2)
	for _, h := range historial.filas {
		assert.Equal(t, "actualizacion_masiva", h.Motivo)
		assert.Equal(t, "10", h.PorcentajeAplicado.String())
	}
}

func TestAjusteMasivo_PorCodigos_SoloMenor(t *testing.T) {
	svc, repo, _ := buildPreciosSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1000, 800, nil)
	seedProducto(repo, "ARR-010", "Arroz", "Almacen", 500, 400, nil)

	resp, err := svc.AjusteMasivo(context.Background(), dto.ActualizacionMasivaRequest{
		Codigos:    []string{"GAL-001"},
		Porcentaje: decimal.NewFromFloat(-5),
		AplicarA:   dto.AplicarAMenor,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProductosActualizados)

	assert.Equal(t, "950", repo.productos["GAL-001"].PrecioMenor.String())
	// The wholesale tier and the unselected product stay put.
	assert.Equal(t, "800", repo.productos["GAL-001"].PrecioMayor.String())
	assert.Equal(t, "500", repo.productos["ARR-010"].PrecioMenor.String())
}

func TestAjusteMasivo_PorcentajeCero(t *testing.T) {
	svc, repo, historial := buildPreciosSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1000, 800, nil)
	fechaOriginal := repo.productos["GAL-001"].UltimaActualizacion

	// 0% is a valid adjustment: prices stay put, but the products count as
	// touched, ultima_actualizacion moves and a history row is recorded.
	resp, err := svc.AjusteMasivo(context.Background(), dto.ActualizacionMasivaRequest{
		Categoria:  ptr("Almacen"),
		Porcentaje: decimal.Zero,
		AplicarA:   dto.AplicarAAmbos,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProductosActualizados)

	assert.Equal(t, "1000", repo.productos["GAL-001"].PrecioMenor.String())
	assert.Equal(t, "800", repo.productos["GAL-001"].PrecioMayor.String())
	assert.True(t, repo.productos["GAL-001"].UltimaActualizacion.After(fechaOriginal))

	require.Len(t, historial.filas, 1)
	assert.Equal(t, "0", historial.filas[0].PorcentajeAplicado.String())
}

func TestAjusteMasivo_Redondeo(t *testing.T) {
	svc, repo, _ := buildPreciosSvc()
	// 10.05 × 1.1 = 11.055 → rounds half away from zero to 11.06
	seedProducto(repo, "RED-001", "Redondeo", "Almacen", 10.05, 10.05, nil)

	_, err := svc.AjusteMasivo(context.Background(), dto.ActualizacionMasivaRequest{
		Codigos:    []string{"RED-001"},
		Porcentaje: decimal.NewFromFloat(10),
		AplicarA:   dto.AplicarAAmbos,
	})
	require.NoError(t, err)
	assert.Equal(t, "11.06", repo.productos["RED-001"].PrecioMenor.String())
}

func TestAjusteMasivo_Preview(t *testing.T) {
	svc, repo, historial := buildPreciosSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1000, 800, nil)

	resp, err := svc.AjusteMasivo(context.Background(), dto.ActualizacionMasivaRequest{
		Categoria:  ptr("Almacen"),
		Porcentaje: decimal.NewFromFloat(25),
		AplicarA:   dto.AplicarAAmbos,
		Preview:    true,
	})
	require.NoError(t, err)
	assert.True(t, resp.Preview)
	assert.Equal(t, 1, resp.ProductosActualizados)
	require.Len(t, resp.Cambios, 1)
	assert.Equal(t, "1000", resp.Cambios[0].MenorActual.String())
	assert.Equal(t, "1250", resp.Cambios[0].MenorNuevo.String())

	// Preview writes nothing.
	assert.Equal(t, "1000", repo.productos["GAL-001"].PrecioMenor.String())
	assert.Empty(t, historial.filas)
}

func TestAjusteMasivo_AplicarAInvalido(t *testing.T) {
	svc, _, _ := buildPreciosSvc()

	_, err := svc.AjusteMasivo(context.Background(), dto.ActualizacionMasivaRequest{
		Codigos:    []string{"GAL-001"},
		Porcentaje: decimal.NewFromFloat(10),
		AplicarA:   "otro",
	})
	assert.ErrorIs(t, err, service.ErrValidacion)
}

func TestHistorialPorProducto(t *testing.T) {
	svc, repo, _ := buildPreciosSvc()
	seedProducto(repo, "GAL-001", "Galletitas", "Almacen", 1000, 800, nil)

	for _, pct := range []float64{10, -5} {
		_, err := svc.AjusteMasivo(context.Background(), dto.ActualizacionMasivaRequest{
			Codigos:    []string{"GAL-001"},
			Porcentaje: decimal.NewFromFloat(pct),
			AplicarA:   dto.AplicarAAmbos,
		})
		require.NoError(t, err)
	}

	resp, err := svc.HistorialPorProducto(context.Background(), "GAL-001", 50, 0)
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	// Newest first: the -5% adjustment over the already-raised price.
	assert.Equal(t, "-5", resp.Data[0].PorcentajeAplicado.String())
	assert.Equal(t, "1100", resp.Data[0].MenorAntes.String())
	assert.Equal(t, "1045", resp.Data[0].MenorDespues.String())
}
