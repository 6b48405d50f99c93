package service

import (
	"context"

	"github.com/quepia/sistema-lafuga/internal/dto"
	"github.com/quepia/sistema-lafuga/internal/model"
	"github.com/quepia/sistema-lafuga/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PreciosService implements the bulk price adjustment engine.
type PreciosService interface {
	// AjusteMasivo applies a percentage to the selected products' price tiers
	// as a single atomic unit. Without a selector it is a no-op returning 0.
	AjusteMasivo(ctx context.Context, req dto.ActualizacionMasivaRequest) (*dto.ActualizacionMasivaResponse, error)
	HistorialPorProducto(ctx context.Context, codigo string, limit, offset int) (*dto.HistorialPrecioListResponse, error)
}

type preciosService struct {
	productos repository.ProductoRepository
	historial repository.HistorialPrecioRepository
	rdb       *redis.Client
}

func NewPreciosService(
	productos repository.ProductoRepository,
	historial repository.HistorialPrecioRepository,
	rdb *redis.Client,
) PreciosService {
	return &preciosService{productos: productos, historial: historial, rdb: rdb}
}

var uno = decimal.NewFromInt(1)
var cien = decimal.NewFromInt(100)

// ajustar applies the percentage factor to one price and rounds to 2 decimals,
// half away from zero. The same rule is used everywhere money is rounded.
func ajustar(precio, factor decimal.Decimal) decimal.Decimal {
	return precio.Mul(factor).Round(2)
}

func (s *preciosService) AjusteMasivo(ctx context.Context, req dto.ActualizacionMasivaRequest) (*dto.ActualizacionMasivaResponse, error) {
	categoria := ""
	if req.Categoria != nil {
		categoria = *req.Categoria
	}

	// Safety guard: no selector means no-op, never "everything".
	if categoria == "" && len(req.Codigos) == 0 {
		return &dto.ActualizacionMasivaResponse{ProductosActualizados: 0, Preview: req.Preview}, nil
	}

	aplicaMenor := req.AplicarA == dto.AplicarAMenor || req.AplicarA == dto.AplicarAAmbos
	aplicaMayor := req.AplicarA == dto.AplicarAMayor || req.AplicarA == dto.AplicarAAmbos
	if !aplicaMenor && !aplicaMayor {
		return nil, ErrValidacion
	}

	factor := uno.Add(req.Porcentaje.Div(cien))
	fecha := hoy()

	var cambios []dto.CambioPrecio
	var barcodes []string
	count := 0

	txErr := runTx(ctx, s.productos.DB(), func(tx *gorm.DB) error {
		productos, err := s.productos.FindBySelectorTx(tx, categoria, req.Codigos)
		if err != nil {
			return err
		}

		for i := range productos {
			p := &productos[i]

			nuevoMenor := p.PrecioMenor
			nuevoMayor := p.PrecioMayor
			if aplicaMenor {
				nuevoMenor = ajustar(p.PrecioMenor, factor)
			}
			if aplicaMayor {
				nuevoMayor = ajustar(p.PrecioMayor, factor)
			}

			cambios = append(cambios, dto.CambioPrecio{
				Codigo:      p.Codigo,
				Nombre:      p.Nombre,
				MenorActual: p.PrecioMenor,
				MenorNuevo:  nuevoMenor,
				MayorActual: p.PrecioMayor,
				MayorNuevo:  nuevoMayor,
			})

			if req.Preview {
				count++
				continue
			}

			if err := s.productos.UpdatePreciosTx(tx, p.Codigo, nuevoMenor, nuevoMayor, fecha); err != nil {
				return err
			}
			if err := s.historial.CreateTx(tx, &model.HistorialPrecio{
				ProductoCodigo:     p.Codigo,
				MenorAntes:         p.PrecioMenor,
				MenorDespues:       nuevoMenor,
				MayorAntes:         p.PrecioMayor,
				MayorDespues:       nuevoMayor,
				PorcentajeAplicado: req.Porcentaje,
				Motivo:             "actualizacion_masiva",
			}); err != nil {
				return err
			}

			if p.CodigoBarra != nil && *p.CodigoBarra != "" {
				barcodes = append(barcodes, *p.CodigoBarra)
			}
			count++
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Cache invalidation happens after commit so readers never see a dropped
	// cache refilled with pre-adjustment prices.
	if s.rdb != nil {
		for _, barcode := range barcodes {
			_ = s.rdb.Del(ctx, "precio:"+barcode).Err()
		}
	}

	resp := &dto.ActualizacionMasivaResponse{
		ProductosActualizados: count,
		Preview:               req.Preview,
	}
	if req.Preview {
		resp.Cambios = cambios
	}
	return resp, nil
}

func (s *preciosService) HistorialPorProducto(ctx context.Context, codigo string, limit, offset int) (*dto.HistorialPrecioListResponse, error) {
	filas, total, err := s.historial.ListByProducto(ctx, codigo, limit, offset)
	if err != nil {
		return nil, err
	}
	data := make([]dto.HistorialPrecioResponse, 0, len(filas))
	for _, h := range filas {
		data = append(data, dto.HistorialPrecioResponse{
			ID:                 h.ID,
			ProductoCodigo:     h.ProductoCodigo,
			MenorAntes:         h.MenorAntes,
			MenorDespues:       h.MenorDespues,
			MayorAntes:         h.MayorAntes,
			MayorDespues:       h.MayorDespues,
			PorcentajeAplicado: h.PorcentajeAplicado,
			Motivo:             h.Motivo,
			CreatedAt:          h.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return &dto.HistorialPrecioListResponse{Data: data, Total: total, Limit: limit, Offset: offset}, nil
}
