package service

import (
	"context"
	"errors"
	"time"

	"github.com/quepia/sistema-lafuga/internal/dto"
	"github.com/quepia/sistema-lafuga/internal/model"
	"github.com/quepia/sistema-lafuga/internal/repository"
	"github.com/quepia/sistema-lafuga/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	Crear(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Estadisticas(ctx context.Context) (*dto.EstadisticasVentasResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	dispatcher   *worker.Dispatcher
}

// NewVentaService wires the sales ledger. dispatcher may be nil (unit tests);
// it only backs the best-effort receipt email pipeline.
func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{repo: repo, productoRepo: productoRepo, dispatcher: dispatcher}
}

// Crear builds and persists a sale:
//  1. Validate the cart (non-empty, all quantities > 0) before touching anything.
//  2. Resolve every product and freeze code, name and the tier price for the
//     sale type. A missing product aborts the whole sale.
//  3. Compute subtotals and the total server-side.
//  4. Persist venta + detalles in one transaction.
//  5. (async, best-effort) enqueue the PDF receipt email when an address came in.
func (s *ventaService) Crear(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrCarritoVacio
	}
	for _, item := range req.Items {
		if item.Cantidad.LessThanOrEqual(decimal.Zero) {
			return nil, ErrCantidadInvalida
		}
	}

	// Resolve products and freeze prices (pre-flight, outside the TX: any
	// failure here means nothing was staged yet).
	detalles := make([]model.DetalleVenta, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		p, err := s.productoRepo.FindByCodigo(ctx, item.ProductoCodigo)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductoNoExisteError{Codigo: item.ProductoCodigo}
		}
		if err != nil {
			return nil, err
		}

		precio := p.PrecioMenor
		if req.TipoVenta == model.TipoVentaMayorista {
			precio = p.PrecioMayor
		}
		subtotal := precio.Mul(item.Cantidad).Round(2)
		total = total.Add(subtotal)

		codigo := p.Codigo
		detalles = append(detalles, model.DetalleVenta{
			ProductoCodigo: &codigo,
			CodigoProducto: p.Codigo,
			NombreProducto: p.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: precio,
			Subtotal:       subtotal,
		})
	}

	clienteNombre := req.ClienteNombre
	if clienteNombre == "" {
		clienteNombre = "Cliente General"
	}

	venta := model.Venta{
		Fecha:         time.Now().UTC(),
		ClienteNombre: clienteNombre,
		TipoVenta:     req.TipoVenta,
		Observaciones: req.Observaciones,
		Total:         total.Round(2),
		Detalles:      detalles,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &venta)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt email is fire and forget, never affects the committed sale.
	if s.dispatcher != nil && req.ClienteEmail != nil && *req.ClienteEmail != "" {
		_ = s.dispatcher.EnqueueRecibo(ctx, worker.ReciboJobPayload{
			VentaID:      venta.ID,
			ClienteEmail: *req.ClienteEmail,
		})
	}

	return mapVenta(&venta), nil
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id uint) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVentaNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return mapVenta(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.TipoVenta != "" &&
		filter.TipoVenta != model.TipoVentaMinorista &&
		filter.TipoVenta != model.TipoVentaMayorista {
		return nil, ErrValidacion
	}
	for _, fecha := range []string{filter.FechaDesde, filter.FechaHasta} {
		if fecha == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", fecha); err != nil {
			return nil, ErrValidacion
		}
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *mapVenta(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:   data,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (s *ventaService) Estadisticas(ctx context.Context) (*dto.EstadisticasVentasResponse, error) {
	return s.repo.Estadisticas(ctx)
}

func mapVenta(v *model.Venta) *dto.VentaResponse {
	detalles := make([]dto.DetalleVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		detalles = append(detalles, dto.DetalleVentaResponse{
			ID:             d.ID,
			ProductoCodigo: d.ProductoCodigo,
			CodigoProducto: d.CodigoProducto,
			NombreProducto: d.NombreProducto,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return &dto.VentaResponse{
		ID:            v.ID,
		Fecha:         v.Fecha.Format(time.RFC3339),
		ClienteNombre: v.ClienteNombre,
		TipoVenta:     v.TipoVenta,
		Observaciones: v.Observaciones,
		Total:         v.Total,
		Detalles:      detalles,
	}
}
