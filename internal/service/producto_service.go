package service

import (
	"context"
	"errors"
	"time"

	"github.com/quepia/sistema-lafuga/internal/dto"
	"github.com/quepia/sistema-lafuga/internal/model"
	"github.com/quepia/sistema-lafuga/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductoService defines the business logic contract for the catalog.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	ObtenerPorCodigoBarra(ctx context.Context, barcode string) (*dto.ProductoResponse, error)
	Buscar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	ListarCategorias(ctx context.Context) ([]string, error)
	ListarSinCodigoBarra(ctx context.Context, limit, offset int) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, codigo string, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, codigo string) error
	AsignarCodigoBarra(ctx context.Context, codigo string, req dto.AsignarCodigoBarraRequest) (*dto.ProductoResponse, error)
	Estadisticas(ctx context.Context) (*dto.EstadisticasCatalogoResponse, error)
}

type productoService struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

// NewProductoService wires the catalog service. rdb may be nil (unit tests);
// it only backs best-effort invalidation of the public price-check cache.
func NewProductoService(repo repository.ProductoRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, rdb: rdb}
}

// hoy returns the current date at day granularity (UTC).
func hoy() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mapProducto(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		Codigo:               p.Codigo,
		Nombre:               p.Nombre,
		Categoria:            p.Categoria,
		PrecioMenor:          p.PrecioMenor,
		PrecioMayor:          p.PrecioMayor,
		CostoCompra:          p.CostoCompra,
		Unidad:               p.Unidad,
		CodigoBarra:          p.CodigoBarra,
		UltimaActualizacion:  p.UltimaActualizacion.Format("2006-01-02"),
		DiferenciaPorcentual: p.DiferenciaPorcentual(),
	}
}

func precioNegativo(precios ...decimal.Decimal) bool {
	for _, precio := range precios {
		if precio.IsNegative() {
			return true
		}
	}
	return false
}

// invalidarCachePrecio drops the cached price-check entry for one barcode.
// Best effort: a stale cache entry is tolerable, a blocked mutation is not.
func (s *productoService) invalidarCachePrecio(ctx context.Context, barcode *string) {
	if s.rdb == nil || barcode == nil || *barcode == "" {
		return
	}
	_ = s.rdb.Del(ctx, "precio:"+*barcode).Err()
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if precioNegativo(req.PrecioMenor, req.PrecioMayor, req.CostoCompra) {
		return nil, ErrValidacion
	}

	if _, err := s.repo.FindByCodigo(ctx, req.Codigo); err == nil {
		return nil, ErrCodigoDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// An empty barcode means "no barcode". Normalize to nil so the unique
	// index never compares '' against ''.
	if req.CodigoBarra != nil && *req.CodigoBarra == "" {
		req.CodigoBarra = nil
	}
	if req.CodigoBarra != nil {
		if _, err := s.repo.FindByCodigoBarra(ctx, *req.CodigoBarra); err == nil {
			return nil, ErrCodigoBarraEnUso
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	p := &model.Producto{
		Codigo:              req.Codigo,
		Nombre:              req.Nombre,
		Categoria:           req.Categoria,
		PrecioMenor:         req.PrecioMenor,
		PrecioMayor:         req.PrecioMayor,
		CostoCompra:         req.CostoCompra,
		Unidad:              req.Unidad,
		CodigoBarra:         req.CodigoBarra,
		UltimaActualizacion: hoy(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return mapProducto(p), nil
}

func (s *productoService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductoNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return mapProducto(p), nil
}

func (s *productoService) ObtenerPorCodigoBarra(ctx context.Context, barcode string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByCodigoBarra(ctx, barcode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductoNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return mapProducto(p), nil
}

func (s *productoService) Buscar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	productos, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *mapProducto(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:   data,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (s *productoService) ListarCategorias(ctx context.Context) ([]string, error) {
	return s.repo.ListCategorias(ctx)
}

func (s *productoService) ListarSinCodigoBarra(ctx context.Context, limit, offset int) (*dto.ProductoListResponse, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	productos, total, err := s.repo.ListSinCodigoBarra(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *mapProducto(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Limit: limit, Offset: offset}, nil
}

// Actualizar changes only the supplied fields. UltimaActualizacion is always
// bumped, even when the request turns out to be a no-op on field values.
func (s *productoService) Actualizar(ctx context.Context, codigo string, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductoNoEncontrado
	}
	if err != nil {
		return nil, err
	}

	barcodeAnterior := p.CodigoBarra

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Categoria != nil {
		p.Categoria = *req.Categoria
	}
	if req.PrecioMenor != nil {
		p.PrecioMenor = *req.PrecioMenor
	}
	if req.PrecioMayor != nil {
		p.PrecioMayor = *req.PrecioMayor
	}
	if req.CostoCompra != nil {
		p.CostoCompra = *req.CostoCompra
	}
	if req.Unidad != nil {
		p.Unidad = req.Unidad
	}
	if req.CodigoBarra != nil {
		if *req.CodigoBarra != "" {
			holder, err := s.repo.FindByCodigoBarra(ctx, *req.CodigoBarra)
			if err == nil && holder.Codigo != p.Codigo {
				return nil, ErrCodigoBarraEnUso
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			p.CodigoBarra = req.CodigoBarra
		} else {
			p.CodigoBarra = nil
		}
	}

	if precioNegativo(p.PrecioMenor, p.PrecioMayor, p.CostoCompra) {
		return nil, ErrValidacion
	}

	p.UltimaActualizacion = hoy()
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.invalidarCachePrecio(ctx, barcodeAnterior)
	s.invalidarCachePrecio(ctx, p.CodigoBarra)
	return mapProducto(p), nil
}

func (s *productoService) Eliminar(ctx context.Context, codigo string) error {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductoNoEncontrado
	}
	if err != nil {
		return err
	}

	ok, err := s.repo.Delete(ctx, codigo)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductoNoEncontrado
	}

	s.invalidarCachePrecio(ctx, p.CodigoBarra)
	return nil
}

func (s *productoService) AsignarCodigoBarra(ctx context.Context, codigo string, req dto.AsignarCodigoBarraRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductoNoEncontrado
	}
	if err != nil {
		return nil, err
	}

	holder, err := s.repo.FindByCodigoBarra(ctx, req.CodigoBarra)
	if err == nil && holder.Codigo != p.Codigo {
		return nil, ErrCodigoBarraEnUso
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	barcodeAnterior := p.CodigoBarra
	p.CodigoBarra = &req.CodigoBarra
	p.UltimaActualizacion = hoy()
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.invalidarCachePrecio(ctx, barcodeAnterior)
	s.invalidarCachePrecio(ctx, p.CodigoBarra)
	return mapProducto(p), nil
}

func (s *productoService) Estadisticas(ctx context.Context) (*dto.EstadisticasCatalogoResponse, error) {
	return s.repo.Estadisticas(ctx)
}
