package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/quepia/sistema-lafuga/internal/dto"
	"github.com/quepia/sistema-lafuga/internal/model"
	"github.com/quepia/sistema-lafuga/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductoRepo is an in-memory ProductoRepository. Missing rows surface as
// gorm.ErrRecordNotFound, matching what services expect from the real repo.
type stubProductoRepo struct {
	productos map[string]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[string]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	// Mirrors the unique index on codigo_barra: any pair of equal non-NULL
	// values collides, the empty string included.
	if p.CodigoBarra != nil {
		for _, otro := range r.productos {
			if otro.CodigoBarra != nil && *otro.CodigoBarra == *p.CodigoBarra {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	cp := *p
	r.productos[p.Codigo] = &cp
	return nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	p, ok := r.productos[codigo]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByCodigoBarra(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarra != nil && *p.CodigoBarra == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) Search(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if filter.Categoria != "" && p.Categoria != filter.Categoria {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListCategorias(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var categorias []string
	for _, p := range r.productos {
		if !seen[p.Categoria] {
			seen[p.Categoria] = true
			categorias = append(categorias, p.Categoria)
		}
	}
	sort.Strings(categorias)
	return categorias, nil
}

func (r *stubProductoRepo) ListSinCodigoBarra(_ context.Context, _, _ int) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.CodigoBarra == nil || *p.CodigoBarra == "" {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Save(_ context.Context, p *model.Producto) error {
	cp := *p
	r.productos[p.Codigo] = &cp
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, codigo string) (bool, error) {
	if _, ok := r.productos[codigo]; !ok {
		return false, nil
	}
	delete(r.productos, codigo)
	return true, nil
}

func (r *stubProductoRepo) Estadisticas(_ context.Context) (*dto.EstadisticasCatalogoResponse, error) {
	return &dto.EstadisticasCatalogoResponse{
		TotalProductos:        int64(len(r.productos)),
		ProductosPorCategoria: make(map[string]int64),
	}, nil
}

func (r *stubProductoRepo) FindBySelectorTx(_ *gorm.DB, categoria string, codigos []string) ([]model.Producto, error) {
	var out []model.Producto
	switch {
	case categoria != "":
		for _, p := range r.productos {
			if p.Categoria == categoria {
				out = append(out, *p)
			}
		}
	default:
		for _, codigo := range codigos {
			if p, ok := r.productos[codigo]; ok {
				out = append(out, *p)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codigo < out[j].Codigo })
	return out, nil
}

func (r *stubProductoRepo) UpdatePreciosTx(_ *gorm.DB, codigo string, menor, mayor decimal.Decimal, fecha time.Time) error {
	p, ok := r.productos[codigo]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.PrecioMenor = menor
	p.PrecioMayor = mayor
	p.UltimaActualizacion = fecha
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// stubHistorialRepo captures created history rows for assertion.
type stubHistorialRepo struct {
	filas []model.HistorialPrecio
}

func (r *stubHistorialRepo) CreateTx(_ *gorm.DB, h *model.HistorialPrecio) error {
	h.ID = uint(len(r.filas) + 1)
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	r.filas = append(r.filas, *h)
	return nil
}

func (r *stubHistorialRepo) ListByProducto(_ context.Context, codigo string, _, _ int) ([]model.HistorialPrecio, int64, error) {
	var out []model.HistorialPrecio
	for i := len(r.filas) - 1; i >= 0; i-- {
		if r.filas[i].ProductoCodigo == codigo {
			out = append(out, r.filas[i])
		}
	}
	return out, int64(len(out)), nil
}

var _ repository.HistorialPrecioRepository = (*stubHistorialRepo)(nil)

// stubVentaRepo is an in-memory VentaRepository.
type stubVentaRepo struct {
	ventas map[uint]*model.Venta
	seq    uint
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uint]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.seq++
	v.ID = r.seq
	for i := range v.Detalles {
		v.Detalles[i].ID = uint(i + 1)
		v.Detalles[i].VentaID = v.ID
	}
	cp := *v
	r.ventas[v.ID] = &cp
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uint) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if filter.TipoVenta != "" && v.TipoVenta != filter.TipoVenta {
			continue
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) Estadisticas(_ context.Context) (*dto.EstadisticasVentasResponse, error) {
	resp := &dto.EstadisticasVentasResponse{
		VentasPorTipo: make(map[string]int64),
		MontoPorTipo:  make(map[string]decimal.Decimal),
	}
	total := decimal.Zero
	for _, v := range r.ventas {
		resp.TotalVentas++
		resp.VentasPorTipo[v.TipoVenta]++
		monto, ok := resp.MontoPorTipo[v.TipoVenta]
		if !ok {
			monto = decimal.Zero
		}
		resp.MontoPorTipo[v.TipoVenta] = monto.Add(v.Total)
		total = total.Add(v.Total)
	}
	resp.TotalMonto = total.Round(2)
	return resp, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func ptr(s string) *string { return &s }

func seedProducto(repo *stubProductoRepo, codigo, nombre, categoria string, menor, mayor float64, barcode *string) *model.Producto {
	p := &model.Producto{
		Codigo:              codigo,
		Nombre:              nombre,
		Categoria:           categoria,
		PrecioMenor:         decimal.NewFromFloat(menor),
		PrecioMayor:         decimal.NewFromFloat(mayor),
		CostoCompra:         decimal.NewFromFloat(mayor * 0.7),
		CodigoBarra:         barcode,
		UltimaActualizacion: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	repo.productos[codigo] = p
	return p
}
