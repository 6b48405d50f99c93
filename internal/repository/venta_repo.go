package repository

import (
	"context"

	"github.com/quepia/sistema-lafuga/internal/dto"
	"github.com/quepia/sistema-lafuga/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	// Create persists the venta together with its detalles in the caller's
	// transaction: the aggregate is written atomically or not at all.
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uint) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	Estadisticas(ctx context.Context) (*dto.EstadisticasVentasResponse, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uint) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Detalles").First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.TipoVenta != "" {
		q = q.Where("tipo_venta = ?", filter.TipoVenta)
	}
	if filter.FechaDesde != "" {
		q = q.Where("DATE(fecha) >= ?", filter.FechaDesde)
	}
	if filter.FechaHasta != "" {
		q = q.Where("DATE(fecha) <= ?", filter.FechaHasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Detalles").
		Order("fecha DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&ventas).Error

	return ventas, total, err
}

func (r *ventaRepo) Estadisticas(ctx context.Context) (*dto.EstadisticasVentasResponse, error) {
	db := r.db.WithContext(ctx)
	resp := &dto.EstadisticasVentasResponse{
		VentasPorTipo: make(map[string]int64),
		MontoPorTipo:  make(map[string]decimal.Decimal),
	}

	if err := db.Model(&model.Venta{}).Count(&resp.TotalVentas).Error; err != nil {
		return nil, err
	}

	var filas []struct {
		TipoVenta string
		Cantidad  int64
		Monto     decimal.Decimal
	}
	if err := db.Model(&model.Venta{}).
		Select("tipo_venta, COUNT(*) AS cantidad, COALESCE(SUM(total), 0) AS monto").
		Group("tipo_venta").
		Scan(&filas).Error; err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, fila := range filas {
		resp.VentasPorTipo[fila.TipoVenta] = fila.Cantidad
		resp.MontoPorTipo[fila.TipoVenta] = fila.Monto.Round(2)
		total = total.Add(fila.Monto)
	}
	resp.TotalMonto = total.Round(2)

	return resp, nil
}
