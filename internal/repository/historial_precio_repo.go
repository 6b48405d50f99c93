package repository

import (
	"context"

	"github.com/quepia/sistema-lafuga/internal/model"

	"gorm.io/gorm"
)

type HistorialPrecioRepository interface {
	// CreateTx appends a price-change record inside the bulk update transaction,
	// so history and prices commit or roll back together.
	CreateTx(tx *gorm.DB, h *model.HistorialPrecio) error
	ListByProducto(ctx context.Context, codigo string, limit, offset int) ([]model.HistorialPrecio, int64, error)
}

type historialPrecioRepo struct{ db *gorm.DB }

func NewHistorialPrecioRepository(db *gorm.DB) HistorialPrecioRepository {
	return &historialPrecioRepo{db: db}
}

func (r *historialPrecioRepo) CreateTx(tx *gorm.DB, h *model.HistorialPrecio) error {
	return tx.Create(h).Error
}

// ListByProducto returns paginated price-change records for one product,
// newest first.
func (r *historialPrecioRepo) ListByProducto(
	ctx context.Context,
	codigo string,
	limit, offset int,
) ([]model.HistorialPrecio, int64, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.HistorialPrecio{}).
		Where("producto_codigo = ?", codigo).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var filas []model.HistorialPrecio
	if err := r.db.WithContext(ctx).
		Where("producto_codigo = ?", codigo).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&filas).Error; err != nil {
		return nil, 0, err
	}

	return filas, total, nil
}
