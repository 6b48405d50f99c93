package repository

import (
	"context"
	"errors"
	"time"

	"github.com/quepia/sistema-lafuga/internal/dto"
	"github.com/quepia/sistema-lafuga/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for the catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	FindByCodigoBarra(ctx context.Context, barcode string) (*model.Producto, error)
	Search(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	ListCategorias(ctx context.Context) ([]string, error)
	ListSinCodigoBarra(ctx context.Context, limit, offset int) ([]model.Producto, int64, error)
	Save(ctx context.Context, p *model.Producto) error
	// Delete removes the product row. Detalles de venta keep their frozen
	// snapshots; the DB nulls their weak reference.
	Delete(ctx context.Context, codigo string) (bool, error)
	Estadisticas(ctx context.Context) (*dto.EstadisticasCatalogoResponse, error)

	// Used inside transactions; callers must pass the tx instance.
	FindBySelectorTx(tx *gorm.DB, categoria string, codigos []string) ([]model.Producto, error)
	UpdatePreciosTx(tx *gorm.DB, codigo string, menor, mayor decimal.Decimal, fecha time.Time) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByCodigoBarra(ctx context.Context, barcode string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo_barra = ?", barcode).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Search applies text, category and retail-price filters. The returned total
// is the full match count, unaffected by limit/offset.
func (r *productoRepo) Search(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("nombre ILIKE ? OR codigo ILIKE ? OR codigo_barra ILIKE ?", like, like, like)
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	if filter.PrecioMin != nil {
		q = q.Where("precio_menor >= ?", *filter.PrecioMin)
	}
	if filter.PrecioMax != nil {
		q = q.Where("precio_menor <= ?", *filter.PrecioMax)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(filter.Offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) ListCategorias(ctx context.Context) ([]string, error) {
	var categorias []string
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Distinct("categoria").Order("categoria ASC").Pluck("categoria", &categorias).Error
	return categorias, err
}

func (r *productoRepo) ListSinCodigoBarra(ctx context.Context, limit, offset int) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("codigo_barra IS NULL OR codigo_barra = ''")

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("nombre ASC").Limit(limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Save(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, codigo string) (bool, error) {
	res := r.db.WithContext(ctx).Where("codigo = ?", codigo).Delete(&model.Producto{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productoRepo) Estadisticas(ctx context.Context) (*dto.EstadisticasCatalogoResponse, error) {
	db := r.db.WithContext(ctx)
	resp := &dto.EstadisticasCatalogoResponse{
		ProductosPorCategoria: make(map[string]int64),
	}

	if err := db.Model(&model.Producto{}).Count(&resp.TotalProductos).Error; err != nil {
		return nil, err
	}

	var porCategoria []struct {
		Categoria string
		Cantidad  int64
	}
	if err := db.Model(&model.Producto{}).
		Select("categoria, COUNT(*) AS cantidad").
		Group("categoria").
		Scan(&porCategoria).Error; err != nil {
		return nil, err
	}
	for _, fila := range porCategoria {
		resp.ProductosPorCategoria[fila.Categoria] = fila.Cantidad
	}

	if err := db.Model(&model.Producto{}).
		Where("precio_menor = 0 OR precio_mayor = 0").
		Count(&resp.ProductosSinPrecio).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.Producto{}).
		Where("codigo_barra IS NULL OR codigo_barra = ''").
		Count(&resp.ProductosSinCodigoBarra).Error; err != nil {
		return nil, err
	}

	// Averages exclude zero-priced products (matching the report semantics).
	var promedios struct {
		Menor decimal.Decimal
		Mayor decimal.Decimal
	}
	if err := db.Raw(`SELECT
		COALESCE((SELECT AVG(precio_menor) FROM productos WHERE precio_menor > 0), 0) AS menor,
		COALESCE((SELECT AVG(precio_mayor) FROM productos WHERE precio_mayor > 0), 0) AS mayor`).
		Scan(&promedios).Error; err != nil {
		return nil, err
	}
	resp.PromedioPrecioMenor = promedios.Menor.Round(2)
	resp.PromedioPrecioMayor = promedios.Mayor.Round(2)

	return resp, nil
}

// FindBySelectorTx loads the products targeted by a bulk adjustment inside the
// caller's transaction. Exactly one of categoria / codigos is honored; both
// empty yields an empty result (the caller treats that as a no-op).
func (r *productoRepo) FindBySelectorTx(tx *gorm.DB, categoria string, codigos []string) ([]model.Producto, error) {
	var productos []model.Producto
	q := tx.Model(&model.Producto{})
	switch {
	case categoria != "":
		q = q.Where("categoria = ?", categoria)
	case len(codigos) > 0:
		q = q.Where("codigo IN ?", codigos)
	default:
		return nil, errors.New("selector vacío")
	}
	err := q.Order("codigo ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) UpdatePreciosTx(tx *gorm.DB, codigo string, menor, mayor decimal.Decimal, fecha time.Time) error {
	return tx.Model(&model.Producto{}).Where("codigo = ?", codigo).Updates(map[string]interface{}{
		"precio_menor":         menor,
		"precio_mayor":         mayor,
		"ultima_actualizacion": fecha,
	}).Error
}
