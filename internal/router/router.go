package router

import (
	"time"

	"github.com/quepia/sistema-lafuga/internal/config"
	"github.com/quepia/sistema-lafuga/internal/handler"
	"github.com/quepia/sistema-lafuga/internal/middleware"
	"github.com/quepia/sistema-lafuga/internal/repository"
	"github.com/quepia/sistema-lafuga/internal/service"
	"github.com/quepia/sistema-lafuga/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(200, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	historialRepo := repository.NewHistorialPrecioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	productoSvc := service.NewProductoService(productoRepo, rdb)
	preciosSvc := service.NewPreciosService(productoRepo, historialRepo, rdb)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(productoSvc)
	preciosH := handler.NewPreciosHandler(preciosSvc)
	historialH := handler.NewHistorialPreciosHandler(preciosSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb)
	adminH := handler.NewAdminHandler(rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Read-only price check for the verificador scanner
	r.GET("/v1/precio/:barcode", consultaH.PorCodigoBarra)

	v1 := r.Group("/v1")
	{
		prods := v1.Group("/productos")
		{
			prods.POST("", productosH.Crear)
			prods.GET("", productosH.Buscar)
			prods.GET("/sin-codigo-barra", productosH.ListarSinCodigoBarra)
			prods.GET("/:codigo", productosH.ObtenerPorCodigo)
			prods.PUT("/:codigo", productosH.Actualizar)
			prods.DELETE("/:codigo", productosH.Eliminar)
			prods.PATCH("/:codigo/codigo-barra", productosH.AsignarCodigoBarra)
			prods.GET("/:codigo/historial-precios", historialH.PorProducto)
		}

		v1.GET("/categorias", categoriasH.Listar)
		v1.GET("/estadisticas", productosH.Estadisticas)

		v1.POST("/precios/actualizacion-masiva", preciosH.ActualizacionMasiva)

		ventas := v1.Group("/ventas")
		{
			ventas.POST("", ventasH.Crear)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/estadisticas/resumen", ventasH.Estadisticas)
			ventas.GET("/:id", ventasH.ObtenerPorID)
		}

		v1.POST("/admin/recibos/reintentar", adminH.ReintentarRecibos)
	}

	return r
}
