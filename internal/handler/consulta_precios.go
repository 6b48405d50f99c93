package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/quepia/sistema-lafuga/internal/apierror"
	"github.com/quepia/sistema-lafuga/internal/dto"
	"github.com/quepia/sistema-lafuga/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

// ConsultaPreciosHandler serves the price check endpoint used by the
// verificador scanner at the shop entrance. Read-only, no side effects.
type ConsultaPreciosHandler struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewConsultaPreciosHandler(repo repository.ProductoRepository, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{repo: repo, rdb: rdb}
}

// PorCodigoBarra resolves both price tiers for a scanned barcode.
// Cache entries are invalidated by the catalog and pricing services on any
// price mutation, so a 4h TTL is only a backstop.
func (h *ConsultaPreciosHandler) PorCodigoBarra(c *gin.Context) {
	barcode := c.Param("barcode")
	ctx := c.Request.Context()
	cacheKey := "precio:" + barcode

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPreciosResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	producto, err := h.repo.FindByCodigoBarra(ctx, barcode)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(apierror.CodeNotFound, "Producto no encontrado"))
		return
	}

	resp := dto.ConsultaPreciosResponse{
		Codigo:      producto.Codigo,
		Nombre:      producto.Nombre,
		Categoria:   producto.Categoria,
		PrecioMenor: producto.PrecioMenor,
		PrecioMayor: producto.PrecioMayor,
	}

	// Populate cache, best effort
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
