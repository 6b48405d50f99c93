package handler

import (
	"net/http"
	"strconv"

	"github.com/quepia/sistema-lafuga/internal/service"

	"github.com/gin-gonic/gin"
)

type HistorialPreciosHandler struct{ svc service.PreciosService }

func NewHistorialPreciosHandler(svc service.PreciosService) *HistorialPreciosHandler {
	return &HistorialPreciosHandler{svc: svc}
}

// PorProducto lists the price adjustment history of one product, newest first.
func (h *HistorialPreciosHandler) PorProducto(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.svc.HistorialPorProducto(c.Request.Context(), c.Param("codigo"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
