package handler

import (
	"net/http"

	"github.com/quepia/sistema-lafuga/internal/dto"
	"github.com/quepia/sistema-lafuga/internal/service"

	"github.com/gin-gonic/gin"
)

type PreciosHandler struct{ svc service.PreciosService }

func NewPreciosHandler(svc service.PreciosService) *PreciosHandler {
	return &PreciosHandler{svc: svc}
}

// ActualizacionMasiva applies a percentage adjustment to a category or an
// explicit code list. With preview=true nothing is written; the response
// carries the would-be changes.
func (h *PreciosHandler) ActualizacionMasiva(c *gin.Context) {
	var req dto.ActualizacionMasivaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjusteMasivo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
