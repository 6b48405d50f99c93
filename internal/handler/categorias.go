package handler

import (
	"net/http"

	"github.com/quepia/sistema-lafuga/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriasHandler struct{ svc service.ProductoService }

func NewCategoriasHandler(svc service.ProductoService) *CategoriasHandler {
	return &CategoriasHandler{svc: svc}
}

// Listar returns the distinct categories present in the catalog, sorted.
func (h *CategoriasHandler) Listar(c *gin.Context) {
	categorias, err := h.svc.ListarCategorias(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categorias})
}
