package handler

import (
	"net/http"
	"strconv"

	"github.com/quepia/sistema-lafuga/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// AdminHandler exposes small operational endpoints for the shop owner:
// inspecting and draining the receipt dead letter queue.
type AdminHandler struct {
	dlq *worker.DLQ
}

func NewAdminHandler(rdb *redis.Client) *AdminHandler {
	return &AdminHandler{dlq: worker.NewDLQ(rdb)}
}

// ReintentarRecibos moves dead receipt jobs back onto the work queue.
func (h *AdminHandler) ReintentarRecibos(c *gin.Context) {
	max, _ := strconv.Atoi(c.DefaultQuery("max", "10"))
	if max < 1 {
		max = 10
	}
	moved, err := h.dlq.Requeue(c.Request.Context(), worker.QueueRecibos, max)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reencolados": moved})
}
