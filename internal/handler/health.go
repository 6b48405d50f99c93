package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/quepia/sistema-lafuga/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health checks DB and Redis connectivity and reports the receipt queue
// backlog. Never exposes credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	dlq := worker.NewDLQ(rdb)
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		var pendientes, muertos int64
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		} else {
			pendientes, _ = rdb.LLen(ctx, worker.QueueRecibos).Result()
			muertos, _ = dlq.Length(ctx, worker.QueueRecibos)
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
			"recibos": gin.H{
				"pendientes": pendientes,
				"dlq":        muertos,
			},
		})
	}
}
