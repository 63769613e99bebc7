package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health pings Postgres and Redis with a short deadline and reports each
// dependency separately, so a probe can tell which side is down. 503 when
// either fails.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		estadoDB := "connected"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			estadoDB = "error"
		}

		estadoRedis := "connected"
		if err := rdb.Ping(ctx).Err(); err != nil {
			estadoRedis = "error"
		}

		status := http.StatusOK
		if estadoDB == "error" || estadoRedis == "error" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"db":    estadoDB,
			"redis": estadoRedis,
		})
	}
}
