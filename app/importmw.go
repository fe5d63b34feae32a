package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ImportLock 同一年度同时只跑一个导入。SetNX 抢锁，抢不到直接 409；
// ttl 是兜底，导入完成后主动释放。
func ImportLock(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "eqt:inventory:import:" + c.Param("year")
		ok, err := rdb.SetNX(c.Request.Context(), key, "1", ttl).Result()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, H{"error": err.Error()})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusConflict, H{"error": "import already in progress for this year"})
			return
		}
		c.Next()
		// 请求可能已被取消，释放锁用独立 context
		_ = rdb.Del(context.Background(), key).Err()
	}
}
