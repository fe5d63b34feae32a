package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TestImportLock(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := newTestEngine()
	r.POST("/inventories/:year/import", ImportLock(rdb, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, H{"ok": true})
	})

	// 2024 的锁被别的导入占着：后来者吃 409
	if err := mr.Set("eqt:inventory:import:2024", "1"); err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/inventories/2024/import", nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("contended import status = %d, want 409", w.Code)
	}

	// 没人占锁：放行，跑完锁要释放
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/inventories/2025/import", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if mr.Exists("eqt:inventory:import:2025") {
		t.Fatal("lock must be released once the import finishes")
	}
}
