package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"equiptrack/session"

	"github.com/gin-gonic/gin"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// 模拟 AuthRequired 已经放进 Context 的会话
func fakeActor(caps ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		as := &session.ActorSession{ActorID: "actor-1", Name: "测试员", Capabilities: caps}
		c.Set("actorID", as.ActorID)
		c.Set("actorName", as.Name)
		c.Set("actorSession", as)
		c.Next()
	}
}

func TestRequireCapForbidden(t *testing.T) {
	r := newTestEngine()
	r.POST("/loans", fakeActor("inventory:check"), RequireCap("loan:create"), func(c *gin.Context) {
		c.JSON(http.StatusOK, H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/loans", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireCapAllowed(t *testing.T) {
	r := newTestEngine()
	r.POST("/loans", fakeActor("loan:create", "loan:admin"), RequireCap("loan:create"), func(c *gin.Context) {
		c.JSON(http.StatusOK, H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/loans", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequireCapWithoutSession(t *testing.T) {
	r := newTestEngine()
	r.POST("/loans", RequireCap("loan:create"), func(c *gin.Context) {
		c.JSON(http.StatusOK, H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/loans", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthRequiredNoCookie(t *testing.T) {
	r := newTestEngine()
	r.GET("/me", AuthRequired(nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
