package app

import (
	"net/http"

	"equiptrack/session"

	"github.com/gin-gonic/gin"
)

const ActorSessionCookie = "actor_session"

// AuthRequired 只消费外部认证服务写好的会话，不做认证本身。
// 把 actorID / actorName / 能力清单放进 Context。
func AuthRequired(sess *session.ActorStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(ActorSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := sess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}
		c.Set("actorID", as.ActorID)
		c.Set("actorName", as.Name)
		c.Set("actorSession", as)
		c.Next()
	}
}

// RequireCap 按能力名放行，比如 "loan:create"、"inventory:import"
func RequireCap(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("actorSession")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, _ := v.(*session.ActorSession)
		if as == nil || !as.Can(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// ActorID 取当前操作人；必须在 AuthRequired 之后用
func ActorID(c *gin.Context) string {
	v, _ := c.Get("actorID")
	id, _ := v.(string)
	return id
}
