package controllers

import (
	"errors"
	"net/http"

	"equiptrack/app"
	"equiptrack/config"
	"equiptrack/db"
	"equiptrack/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Srv 控制器共享的依赖
type Srv struct {
	Repo     *db.Repo
	Sessions *session.ActorStore
	Cfg      config.Config
}

func NewSrv(a *app.App) *Srv {
	return &Srv{
		Repo:     db.NewRepo(a.DB),
		Sessions: a.ActorSessions(),
		Cfg:      a.Config,
	}
}

// 业务错误 → HTTP 状态码，找不到映射的一律 500
func writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
	case errors.Is(err, db.ErrAlreadyOnLoan):
		c.JSON(http.StatusConflict, app.H{"error": "equipment already on loan"})
	case errors.Is(err, db.ErrAlreadyClosed):
		c.JSON(http.StatusConflict, app.H{"error": "loan already closed"})
	case errors.Is(err, db.ErrModelDisposed):
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "model is disposed"})
	case errors.Is(err, db.ErrNoSnapshot):
		c.JSON(http.StatusNotFound, app.H{"error": "no snapshot for this year, run an import first"})
	case errors.Is(err, db.ErrNotInManifest):
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "equipment is not in this year's manifest"})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
