package app

import (
	"context"
	"log"
	"time"

	"equiptrack/config"
	"equiptrack/db"
	"equiptrack/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config config.Config

	actorSess *session.ActorStore
}

func (a *App) ActorSessions() *session.ActorStore { return a.actorSess }

func MustNew() *App {
	cfg := config.MustLoad()
	config.SetupLogger(cfg.LogFile)

	dbConn := db.ConnectDB(cfg)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router:    r,
		DB:        dbConn,
		RDB:       rdb,
		Config:    cfg,
		actorSess: session.NewActorStore(rdb, cfg.SessionTTL),
	}
}

func (a *App) Close() { _ = a.RDB.Close() }
