package config

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config 从环境变量读取
type Config struct {
	Port string `env:"PORT, default=3001"`

	DBHost     string `env:"DB_HOST, default=127.0.0.1"`
	DBPort     string `env:"DB_PORT, default=5432"`
	DBUser     string `env:"DB_USER, default=postgres"`
	DBPassword string `env:"DB_PASSWORD, default=postgres"`
	DBName     string `env:"DB_NAME, default=equiptrack"`

	RedisAddr string `env:"REDIS_ADDR, default=127.0.0.1:6379"`
	RedisPwd  string `env:"REDIS_PASSWORD"`

	WebOrigin  string        `env:"WEB_ORIGIN, default=http://localhost:5173"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	// 盘点清册只认这个财产编号前缀，其余资产类别一律跳过
	PropertyPrefix string `env:"EQUIP_PROPERTY_PREFIX, default=314010103"`
	// 导入锁最长持有时间，超时自动释放
	ImportLockTTL time.Duration `env:"IMPORT_LOCK_TTL, default=5m"`

	LogFile string `env:"LOG_FILE"`
}

func LoadEnv() {
	// .env 不存在也没关系，线上直接用环境变量
	_ = godotenv.Load()
}

func MustLoad() Config {
	LoadEnv()
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}
