package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr       string
	Port             string
	DatabaseURL      string
	GinMode          string
	LogLevel         string
	LogFile          string
	LogFormat        string
	CORSAllowOrigins []string
	TrustedProxies   []string
	SeedFile         string
	ShutdownTimeout  time.Duration
}

// Load 先尝试读取当前目录的 .env，再从环境变量读取应用配置，并为缺失项提供默认值。
// 已存在的环境变量优先于 .env 中的同名项。
func Load() AppConfig {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv 只读取进程环境变量，不加载 .env。
func FromEnv() AppConfig {
	port := envOr("PORT", "5000")

	listenAddr := envOr("LISTEN_ADDR", "")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	shutdown := 10 * time.Second
	if raw := envOr("SHUTDOWN_TIMEOUT", ""); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			shutdown = d
		}
	}

	return AppConfig{
		ListenAddr:       listenAddr,
		Port:             port,
		DatabaseURL:      envOr("DATABASE_URL", "visitbeacon.db"),
		GinMode:          envOr("GIN_MODE", "release"),
		LogLevel:         envOr("LOG_LEVEL", "debug"),
		LogFile:          envOr("LOG_FILE", ""),
		LogFormat:        envOr("LOG_FORMAT", "json"),
		CORSAllowOrigins: splitCSV(envOr("CORS_ALLOW_ORIGINS", "*")),
		TrustedProxies:   splitCSV(envOr("TRUSTED_PROXIES", "")),
		SeedFile:         envOr("SEED_FILE", ""),
		ShutdownTimeout:  shutdown,
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitCSV(value string) []string {
	raw := strings.Split(value, ",")
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
