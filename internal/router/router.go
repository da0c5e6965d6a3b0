package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/visitbeacon/internal/config"
	"github.com/visitbeacon/internal/handler"
	"github.com/visitbeacon/web"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, gdb *gorm.DB, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return setupRouter(cfg, handler.NewAPI(gdb, logger), logger)
}

// SetupRouterWithAPI 使用已构造好的 handler 集合配置路由。
func SetupRouterWithAPI(cfg config.AppConfig, api *handler.API, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return setupRouter(cfg, api, logger)
}

func setupRouter(cfg config.AppConfig, api *handler.API, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handler.RequestLogger(logger.With("component", "http")))

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn("invalid trusted proxies, trusting none", "proxies", cfg.TrustedProxies, "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))

	r.StaticFS("/static", http.FS(web.StaticFS()))

	r.GET("/ping", api.Ping)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/campaign/:campaign_id", api.RecordVisit)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", handler.RequestIDHeader},
		ExposeHeaders: []string{handler.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(origins) == 0
	for _, origin := range origins {
		if origin == "*" {
			allowAll = true
			break
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
