package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mbramani/coders-boutique-task/config"
	"github.com/mbramani/coders-boutique-task/internal/api/handler"
	"github.com/mbramani/coders-boutique-task/internal/api/middleware"
	"github.com/mbramani/coders-boutique-task/pkg/response"
)

// Pinger 健康检查依赖（*sql.DB 实现）
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps 路由依赖
type Deps struct {
	Handler *handler.Handler
	// Limiter 为 nil 时更新接口不限流
	Limiter middleware.RateLimiter
	// DB 为 nil 时 /health 只报告进程存活
	DB      Pinger
	Metrics *middleware.Metrics
	Logger  *zap.Logger
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.GET("/metrics", deps.Metrics.Handler())
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found", "the requested resource does not exist")
	})

	// ── 健康检查 ──
	r.GET("/health", healthHandler(deps.DB))

	// ── 测评模块 ──
	h := deps.Handler
	assessments := r.Group("/api/assessments")
	{
		assessments.GET("", h.Assessment.ListAssessments)
		assessments.GET("/summary", h.Assessment.GetSummary)
		assessments.GET("/export", h.Assessment.ExportAssessments)
		assessments.PUT("/:id",
			middleware.RateLimit(deps.Limiter, cfg.RateLimit.UpdateLimit, cfg.RateLimit.UpdateWindow, deps.Logger),
			h.Assessment.UpdateAssessment,
		)
	}

	return r
}

func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
