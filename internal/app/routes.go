package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/politiekmatcher/core/internal/middleware"
	"github.com/politiekmatcher/core/internal/modules/content"
	"github.com/politiekmatcher/core/internal/modules/matching"
	"github.com/politiekmatcher/core/internal/modules/processing/ai"
	"github.com/politiekmatcher/core/internal/modules/profiles"
	"github.com/politiekmatcher/core/internal/pkg/aicache"
	pkgredis "github.com/politiekmatcher/core/internal/pkg/redis"
	"github.com/politiekmatcher/core/internal/pkg/response"
	"github.com/politiekmatcher/core/internal/pkg/taskqueue"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "politiekmatcher-core",
		"version": "1.0.0",
	}

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	// Shared services
	taskSvc := taskqueue.NewService(rc)
	cacheSvc := aicache.NewService(aicache.NewGormStore(db), a.logger.Named("aicache"), a.cfg.InferenceTimeout())
	aiSvc := ai.NewService(a.cfg, cacheSvc, a.logger.Named("ai"))

	registry := matching.NewRegistry()
	if err := aiSvc.RegisterAxisScorers(registry); err != nil {
		// Only possible with a malformed axis list, which is compiled in.
		panic(err)
	}
	classifier := matching.NewClassifier(aiSvc, cacheSvc, a.logger.Named("classifier"))
	dims := matching.NewDimensionScorer(registry, a.cfg.Matching.DimensionTextLimit)

	profilesSvc := profiles.NewService(db, classifier, dims, aiSvc, taskSvc, a.logger.Named("profiles"))
	contentSvc := content.NewService(db)

	a.registerCronJobs(profilesSvc, taskSvc)

	api := r.Group("/api/v1")

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(processStart).Milliseconds()
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptimeMs,
			"humanize":  humanizeDuration(time.Duration(uptimeMs) * time.Millisecond),
		})
	})
	api.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.ServiceUnavailable(c, "database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Scheduled job introspection
	api.GET("/cron", func(c *gin.Context) {
		response.OK(c, a.sched.List())
	})
	api.GET("/cron/:name", func(c *gin.Context) {
		result, err := a.sched.GetTask(c.Param("name"))
		if err != nil {
			response.NotFound(c)
			return
		}
		response.OK(c, result)
	})
	api.POST("/cron/:name/run", func(c *gin.Context) {
		if err := a.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
			response.NotFound(c)
			return
		}
		response.NoContent(c)
	})

	content.NewHandler(contentSvc).RegisterRoutes(api)
	profiles.NewHandler(profilesSvc).RegisterRoutes(api)
}
