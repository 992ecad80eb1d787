package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vocalhub-backend/internal/domains/moderation/model"
	"vocalhub-backend/internal/shared/middleware"
	"vocalhub-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupProfileRoutes(v1, c)
		setupModerationRoutes(v1, c)
		setupSongRoutes(v1, c)
		setupLinkRoutes(v1, c)
		setupAdminRoutes(v1, c)

		v1.GET("/files/*ref", c.AssetHandler.Serve)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.AccountHandler.Register)
		auth.POST("/login", c.AccountHandler.Login)
	}
}

// ========================================
// USER ROUTES (dashboard)
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.GET("/me", middleware.Authenticate(c.JWTManager), c.AccountHandler.Me)

		dashboard := users.Group("/:id", middleware.OptionalAuthenticate(c.JWTManager))
		dashboard.GET("/voicebanks", c.ModerationHandler.ListBySubmitter(model.KindVoicebank))
		dashboard.GET("/tutorials", c.ModerationHandler.ListBySubmitter(model.KindTutorial))
		dashboard.GET("/songs", c.SongHandler.ListBySubmitter)
	}
}

// ========================================
// PROFILE ROUTES
// ========================================
func setupProfileRoutes(v1 *gin.RouterGroup, c *container.Container) {
	profiles := v1.Group("/profiles")
	{
		profiles.GET("", c.ProfileHandler.List)
		profiles.GET("/:id", c.ProfileHandler.Get)
	}
}

// ========================================
// MODERATED CONTENT ROUTES
// ========================================
func setupModerationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	for path, kind := range map[string]model.Kind{
		"/voicebanks": model.KindVoicebank,
		"/tutorials":  model.KindTutorial,
	} {
		group := v1.Group(path)
		group.GET("", c.ModerationHandler.ListPublic(kind))
		group.GET("/:id", middleware.OptionalAuthenticate(c.JWTManager), c.ModerationHandler.Get(kind))
		group.POST("", middleware.Authenticate(c.JWTManager), c.ModerationHandler.Submit(kind))
	}
}

// ========================================
// SONG ROUTES
// ========================================
func setupSongRoutes(v1 *gin.RouterGroup, c *container.Container) {
	songs := v1.Group("/songs")
	{
		songs.GET("", c.SongHandler.List)
		songs.GET("/:id", c.SongHandler.Get)
		songs.POST("", middleware.Authenticate(c.JWTManager), c.SongHandler.Create)
	}
}

// ========================================
// LINK ROUTES
// ========================================
func setupLinkRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/links", c.LinkHandler.List)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.Authenticate(c.JWTManager), middleware.RequireAdmin())
	{
		admin.POST("/links", c.LinkHandler.Create)

		moderation := admin.Group("/moderation")
		moderation.GET("/stats", c.ModerationHandler.Stats)
		moderation.GET("/:kind", c.ModerationHandler.AdminList)
		moderation.POST("/:kind/:id/approve", c.ModerationHandler.Approve)
		moderation.POST("/:kind/:id/reject", c.ModerationHandler.Reject)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if health["status"] == "degraded" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
