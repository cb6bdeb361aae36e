package router

import (
	"net/http"
	"time"

	"github.com/cisclab/registrar-backend/internal/config"
	"github.com/cisclab/registrar-backend/internal/handler"
	"github.com/cisclab/registrar-backend/internal/middleware"
	"github.com/cisclab/registrar-backend/internal/response"
	"github.com/cisclab/registrar-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Section *handler.SectionHandler
	Class   *handler.ClassHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group (Public) ────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireAdminJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Registrar Group (Admin JWT) ────────────────────────────────
	registrar := router.Group("/api/v1/registrar")
	registrar.Use(middleware.RequireAdminJWT(authService))
	{
		sections := registrar.Group("/sections")
		{
			sections.GET("", handlers.Section.ListSections)
			sections.GET("/search", handlers.Section.SearchSections)
			sections.POST("", handlers.Section.CreateSection)
			sections.GET("/:id", handlers.Section.GetSection)
			sections.PATCH("/:id", handlers.Section.UpdateSection)
			sections.DELETE("/:id", handlers.Section.DeleteSection)
			sections.GET("/:id/classes", handlers.Class.ListSectionClasses)
		}

		classes := registrar.Group("/classes")
		{
			classes.GET("", handlers.Class.ListClasses)
			classes.GET("/search", handlers.Class.SearchClasses)
			classes.POST("", handlers.Class.CreateClass)
			classes.GET("/:id", handlers.Class.GetClass)
			classes.PATCH("/:id", handlers.Class.UpdateClass)
			classes.DELETE("/:id", handlers.Class.DeleteClass)
		}
	}

	return router
}
