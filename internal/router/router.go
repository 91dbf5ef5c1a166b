package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizlingua/internal/config"
	"github.com/stemsi/quizlingua/internal/handler"
	"github.com/stemsi/quizlingua/internal/middleware"
	"github.com/stemsi/quizlingua/internal/response"
	"github.com/stemsi/quizlingua/internal/service"
)

// publicMaxAge is the Cache-Control max-age for localized reads.
const publicMaxAge = 60

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz    *handler.QuizHandler
	Subject *handler.SubjectHandler
	System  *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// importLimiter guards the normalization routes; the caller owns it and
// stops it on shutdown.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	importLimiter *middleware.RateLimiter,
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
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept-Language", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Language"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)

	// ─── 1. Public Read Group ──────────────────────────────────────────
	// Every bilingual field is resolved to the negotiated language.
	publicAPI := router.Group("/api/v1")
	publicAPI.Use(middleware.Language(), middleware.CacheControl(publicMaxAge))
	{
		publicAPI.GET("/quizzes/:id", handlers.Quiz.GetQuiz)
		publicAPI.GET("/topics/:topic_id/quizzes", handlers.Quiz.ListByTopic)
		publicAPI.GET("/subjects", handlers.Subject.GetAll)
		publicAPI.GET("/subjects/:subject_id/topics", handlers.Subject.ListTopics)
	}

	// ─── 2. Admin Group (Admin JWT) ────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService), middleware.NoStore())
	{
		adminAPI.POST("/subjects", handlers.Subject.Create)
		adminAPI.POST("/subjects/:subject_id/topics", handlers.Subject.CreateTopic)
		adminAPI.DELETE("/quizzes/:id", handlers.Quiz.Delete)
		adminAPI.GET("/quizzes/import/jobs/:job_id", handlers.Quiz.ImportStatus)
		adminAPI.GET("/system/stats", handlers.System.Stats)

		// Normalization is CPU-bound, so every route that runs it is
		// rate limited per admin and size capped.
		imports := adminAPI.Group("", importLimiter.Middleware(), middleware.BodyLimit(cfg.MaxImportBytes))
		{
			imports.POST("/quizzes/import", handlers.Quiz.Import)
			imports.POST("/quizzes/import/bulk", handlers.Quiz.BulkImport)
			imports.POST("/normalize", handlers.Quiz.Normalize)
		}
	}

	return router
}
