package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/aulagen/aulagen-backend/internal/http/handlers"
	"github.com/aulagen/aulagen-backend/internal/http/middleware"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *middleware.AuthMiddleware
	CourseHandler  *handlers.CourseHandler
	PublishHandler *handlers.PublishHandler
	HistoryHandler *handlers.HistoryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(otelgin.Middleware("aulagen"))
	router.Use(middleware.RequestLogger(cfg.Log))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireToken())
	{
		// Classroom
		api.GET("/classroom/courses", cfg.CourseHandler.ListCourses)
		api.POST("/classroom/courses/:courseId/publish", cfg.PublishHandler.PublishBundle)
		api.POST("/classroom/courses/:courseId/materials", cfg.PublishHandler.PublishMedia)
		api.POST("/classroom/courses/:courseId/assignments", cfg.PublishHandler.PublishAssignment)
		// History
		api.GET("/publications", cfg.HistoryHandler.ListPublications)
	}

	return router
}
