package router

import (
	"github.com/gin-gonic/gin"

	"docverify/internal/handler"
	"docverify/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	comparisonH *handler.ComparisonHandler,
	templateH *handler.TemplateHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	templates := v1.Group("/templates")
	templates.GET("", templateH.List)
	templates.GET("/:id", templateH.Get)

	comparisons := v1.Group("/comparisons")
	comparisons.POST("", comparisonH.Compare)
	comparisons.POST("/upload", comparisonH.Upload)
	comparisons.POST("/export", comparisonH.Export)

	return r
}
