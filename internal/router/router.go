package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "payroll/docs" // registers the OpenAPI document
	"payroll/internal/handler"
	"payroll/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	workerH *handler.WorkerHandler,
	sheetH *handler.SheetHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	workers := v1.Group("/workers")
	workers.GET("", workerH.List)
	workers.DELETE("", workerH.Delete)
	workers.PATCH("/:id", workerH.Update)
	workers.POST("/import", workerH.Import)

	sheets := v1.Group("/sheets")
	sheets.POST("", sheetH.Generate)
	sheets.GET("/latest", sheetH.Latest)
	sheets.GET("/latest/export/csv", sheetH.ExportCSV)

	return r
}
