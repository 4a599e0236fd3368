package app

import (
	"emotest_backend/docs"
	"emotest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.GET("/", c.health.Root)
	router.GET("/health", c.health.HealthCheck)
	router.GET("/api/health", c.health.HealthCheck)

	test := router.Group("/api/test")
	{
		test.POST("/process", c.test.Process)
		test.GET("/progress/:userId", c.test.GetProgress)
		test.POST("/reset/:userId", c.test.ResetProgress)
		test.DELETE("/progress/:userId", c.test.DeleteProgress)

		// 管理/报表接口
		test.GET("/questions", c.test.ListQuestions)
		test.GET("/stats", c.test.GetStats)
	}
}
