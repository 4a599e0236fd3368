package controller

import (
	"emotest_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ServiceName    = "Emotional Load Test Microservice"
	ServiceVersion = "1.0.0"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// @Summary 服务信息
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router / [get]
func (c *HealthController) Root(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"service": ServiceName,
		"status":  "active",
		"version": ServiceVersion,
	})
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.PingContext(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status":  "healthy",
		"service": "emotional-test",
		"components": gin.H{
			"database": "up",
		},
	})
}
