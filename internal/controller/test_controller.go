package controller

import (
	"emotest_backend/internal/model"
	"emotest_backend/internal/service"
	"emotest_backend/internal/util"
	"encoding/json"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TestController struct {
	Flow      *service.TestFlowService
	Progress  *service.ProgressService
	Questions *service.QuestionService
	Stats     *service.StatsService
}

func NewTestController(flow *service.TestFlowService, progress *service.ProgressService, questions *service.QuestionService, stats *service.StatsService) *TestController {
	return &TestController{
		Flow:      flow,
		Progress:  progress,
		Questions: questions,
		Stats:     stats,
	}
}

// TestRequest 答题请求体，answer 可以是字符串、数字或字符串数组
type TestRequest struct {
	UserID     string          `json:"user_id" binding:"required"`
	Answer     json.RawMessage `json:"answer" swaggertype:"object"`
	QuestionID *uint           `json:"question_id"`
}

// ProgressResponse 用户进度详情
type ProgressResponse struct {
	UserID      string               `json:"user_id"`
	CurrentStep int                  `json:"current_step"`
	TotalScore  float64              `json:"total_score"`
	IsCompleted bool                 `json:"is_completed"`
	Answers     []model.AnswerRecord `json:"answers"`
	CreatedAt   string               `json:"created_at"`
	UpdatedAt   string               `json:"updated_at"`
}

// @Summary 答题流程
// @Description 提交当前题目的答案（可选）并获取下一题，题目答完后返回总分
// @Tags 情绪测试
// @Accept json
// @Produce json
// @Param body body TestRequest true "答题请求"
// @Success 200 {object} util.Response{data=service.ProcessResult}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/test/process [post]
func (c *TestController) Process(ctx *gin.Context) {
	var req TestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, err := parseUserID(req.UserID)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Flow.Process(ctx.Request.Context(), service.ProcessRequest{
		UserID:     userID,
		Answer:     req.Answer,
		QuestionID: req.QuestionID,
	})
	switch {
	case errors.Is(err, util.ErrInvalidQuestion):
		util.BadRequest(ctx, "Invalid question")
		return
	case errors.Is(err, util.ErrSubmissionInProgress):
		util.Conflict(ctx, err.Error())
		return
	case err != nil:
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, res)
}

// @Summary 获取用户进度
// @Tags 情绪测试
// @Produce json
// @Param userId path string true "用户ID (UUID)"
// @Success 200 {object} util.Response{data=ProgressResponse}
// @Failure 404 {object} util.Response
// @Router /api/test/progress/{userId} [get]
func (c *TestController) GetProgress(ctx *gin.Context) {
	userID, err := parseUserID(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.Progress.Get(ctx.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if p == nil {
		util.NotFound(ctx, "User progress not found")
		return
	}

	answers := []model.AnswerRecord(p.Answers)
	if answers == nil {
		answers = []model.AnswerRecord{}
	}

	util.Success(ctx, ProgressResponse{
		UserID:      p.UserID,
		CurrentStep: p.CurrentStep,
		TotalScore:  p.TotalScore,
		IsCompleted: p.IsCompleted,
		Answers:     answers,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	})
}

// @Summary 重置用户进度
// @Tags 情绪测试
// @Produce json
// @Param userId path string true "用户ID (UUID)"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/test/reset/{userId} [post]
func (c *TestController) ResetProgress(ctx *gin.Context) {
	userID, err := parseUserID(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ok, err := c.Progress.Reset(ctx.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !ok {
		util.NotFound(ctx, "User progress not found")
		return
	}

	util.Success(ctx, gin.H{"message": "Progress reset successfully"})
}

// @Summary 删除用户进度
// @Tags 情绪测试
// @Produce json
// @Param userId path string true "用户ID (UUID)"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/test/progress/{userId} [delete]
func (c *TestController) DeleteProgress(ctx *gin.Context) {
	userID, err := parseUserID(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ok, err := c.Progress.Delete(ctx.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !ok {
		util.NotFound(ctx, "User progress not found")
		return
	}

	util.Success(ctx, gin.H{"message": "Progress deleted successfully"})
}

// @Summary 获取全部启用题目
// @Tags 情绪测试
// @Produce json
// @Success 200 {object} util.Response{data=[]model.QuestionView}
// @Router /api/test/questions [get]
func (c *TestController) ListQuestions(ctx *gin.Context) {
	qs, err := c.Questions.ListActive(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, qs)
}

// @Summary 测试统计
// @Tags 情绪测试
// @Produce json
// @Success 200 {object} util.Response{data=model.TestStats}
// @Router /api/test/stats [get]
func (c *TestController) GetStats(ctx *gin.Context) {
	stats, err := c.Stats.GetStats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// parseUserID 校验并规范化 UUID 形式的用户 ID
func parseUserID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", util.ErrInvalidUserID
	}
	return id.String(), nil
}
