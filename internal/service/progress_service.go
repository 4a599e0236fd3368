package service

import (
	"context"
	"emotest_backend/internal/model"
	"emotest_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ProgressStore 进度记录的持久化，*repository.ProgressRepository 实现该接口
type ProgressStore interface {
	FindByUserID(ctx context.Context, userID string) (*model.UserProgress, error)
	Create(ctx context.Context, p *model.UserProgress) error
	Save(ctx context.Context, p *model.UserProgress) error
	DeleteByUserID(ctx context.Context, userID string) (bool, error)
}

type ProgressService struct {
	Store ProgressStore
	now   func() time.Time
}

func NewProgressService(store ProgressStore) *ProgressService {
	return &ProgressService{Store: store, now: time.Now}
}

// GetOrCreate 返回用户进度，没有时创建并持久化初始记录
func (s *ProgressService) GetOrCreate(ctx context.Context, userID string) (*model.UserProgress, error) {
	p, err := s.Store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if p != nil {
		return p, nil
	}

	p = model.NewUserProgress(userID)
	if err := s.Store.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create progress: %w", err)
	}
	logger.Log.Info("progress created", zap.String("user_id", userID))
	return p, nil
}

// RecordAnswer 计分、累加总分并追加作答记录，不推进步骤。保存失败时内存状态回退。
func (s *ProgressService) RecordAnswer(ctx context.Context, p *model.UserProgress, q *model.Question, value json.RawMessage) (float64, error) {
	score := ScoreRaw(q, value)

	prevTotal, prevLen, prevUpdated := p.TotalScore, len(p.Answers), p.UpdatedAt
	p.TotalScore += score
	p.Answers = append(p.Answers, model.AnswerRecord{
		QuestionID: q.ID,
		Step:       p.CurrentStep,
		Value:      value,
		Score:      score,
	})
	p.UpdatedAt = s.now()

	if err := s.Store.Save(ctx, p); err != nil {
		p.TotalScore, p.Answers, p.UpdatedAt = prevTotal, p.Answers[:prevLen], prevUpdated
		return 0, fmt.Errorf("save answer: %w", err)
	}

	logger.Log.Debug("answer recorded",
		zap.String("user_id", p.UserID),
		zap.Int("step", p.CurrentStep),
		zap.Uint("question_id", q.ID),
		zap.Float64("score", score),
		zap.Float64("total_score", p.TotalScore),
	)
	return score, nil
}

// AdvanceStep 当前步骤加一。保存失败时内存中的步骤回退，和存储保持一致。
func (s *ProgressService) AdvanceStep(ctx context.Context, p *model.UserProgress) error {
	p.CurrentStep++
	if err := s.Store.Save(ctx, p); err != nil {
		p.CurrentStep--
		return fmt.Errorf("advance step: %w", err)
	}
	return nil
}

// MarkCompleted 完成标记是单向的
func (s *ProgressService) MarkCompleted(ctx context.Context, p *model.UserProgress) error {
	if p.IsCompleted {
		return nil
	}
	p.IsCompleted = true
	if err := s.Store.Save(ctx, p); err != nil {
		p.IsCompleted = false
		return fmt.Errorf("mark completed: %w", err)
	}
	logger.Log.Info("test completed",
		zap.String("user_id", p.UserID),
		zap.Float64("total_score", p.TotalScore),
	)
	return nil
}

// Get 不存在时返回 nil, nil
func (s *ProgressService) Get(ctx context.Context, userID string) (*model.UserProgress, error) {
	return s.Store.FindByUserID(ctx, userID)
}

// Reset 回到第 1 步并清空作答，没有记录时返回 false
func (s *ProgressService) Reset(ctx context.Context, userID string) (bool, error) {
	p, err := s.Store.FindByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, nil
	}

	p.ResetState()
	p.UpdatedAt = s.now()
	if err := s.Store.Save(ctx, p); err != nil {
		return false, fmt.Errorf("reset progress: %w", err)
	}
	logger.Log.Info("progress reset", zap.String("user_id", userID))
	return true, nil
}

// Delete 删除记录，没有记录时返回 false
func (s *ProgressService) Delete(ctx context.Context, userID string) (bool, error) {
	ok, err := s.Store.DeleteByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("delete progress: %w", err)
	}
	if ok {
		logger.Log.Info("progress deleted", zap.String("user_id", userID))
	}
	return ok, nil
}
