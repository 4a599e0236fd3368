package service

import (
	"bytes"
	"context"
	"emotest_backend/internal/model"
	"emotest_backend/internal/util"
	"emotest_backend/pkg/monitoring"
	"emotest_backend/pkg/tracing"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	MsgAlreadyCompleted = "Test already completed!"
	MsgNextQuestion     = "Next question"
	MsgCompleted        = "Test completed successfully!"
)

// ProcessRequest 一次答题请求。Answer 为空或 JSON null 视为未作答。
type ProcessRequest struct {
	UserID     string
	Answer     json.RawMessage
	QuestionID *uint
}

func (r ProcessRequest) hasAnswer() bool {
	if r.QuestionID == nil {
		return false
	}
	trimmed := bytes.TrimSpace(r.Answer)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// ProcessResult 下一题或完成信号
type ProcessResult struct {
	Question    *model.QuestionView `json:"question"`
	Completed   bool                `json:"completed"`
	CurrentStep int                 `json:"current_step"`
	TotalScore  *float64            `json:"total_score"`
	Message     string              `json:"message"`
}

type TestFlowService struct {
	Questions *QuestionService
	Progress  *ProgressService
	Locker    SubmissionLocker
}

// NewTestFlowService locker 可以为 nil，此时不做用户级串行化
func NewTestFlowService(questions *QuestionService, progress *ProgressService, locker SubmissionLocker) *TestFlowService {
	return &TestFlowService{Questions: questions, Progress: progress, Locker: locker}
}

// Process 推进一次答题流程：
//  1. 已完成的进度直接返回完成结果
//  2. 带作答时按服务端当前步骤取题计分、记录，然后推进一步
//  3. 返回当前步骤的题目，没有题目时标记完成
//
// 计分用的题目只由服务端当前步骤决定，客户端传来的 QuestionID 只作为“已作答”的标志。
func (s *TestFlowService) Process(ctx context.Context, req ProcessRequest) (res *ProcessResult, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "TestFlowService.Process")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("user.id", req.UserID))

	if s.Locker != nil {
		release, err := s.Locker.Acquire(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	progress, err := s.Progress.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if progress.IsCompleted {
		return completedResult(progress, MsgAlreadyCompleted), nil
	}

	if req.hasAnswer() {
		current, err := s.Questions.GetByStep(ctx, progress.CurrentStep)
		if err != nil {
			return nil, fmt.Errorf("load question for step %d: %w", progress.CurrentStep, err)
		}
		if current == nil {
			return nil, util.ErrInvalidQuestion
		}

		score, err := s.Progress.RecordAnswer(ctx, progress, current, req.Answer)
		if err != nil {
			return nil, err
		}
		monitoring.AnswersRecorded.WithLabelValues(string(current.Type)).Inc()
		monitoring.AnswerScore.Observe(score)

		if err := s.Progress.AdvanceStep(ctx, progress); err != nil {
			return nil, err
		}
	}
	span.SetAttributes(attribute.Int("progress.step", progress.CurrentStep))

	next, err := s.Questions.GetByStep(ctx, progress.CurrentStep)
	if err != nil {
		return nil, fmt.Errorf("load question for step %d: %w", progress.CurrentStep, err)
	}
	if next != nil {
		return &ProcessResult{
			Question:    next.View(),
			Completed:   false,
			CurrentStep: progress.CurrentStep,
			Message:     MsgNextQuestion,
		}, nil
	}

	if err := s.Progress.MarkCompleted(ctx, progress); err != nil {
		return nil, err
	}
	monitoring.TestsCompleted.Inc()

	return completedResult(progress, MsgCompleted), nil
}

func completedResult(p *model.UserProgress, message string) *ProcessResult {
	total := p.TotalScore
	return &ProcessResult{
		Completed:   true,
		CurrentStep: p.CurrentStep,
		TotalScore:  &total,
		Message:     message,
	}
}
