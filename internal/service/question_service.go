package service

import (
	"context"
	"emotest_backend/internal/model"
)

// QuestionCatalog 只读题库，*repository.QuestionRepository 实现该接口
type QuestionCatalog interface {
	FindActiveByStep(ctx context.Context, step int) (*model.Question, error)
	ListActive(ctx context.Context) ([]model.Question, error)
	CountActive(ctx context.Context) (int64, error)
}

type QuestionService struct {
	Catalog QuestionCatalog
}

func NewQuestionService(catalog QuestionCatalog) *QuestionService {
	return &QuestionService{Catalog: catalog}
}

// GetByStep 返回带计分表的题目，不存在时返回 nil, nil
func (s *QuestionService) GetByStep(ctx context.Context, step int) (*model.Question, error) {
	return s.Catalog.FindActiveByStep(ctx, step)
}

// ListActive 按步骤升序返回所有启用题目的公开视图
func (s *QuestionService) ListActive(ctx context.Context) ([]model.QuestionView, error) {
	qs, err := s.Catalog.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]model.QuestionView, len(qs))
	for i := range qs {
		res[i] = *qs[i].View()
	}
	return res, nil
}

func (s *QuestionService) CountActive(ctx context.Context) (int64, error) {
	return s.Catalog.CountActive(ctx)
}
