package service

import (
	"context"
	"emotest_backend/internal/model"
	"emotest_backend/internal/repository"
	"fmt"
	"math"
)

type StatsService struct {
	Questions *QuestionService
	Progress  *repository.ProgressRepository
}

func NewStatsService(questions *QuestionService, progress *repository.ProgressRepository) *StatsService {
	return &StatsService{Questions: questions, Progress: progress}
}

func (s *StatsService) GetStats(ctx context.Context) (*model.TestStats, error) {
	totalQuestions, err := s.Questions.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.Progress.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	completedUsers, err := s.Progress.CountCompleted(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := s.Progress.AverageCompletedScore(ctx)
	if err != nil {
		return nil, err
	}

	rate := "0%"
	if totalUsers > 0 {
		rate = fmt.Sprintf("%.2f%%", float64(completedUsers)/float64(totalUsers)*100)
	}

	return &model.TestStats{
		TotalQuestions: totalQuestions,
		TotalUsers:     totalUsers,
		CompletedUsers: completedUsers,
		CompletionRate: rate,
		AverageScore:   math.Round(avg*100) / 100,
	}, nil
}
