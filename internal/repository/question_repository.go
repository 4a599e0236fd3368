package repository

import (
	"context"
	"emotest_backend/internal/model"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// FindActiveByStep 返回 step 对应的启用题目，不存在时返回 nil, nil
func (r *QuestionRepository) FindActiveByStep(ctx context.Context, step int) (*model.Question, error) {
	var q model.Question
	err := r.DB.WithContext(ctx).
		Where("step_number = ? AND is_active = ?", step, true).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) ListActive(ctx context.Context) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("step_number asc").
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.Question{}).
		Where("is_active = ?", true).
		Count(&total).Error
	return total, err
}

// Upsert 以 step_number 为键写入题目，供 seed 命令使用
func (r *QuestionRepository) Upsert(ctx context.Context, q *model.Question) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "step_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "question", "options", "min", "max", "scores", "is_active", "updated_at"}),
	}).Create(q).Error
}
