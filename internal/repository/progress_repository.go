package repository

import (
	"context"
	"emotest_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindByUserID 不存在时返回 nil, nil
func (r *ProgressRepository) FindByUserID(ctx context.Context, userID string) (*model.UserProgress, error) {
	var p model.UserProgress
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) Create(ctx context.Context, p *model.UserProgress) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *ProgressRepository) Save(ctx context.Context, p *model.UserProgress) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

// DeleteByUserID 返回是否删除了记录
func (r *ProgressRepository) DeleteByUserID(ctx context.Context, userID string) (bool, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserProgress{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ProgressRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.UserProgress{}).Count(&total).Error
	return total, err
}

func (r *ProgressRepository) CountCompleted(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.UserProgress{}).
		Where("is_completed = ?", true).
		Count(&total).Error
	return total, err
}

// AverageCompletedScore 已完成用户的平均分，没有已完成用户时为 0
func (r *ProgressRepository) AverageCompletedScore(ctx context.Context) (float64, error) {
	var avg float64
	err := r.DB.WithContext(ctx).Model(&model.UserProgress{}).
		Where("is_completed = ?", true).
		Select("COALESCE(AVG(total_score), 0)").
		Scan(&avg).Error
	return avg, err
}
