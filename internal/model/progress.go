package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AnswerRecord 一次已记录的作答
type AnswerRecord struct {
	QuestionID uint            `json:"question_id"`
	Step       int             `json:"step"`
	Value      json.RawMessage `json:"value"`
	Score      float64         `json:"score"`
}

// UserProgress 每个用户一条答题进度记录
// swagger:model UserProgress
type UserProgress struct {
	ID          uint                              `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID      string                            `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	CurrentStep int                               `gorm:"not null" json:"current_step"`
	Answers     datatypes.JSONSlice[AnswerRecord] `json:"answers"`
	TotalScore  float64                           `gorm:"not null" json:"total_score"`
	IsCompleted bool                              `gorm:"not null;index" json:"is_completed"`
	CreatedAt   time.Time                         `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time                         `json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// NewUserProgress 初始状态：第 1 步、无作答、0 分、未完成
func NewUserProgress(userID string) *UserProgress {
	return &UserProgress{
		UserID:      userID,
		CurrentStep: 1,
		Answers:     datatypes.JSONSlice[AnswerRecord]{},
		TotalScore:  0,
		IsCompleted: false,
	}
}

// ResetState 回到初始状态，保留 UserID 和创建时间
func (p *UserProgress) ResetState() {
	p.CurrentStep = 1
	p.Answers = datatypes.JSONSlice[AnswerRecord]{}
	p.TotalScore = 0
	p.IsCompleted = false
}

// TestStats 汇总统计
type TestStats struct {
	TotalQuestions int64   `json:"total_questions"`
	TotalUsers     int64   `json:"total_users"`
	CompletedUsers int64   `json:"completed_users"`
	CompletionRate string  `json:"completion_rate"`
	AverageScore   float64 `json:"average_score"`
}
