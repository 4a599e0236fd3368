package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionType 题目类型，取值为封闭集合
type QuestionType string

const (
	QuestionText        QuestionType = "text"
	QuestionButtons     QuestionType = "buttons"
	QuestionScale       QuestionType = "scale"
	QuestionDropdown    QuestionType = "dropdown"
	QuestionMultiSelect QuestionType = "multi-select"
	QuestionRadio       QuestionType = "radio"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionButtons, QuestionScale, QuestionDropdown, QuestionMultiSelect, QuestionRadio:
		return true
	}
	return false
}

// Question 题库中的一道题，按 StepNumber 排序出题
// swagger:model Question
type Question struct {
	ID         uint                        `gorm:"primaryKey;autoIncrement" json:"id"`
	StepNumber int                         `gorm:"uniqueIndex;not null" json:"step_number"`
	Type       QuestionType                `gorm:"size:50;not null" json:"type"`
	Question   string                      `gorm:"type:text;not null" json:"question"`
	Options    datatypes.JSONSlice[string] `json:"options,omitempty"`
	Min        *int                        `json:"min,omitempty"`
	Max        *int                        `json:"max,omitempty"`
	Scores     datatypes.JSONMap           `json:"-"` // option label -> weight
	IsActive   bool                        `gorm:"not null;index" json:"is_active"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

func (Question) TableName() string {
	return "question_bank"
}

// QuestionView 返回给客户端的题目，不包含计分表
type QuestionView struct {
	ID       uint         `json:"id"`
	Type     QuestionType `json:"type"`
	Question string       `json:"question"`
	Options  []string     `json:"options,omitempty"`
	Min      *int         `json:"min,omitempty"`
	Max      *int         `json:"max,omitempty"`
}

func (q *Question) View() *QuestionView {
	return &QuestionView{
		ID:       q.ID,
		Type:     q.Type,
		Question: q.Question,
		Options:  q.Options,
		Min:      q.Min,
		Max:      q.Max,
	}
}
