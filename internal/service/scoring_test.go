package service

import (
	"emotest_backend/internal/model"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestScore(t *testing.T) {
	table := datatypes.JSONMap{"a": 2.0, "b": 3.0, "c": 5.0}

	tests := []struct {
		name  string
		qType model.QuestionType
		value any
		want  float64
	}{
		{name: "multi-select sums weights", qType: model.QuestionMultiSelect, value: []any{"a", "b"}, want: 5},
		{name: "multi-select string slice", qType: model.QuestionMultiSelect, value: []string{"a", "c"}, want: 7},
		{name: "multi-select unknown label", qType: model.QuestionMultiSelect, value: []any{"a", "zzz"}, want: 2},
		{name: "multi-select empty list", qType: model.QuestionMultiSelect, value: []any{}, want: 0},
		{name: "multi-select non list", qType: model.QuestionMultiSelect, value: "a", want: 0},
		{name: "buttons known label", qType: model.QuestionButtons, value: "c", want: 5},
		{name: "radio unknown label", qType: model.QuestionRadio, value: "nope", want: 0},
		{name: "dropdown known label", qType: model.QuestionDropdown, value: "b", want: 3},
		{name: "single choice list input", qType: model.QuestionRadio, value: []any{"a"}, want: 0},
		{name: "scale uses value", qType: model.QuestionScale, value: 7.0, want: 7},
		{name: "scale integer", qType: model.QuestionScale, value: 3, want: 3},
		{name: "scale numeric string", qType: model.QuestionScale, value: "2.5", want: 2.5},
		{name: "scale garbage", qType: model.QuestionScale, value: "lots", want: 0},
		{name: "text unscored", qType: model.QuestionText, value: "a", want: 0},
		{name: "unknown type", qType: model.QuestionType("slider"), value: "a", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &model.Question{Type: tt.qType, Scores: table}
			assert.Equal(t, tt.want, Score(q, tt.value))
		})
	}
}

func TestScoreWithoutTable(t *testing.T) {
	for _, qType := range []model.QuestionType{
		model.QuestionScale,
		model.QuestionMultiSelect,
		model.QuestionButtons,
		model.QuestionText,
	} {
		q := &model.Question{Type: qType}
		assert.Zero(t, Score(q, 4.0), qType)
		assert.Zero(t, Score(q, []any{"a"}), qType)
	}

	assert.Zero(t, Score(nil, 1.0))
}

func TestScaleIgnoresBounds(t *testing.T) {
	q := &model.Question{
		Type:   model.QuestionScale,
		Min:    intPtr(1),
		Max:    intPtr(5),
		Scores: datatypes.JSONMap{"1": 1},
	}

	assert.Equal(t, 7.0, Score(q, 7.0))
	assert.Equal(t, -3.0, Score(q, -3.0))
}

func TestSingleChoiceNumericLabel(t *testing.T) {
	q := &model.Question{
		Type:   model.QuestionButtons,
		Scores: datatypes.JSONMap{"3": 1.5, "True": 4, "False": 1},
	}

	assert.Equal(t, 1.5, Score(q, 3.0))
	assert.Equal(t, 1.5, Score(q, "3"))
	assert.Equal(t, 4.0, Score(q, true))
	assert.Equal(t, 1.0, Score(q, false))
	assert.Equal(t, 4.0, ScoreRaw(q, json.RawMessage(`true`)))
}

func TestScoreRaw(t *testing.T) {
	q := &model.Question{
		Type:   model.QuestionMultiSelect,
		Scores: datatypes.JSONMap{"a": 2, "b": 3, "c": 5},
	}

	assert.Equal(t, 5.0, ScoreRaw(q, json.RawMessage(`["a","b"]`)))
	assert.Equal(t, 0.0, ScoreRaw(q, json.RawMessage(`{broken`)))
}

func TestScoreIsDeterministic(t *testing.T) {
	q := &model.Question{
		Type:   model.QuestionMultiSelect,
		Scores: datatypes.JSONMap{"a": 0.1, "b": 0.2, "c": 0.3},
	}
	value := []any{"c", "a", "b"}

	first := Score(q, value)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Score(q, value))
	}
}
