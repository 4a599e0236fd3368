// Package seed 从 YAML 文件导入题库。
package seed

import (
	"context"
	"emotest_backend/internal/model"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

// QuestionUpserter *repository.QuestionRepository 实现该接口
type QuestionUpserter interface {
	Upsert(ctx context.Context, q *model.Question) error
}

type questionFile struct {
	Questions []questionEntry `yaml:"questions"`
}

type questionEntry struct {
	Step     int                `yaml:"step"`
	Type     string             `yaml:"type"`
	Question string             `yaml:"question"`
	Options  []string           `yaml:"options"`
	Min      *int               `yaml:"min"`
	Max      *int               `yaml:"max"`
	Scores   map[string]float64 `yaml:"scores"`
	Active   *bool              `yaml:"active"`
}

// Parse 解析并校验题库文件内容
func Parse(data []byte) ([]model.Question, error) {
	var f questionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse question file: %w", err)
	}

	seen := make(map[int]bool, len(f.Questions))
	qs := make([]model.Question, 0, len(f.Questions))
	for i, e := range f.Questions {
		if e.Step < 1 {
			return nil, fmt.Errorf("question #%d: step must be >= 1", i+1)
		}
		if seen[e.Step] {
			return nil, fmt.Errorf("question #%d: duplicate step %d", i+1, e.Step)
		}
		seen[e.Step] = true

		t := model.QuestionType(e.Type)
		if !t.Valid() {
			return nil, fmt.Errorf("question #%d: unknown type %q", i+1, e.Type)
		}
		if e.Question == "" {
			return nil, fmt.Errorf("question #%d: empty question text", i+1)
		}

		q := model.Question{
			StepNumber: e.Step,
			Type:       t,
			Question:   e.Question,
			Min:        e.Min,
			Max:        e.Max,
			IsActive:   e.Active == nil || *e.Active,
		}
		if len(e.Options) > 0 {
			q.Options = datatypes.JSONSlice[string](e.Options)
		}
		if len(e.Scores) > 0 {
			q.Scores = datatypes.JSONMap{}
			for label, w := range e.Scores {
				q.Scores[label] = w
			}
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// LoadFile 读取题库文件并逐条写入，返回写入数量
func LoadFile(ctx context.Context, repo QuestionUpserter, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	qs, err := Parse(data)
	if err != nil {
		return 0, err
	}

	for i := range qs {
		if err := repo.Upsert(ctx, &qs[i]); err != nil {
			return i, fmt.Errorf("upsert step %d: %w", qs[i].StepNumber, err)
		}
	}
	return len(qs), nil
}
