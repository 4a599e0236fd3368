package service

import (
	"context"
	"emotest_backend/internal/model"
	"emotest_backend/internal/repository"
	"emotest_backend/pkg/database"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库每个连接独立，限制为单连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }

// scenarioCatalog: 1 = scale(1..5), 2 = multi-select {x:1, y:2}
func scenarioCatalog() []model.Question {
	return []model.Question{
		{
			StepNumber: 1,
			Type:       model.QuestionScale,
			Question:   "How tense do you feel right now?",
			Min:        intPtr(1),
			Max:        intPtr(5),
			Scores:     datatypes.JSONMap{"1": 1, "2": 2, "3": 3, "4": 4, "5": 5},
			IsActive:   true,
		},
		{
			StepNumber: 2,
			Type:       model.QuestionMultiSelect,
			Question:   "Pick everything that applies",
			Options:    datatypes.JSONSlice[string]{"x", "y"},
			Scores:     datatypes.JSONMap{"x": 1, "y": 2},
			IsActive:   true,
		},
	}
}

func seedQuestions(t *testing.T, db *gorm.DB, qs []model.Question) {
	t.Helper()
	repo := repository.NewQuestionRepository(db)
	for i := range qs {
		require.NoError(t, repo.Upsert(context.Background(), &qs[i]))
	}
}

type flowFixture struct {
	db        *gorm.DB
	questions *repository.QuestionRepository
	progress  *repository.ProgressRepository
	flow      *TestFlowService
}

func newFlowFixture(t *testing.T, qs []model.Question) *flowFixture {
	t.Helper()
	db := newTestDB(t)
	seedQuestions(t, db, qs)

	f := &flowFixture{
		db:        db,
		questions: repository.NewQuestionRepository(db),
		progress:  repository.NewProgressRepository(db),
	}
	f.flow = NewTestFlowService(NewQuestionService(f.questions), NewProgressService(f.progress), nil)
	return f
}
