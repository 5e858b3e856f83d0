package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-tracker/internal/repository"
)

// setupTestDB creates an in-memory SQLite database for testing. The pool is
// pinned to one connection so every query sees the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))
	return db
}

type testServices struct {
	db       *gorm.DB
	tasks    *TaskService
	subtasks *SubtaskService
	errands  *ErrandService
	charts   *ChartService
}

func newTestServices(t *testing.T, now time.Time) testServices {
	t.Helper()

	db := setupTestDB(t)
	taskRepo := repository.NewTaskRepository(db)
	subtaskRepo := repository.NewSubtaskRepository(db)

	tasks := NewTaskService(taskRepo)
	tasks.now = func() time.Time { return now }
	subtasks := NewSubtaskService(taskRepo, subtaskRepo)
	subtasks.now = func() time.Time { return now }

	return testServices{
		db:       db,
		tasks:    tasks,
		subtasks: subtasks,
		errands:  NewErrandService(subtasks, subtaskRepo),
		charts:   NewChartService(taskRepo),
	}
}

func ptr[T any](v T) *T { return &v }
