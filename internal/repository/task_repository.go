package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker/internal/model"
)

// TaskRepository handles CRUD for main tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task together with any subtasks attached to it.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Preload("Subtasks").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ListCompleted(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("is_completed = ?", true).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list completed tasks: %w", err)
	}
	return tasks, nil
}

// ListNotifiable returns incomplete tasks with their subtasks. It does not
// filter on notify: a subtask can ask for reminders under a parent that
// does not, so callers pick the notify items themselves.
func (r *TaskRepository) ListNotifiable(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Preload("Subtasks").
		Where("is_completed = ?", false).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list notifiable tasks: %w", err)
	}
	return tasks, nil
}

// FindByID loads a task and its subtasks. Missing rows surface as
// gorm.ErrRecordNotFound.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Subtasks").Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Exists reports whether a task with the id is stored.
func (r *TaskRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("find task: %w", err)
	}
	return count > 0, nil
}

// Save writes the task's own columns. Subtasks are left untouched.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Delete removes the task and its subtasks in one transaction.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Subtask{}).Error; err != nil {
			return fmt.Errorf("delete subtasks: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
	return err
}

// Upsert saves every task in one transaction, inserting unknown ids and
// overwriting known ones. Attached subtasks are upserted as well.
func (r *TaskRepository) Upsert(ctx context.Context, tasks []*model.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, task := range tasks {
			if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
				return fmt.Errorf("upsert task %s: %w", task.ID, err)
			}
			for i := range task.Subtasks {
				task.Subtasks[i].TaskID = task.ID
				if err := tx.Save(&task.Subtasks[i]).Error; err != nil {
					return fmt.Errorf("upsert subtask %s: %w", task.Subtasks[i].ID, err)
				}
			}
		}
		return nil
	})
	return err
}
