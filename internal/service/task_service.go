package service

import (
	"context"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// TaskService wraps main task business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
	now      func() time.Time
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, now: time.Now}
}

// CreateTask validates the input and persists a new task. Subtasks in the
// input are validated individually and stored in the same transaction.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	if !hasTitle(input.Title) {
		return nil, invalid("Title is required")
	}

	now := s.now()
	task := model.Task{}
	if err := input.apply(&task, now); err != nil {
		return nil, err
	}
	task.ApplyDefaults()

	for _, in := range input.Subtasks {
		if !hasTitle(in.Title) {
			return nil, invalid("Sub-task title is required")
		}
		subtask := model.Subtask{}
		if err := in.apply(&subtask, now); err != nil {
			return nil, err
		}
		subtask.ApplyDefaults()
		task.Subtasks = append(task.Subtasks, subtask)
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	for i := range tasks {
		tasks[i].ApplyDefaults()
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	if err := knownID(taskID, "Task"); err != nil {
		return nil, err
	}
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, notFound(err, "Task")
	}
	task.ApplyDefaults()
	return task, nil
}

// UpdateTask overwrites the supplied fields. At least one of title,
// description or priority must be present.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, input TaskInput) (*model.Task, error) {
	if err := checkID(taskID, "task"); err != nil {
		return nil, err
	}
	if input.Title == nil && input.Description == nil && input.Priority == nil {
		return nil, invalid("At least one of title, description or priority is required")
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, notFound(err, "Task")
	}
	if err := input.apply(task, s.now()); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	task.ApplyDefaults()
	return task, nil
}

// SetCompletion marks the task done or not done and stamps or clears its
// completion date.
func (s *TaskService) SetCompletion(ctx context.Context, taskID string, completed *bool) (*model.Task, error) {
	if err := knownID(taskID, "Task"); err != nil {
		return nil, err
	}
	if completed == nil {
		return nil, invalid("isCompleted must be a boolean")
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, notFound(err, "Task")
	}
	task.SetCompleted(*completed, s.now())
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	task.ApplyDefaults()
	return task, nil
}

// DeleteTask removes a task together with its subtasks and returns what was
// deleted.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) (*model.Task, error) {
	if err := knownID(taskID, "Task"); err != nil {
		return nil, err
	}
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, notFound(err, "Task")
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return nil, err
	}
	task.ApplyDefaults()
	return task, nil
}
