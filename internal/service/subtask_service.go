package service

import (
	"context"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// SubtaskService manages subtasks. Subtasks are addressable by their own id;
// the parent-scoped variants additionally check ownership.
type SubtaskService struct {
	taskRepo    *repository.TaskRepository
	subtaskRepo *repository.SubtaskRepository
	now         func() time.Time
}

func NewSubtaskService(taskRepo *repository.TaskRepository, subtaskRepo *repository.SubtaskRepository) *SubtaskService {
	return &SubtaskService{taskRepo: taskRepo, subtaskRepo: subtaskRepo, now: time.Now}
}

func (s *SubtaskService) AddSubtask(ctx context.Context, taskID string, input SubtaskInput) (*model.Subtask, error) {
	if err := checkID(taskID, "task"); err != nil {
		return nil, err
	}
	if !hasTitle(input.Title) {
		return nil, invalid("Sub-task title is required")
	}
	if err := s.requireTask(ctx, taskID); err != nil {
		return nil, err
	}

	subtask := model.Subtask{TaskID: taskID}
	if err := input.apply(&subtask, s.now()); err != nil {
		return nil, err
	}
	subtask.ApplyDefaults()
	if err := s.subtaskRepo.Create(ctx, &subtask); err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (s *SubtaskService) ListSubtasks(ctx context.Context, taskID string) ([]model.Subtask, error) {
	if err := checkID(taskID, "task"); err != nil {
		return nil, err
	}
	if err := s.requireTask(ctx, taskID); err != nil {
		return nil, err
	}
	subtasks, err := s.subtaskRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if subtasks == nil {
		subtasks = []model.Subtask{}
	}
	for i := range subtasks {
		subtasks[i].ApplyDefaults()
	}
	return subtasks, nil
}

// UpdateSubtask updates a subtask found by its own id, whichever task owns it.
func (s *SubtaskService) UpdateSubtask(ctx context.Context, subtaskID string, input SubtaskInput) (*model.Subtask, error) {
	subtask, err := s.find(ctx, "", subtaskID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, subtask, input)
}

// UpdateTaskSubtask updates a subtask only if it belongs to the task.
func (s *SubtaskService) UpdateTaskSubtask(ctx context.Context, taskID, subtaskID string, input SubtaskInput) (*model.Subtask, error) {
	subtask, err := s.find(ctx, taskID, subtaskID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, subtask, input)
}

func (s *SubtaskService) update(ctx context.Context, subtask *model.Subtask, input SubtaskInput) (*model.Subtask, error) {
	if err := input.apply(subtask, s.now()); err != nil {
		return nil, err
	}
	if err := s.subtaskRepo.Save(ctx, subtask); err != nil {
		return nil, err
	}
	subtask.ApplyDefaults()
	return subtask, nil
}

func (s *SubtaskService) SetCompletion(ctx context.Context, subtaskID string, completed *bool) (*model.Subtask, error) {
	if err := knownID(subtaskID, "Subtask"); err != nil {
		return nil, err
	}
	if completed == nil {
		return nil, invalid("isCompleted must be a boolean")
	}
	subtask, err := s.find(ctx, "", subtaskID)
	if err != nil {
		return nil, err
	}
	subtask.SetCompleted(*completed, s.now())
	if err := s.subtaskRepo.Save(ctx, subtask); err != nil {
		return nil, err
	}
	subtask.ApplyDefaults()
	return subtask, nil
}

// DeleteSubtask removes a subtask by its own id.
func (s *SubtaskService) DeleteSubtask(ctx context.Context, subtaskID string) (*model.Subtask, error) {
	return s.delete(ctx, "", subtaskID)
}

// DeleteTaskSubtask removes a subtask only if it belongs to the task.
func (s *SubtaskService) DeleteTaskSubtask(ctx context.Context, taskID, subtaskID string) (*model.Subtask, error) {
	return s.delete(ctx, taskID, subtaskID)
}

func (s *SubtaskService) delete(ctx context.Context, taskID, subtaskID string) (*model.Subtask, error) {
	subtask, err := s.find(ctx, taskID, subtaskID)
	if err != nil {
		return nil, err
	}
	if err := s.subtaskRepo.Delete(ctx, subtask.ID); err != nil {
		return nil, err
	}
	subtask.ApplyDefaults()
	return subtask, nil
}

// find resolves a subtask. With an empty taskID ownership is not checked;
// otherwise the task must exist and own the subtask.
func (s *SubtaskService) find(ctx context.Context, taskID, subtaskID string) (*model.Subtask, error) {
	if taskID != "" {
		if err := knownID(taskID, "Task"); err != nil {
			return nil, err
		}
	}
	if err := knownID(subtaskID, "Subtask"); err != nil {
		return nil, err
	}

	if taskID == "" {
		subtask, err := s.subtaskRepo.FindByID(ctx, subtaskID)
		if err != nil {
			return nil, notFound(err, "Subtask")
		}
		return subtask, nil
	}

	if err := s.requireTask(ctx, taskID); err != nil {
		return nil, err
	}
	subtask, err := s.subtaskRepo.FindInTask(ctx, taskID, subtaskID)
	if err != nil {
		return nil, notFound(err, "Subtask")
	}
	return subtask, nil
}

func (s *SubtaskService) requireTask(ctx context.Context, taskID string) error {
	ok, err := s.taskRepo.Exists(ctx, taskID)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Resource: "Task"}
	}
	return nil
}
