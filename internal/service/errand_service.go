package service

import (
	"context"

	"github.com/google/uuid"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// ErrandService manages errands embedded in a subtask. Every call is scoped
// by (task, subtask).
type ErrandService struct {
	subtasks    *SubtaskService
	subtaskRepo *repository.SubtaskRepository
}

func NewErrandService(subtasks *SubtaskService, subtaskRepo *repository.SubtaskRepository) *ErrandService {
	return &ErrandService{subtasks: subtasks, subtaskRepo: subtaskRepo}
}

func (s *ErrandService) AddErrand(ctx context.Context, taskID, subtaskID string, input ErrandInput) (*model.Errand, error) {
	if !hasTitle(input.Title) {
		return nil, invalid("Errand title is required")
	}
	subtask, err := s.subtasks.find(ctx, taskID, subtaskID)
	if err != nil {
		return nil, err
	}

	errand := model.Errand{ID: uuid.NewString()}
	if err := input.apply(&errand); err != nil {
		return nil, err
	}
	subtask.Errands = append(subtask.Errands, errand)
	if err := s.subtaskRepo.Save(ctx, subtask); err != nil {
		return nil, err
	}
	return &errand, nil
}

func (s *ErrandService) UpdateErrand(ctx context.Context, taskID, subtaskID, errandID string, input ErrandInput) (*model.Errand, error) {
	subtask, idx, err := s.find(ctx, taskID, subtaskID, errandID)
	if err != nil {
		return nil, err
	}
	if err := input.apply(&subtask.Errands[idx]); err != nil {
		return nil, err
	}
	if err := s.subtaskRepo.Save(ctx, subtask); err != nil {
		return nil, err
	}
	errand := subtask.Errands[idx]
	return &errand, nil
}

func (s *ErrandService) DeleteErrand(ctx context.Context, taskID, subtaskID, errandID string) (*model.Errand, error) {
	subtask, idx, err := s.find(ctx, taskID, subtaskID, errandID)
	if err != nil {
		return nil, err
	}
	errand := subtask.Errands[idx]
	subtask.Errands = append(subtask.Errands[:idx], subtask.Errands[idx+1:]...)
	if err := s.subtaskRepo.Save(ctx, subtask); err != nil {
		return nil, err
	}
	return &errand, nil
}

func (s *ErrandService) find(ctx context.Context, taskID, subtaskID, errandID string) (*model.Subtask, int, error) {
	subtask, err := s.subtasks.find(ctx, taskID, subtaskID)
	if err != nil {
		return nil, -1, err
	}
	idx, ok := subtask.Errand(errandID)
	if !ok {
		return nil, -1, &NotFoundError{Resource: "Errand"}
	}
	return subtask, idx, nil
}
