package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a main task. It owns its subtasks through Subtask.TaskID.
type Task struct {
	ID       string   `json:"_id" gorm:"primaryKey"`
	Title    string   `json:"title" gorm:"not null"`
	Priority Priority `json:"priority"`
	Schedule
	Subtasks  []Subtask `json:"subtasks" gorm:"foreignKey:TaskID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an id when the caller did not supply one.
func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ApplyDefaults fills enum fields left empty and replaces nil slices, so
// responses never carry null collections.
func (t *Task) ApplyDefaults() {
	if t.Priority == "" {
		t.Priority = PriorityLow
	}
	t.Schedule.ApplyDefaults()
	if t.Subtasks == nil {
		t.Subtasks = []Subtask{}
	}
	for i := range t.Subtasks {
		t.Subtasks[i].ApplyDefaults()
	}
}
