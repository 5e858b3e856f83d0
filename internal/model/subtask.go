package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subtask belongs to exactly one Task and embeds its errands.
type Subtask struct {
	ID     string `json:"_id" gorm:"primaryKey"`
	TaskID string `json:"taskId" gorm:"index;not null"`
	Title  string `json:"title" gorm:"not null"`
	Schedule
	Errands   []Errand  `json:"errands" gorm:"serializer:json"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Subtask) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *Subtask) ApplyDefaults() {
	s.Schedule.ApplyDefaults()
	if s.Errands == nil {
		s.Errands = []Errand{}
	}
}

// Errand finds an embedded errand by id.
func (s *Subtask) Errand(id string) (int, bool) {
	for i := range s.Errands {
		if s.Errands[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
