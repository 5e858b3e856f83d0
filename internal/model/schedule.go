package model

import "time"

// Schedule is the scheduling, recurrence and gamification field set shared
// by tasks and subtasks.
type Schedule struct {
	Description    string       `json:"description"`
	DeadlineType   DeadlineType `json:"deadlineType"`
	DueDate        *time.Time   `json:"dueDate"`
	DueTime        string       `json:"dueTime"`
	IsCompleted    bool         `json:"isCompleted" gorm:"default:false"`
	CompletionDate *time.Time   `json:"completionDate"`
	Urgency        Urgency      `json:"urgency"`
	Importance     Importance   `json:"importance"`
	Links          []string     `json:"links" gorm:"serializer:json"`
	FilePaths      []string     `json:"filePaths" gorm:"serializer:json"`
	Notify         bool         `json:"notify" gorm:"default:false"`

	Frequency         Frequency         `json:"frequency"`
	Interval          int               `json:"interval"`
	ByDay             []string          `json:"byDay" gorm:"serializer:json"`
	ByMonthDay        int               `json:"byMonthDay"`
	RecurrenceEndType RecurrenceEndType `json:"recurrenceEndType"`
	RecurrenceEndDate *time.Time        `json:"recurrenceEndDate"`
	MaxOccurrences    int               `json:"maxOccurrences"`

	Points int `json:"points"`
}

func (s *Schedule) ApplyDefaults() {
	if s.DeadlineType == "" {
		s.DeadlineType = DeadlineNone
	}
	if s.Urgency == "" {
		s.Urgency = NotUrgent
	}
	if s.Importance == "" {
		s.Importance = NotImportant
	}
	if s.Frequency == "" {
		s.Frequency = FrequencyNone
	}
	if s.RecurrenceEndType == "" {
		s.RecurrenceEndType = EndNever
	}
	if s.Links == nil {
		s.Links = []string{}
	}
	if s.FilePaths == nil {
		s.FilePaths = []string{}
	}
	if s.ByDay == nil {
		s.ByDay = []string{}
	}
}

// SetCompleted flips the completion flag and keeps CompletionDate in step:
// stamped with now when completed, cleared otherwise.
func (s *Schedule) SetCompleted(completed bool, now time.Time) {
	s.IsCompleted = completed
	if completed {
		s.CompletionDate = &now
		return
	}
	s.CompletionDate = nil
}
