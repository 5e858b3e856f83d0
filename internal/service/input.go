package service

import (
	"strings"
	"time"

	"task-tracker/internal/model"
)

// ScheduleInput carries the optional scheduling fields of a task or subtask
// request. A nil field means "leave unchanged"; any other value, empty or
// zero included, overwrites.
type ScheduleInput struct {
	Description       *string   `json:"description"`
	DeadlineType      *string   `json:"deadlineType"`
	DueDate           *string   `json:"dueDate"`
	DueTime           *string   `json:"dueTime"`
	IsCompleted       *bool     `json:"isCompleted"`
	Urgency           *string   `json:"urgency"`
	Importance        *string   `json:"importance"`
	Links             *[]string `json:"links"`
	FilePaths         *[]string `json:"filePaths"`
	Notify            *bool     `json:"notify"`
	Frequency         *string   `json:"frequency"`
	Interval          *int      `json:"interval"`
	ByDay             *[]string `json:"byDay"`
	ByMonthDay        *int      `json:"byMonthDay"`
	RecurrenceEndType *string   `json:"recurrenceEndType"`
	RecurrenceEndDate *string   `json:"recurrenceEndDate"`
	MaxOccurrences    *int      `json:"maxOccurrences"`
	Points            *int      `json:"points"`
}

// TaskInput is the body of task create and update requests.
type TaskInput struct {
	Title    *string `json:"title"`
	Priority *string `json:"priority"`
	ScheduleInput
	Subtasks []SubtaskInput `json:"subtasks"`
}

// SubtaskInput is the body of subtask create and update requests.
// Completed is the legacy spelling of IsCompleted.
type SubtaskInput struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	ScheduleInput
}

type ErrandInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"isCompleted"`
}

func hasTitle(title *string) bool {
	return title != nil && strings.TrimSpace(*title) != ""
}

func (in TaskInput) apply(task *model.Task, now time.Time) error {
	if in.Title != nil {
		if !hasTitle(in.Title) {
			return invalid("Title is required")
		}
		task.Title = *in.Title
	}
	if in.Priority != nil {
		p := model.Priority(*in.Priority)
		if !p.Valid() {
			return invalid("Invalid priority %q", *in.Priority)
		}
		task.Priority = p
	}
	return in.ScheduleInput.apply(&task.Schedule, now)
}

func (in SubtaskInput) apply(subtask *model.Subtask, now time.Time) error {
	if in.Title != nil {
		if !hasTitle(in.Title) {
			return invalid("Sub-task title is required")
		}
		subtask.Title = *in.Title
	}
	if in.IsCompleted == nil && in.Completed != nil {
		in.IsCompleted = in.Completed
	}
	return in.ScheduleInput.apply(&subtask.Schedule, now)
}

func (in ErrandInput) apply(errand *model.Errand) error {
	if in.Title != nil {
		if !hasTitle(in.Title) {
			return invalid("Errand title is required")
		}
		errand.Title = *in.Title
	}
	if in.Description != nil {
		errand.Description = *in.Description
	}
	if in.IsCompleted != nil {
		errand.IsCompleted = *in.IsCompleted
	}
	return nil
}

func (in ScheduleInput) apply(s *model.Schedule, now time.Time) error {
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.DeadlineType != nil {
		d := model.DeadlineType(*in.DeadlineType)
		if !d.Valid() {
			return invalid("Invalid deadlineType %q", *in.DeadlineType)
		}
		s.DeadlineType = d
	}
	if in.DueDate != nil {
		t, err := parseDate("dueDate", *in.DueDate)
		if err != nil {
			return err
		}
		s.DueDate = t
	}
	if in.DueTime != nil {
		s.DueTime = *in.DueTime
	}
	if in.Urgency != nil {
		u := model.Urgency(*in.Urgency)
		if !u.Valid() {
			return invalid("Invalid urgency %q", *in.Urgency)
		}
		s.Urgency = u
	}
	if in.Importance != nil {
		i := model.Importance(*in.Importance)
		if !i.Valid() {
			return invalid("Invalid importance %q", *in.Importance)
		}
		s.Importance = i
	}
	if in.Links != nil {
		s.Links = *in.Links
	}
	if in.FilePaths != nil {
		s.FilePaths = *in.FilePaths
	}
	if in.Notify != nil {
		s.Notify = *in.Notify
	}
	if in.Frequency != nil {
		f := model.Frequency(*in.Frequency)
		if !f.Valid() {
			return invalid("Invalid frequency %q", *in.Frequency)
		}
		s.Frequency = f
	}
	if in.Interval != nil {
		s.Interval = *in.Interval
	}
	if in.ByDay != nil {
		s.ByDay = *in.ByDay
	}
	if in.ByMonthDay != nil {
		s.ByMonthDay = *in.ByMonthDay
	}
	if in.RecurrenceEndType != nil {
		r := model.RecurrenceEndType(*in.RecurrenceEndType)
		if !r.Valid() {
			return invalid("Invalid recurrenceEndType %q", *in.RecurrenceEndType)
		}
		s.RecurrenceEndType = r
	}
	if in.RecurrenceEndDate != nil {
		t, err := parseDate("recurrenceEndDate", *in.RecurrenceEndDate)
		if err != nil {
			return err
		}
		s.RecurrenceEndDate = t
	}
	if in.MaxOccurrences != nil {
		s.MaxOccurrences = *in.MaxOccurrences
	}
	if in.Points != nil {
		s.Points = *in.Points
	}
	if in.IsCompleted != nil && *in.IsCompleted != s.IsCompleted {
		s.SetCompleted(*in.IsCompleted, now)
	}
	return nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates. An empty
// string clears the date.
func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, invalid("Invalid %s %q", field, raw)
}
