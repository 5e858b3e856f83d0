package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// ReminderService builds the daily digest of tasks and subtasks flagged
// with notify.
type ReminderService struct {
	taskRepo *repository.TaskRepository
}

func NewReminderService(taskRepo *repository.TaskRepository) *ReminderService {
	return &ReminderService{taskRepo: taskRepo}
}

type reminderItem struct {
	title     string
	parent    string
	schedule  model.Schedule
	createdAt time.Time
}

// DailySummary returns the digest for now, or an empty string when nothing
// is flagged.
func (s *ReminderService) DailySummary(ctx context.Context, now time.Time) (string, error) {
	tasks, err := s.taskRepo.ListNotifiable(ctx)
	if err != nil {
		return "", err
	}
	return BuildSummary(tasks, now), nil
}

// BuildSummary renders the HTML digest for the given incomplete tasks.
func BuildSummary(tasks []model.Task, now time.Time) string {
	var pending, recurring []reminderItem
	add := func(item reminderItem) {
		if item.schedule.IsCompleted || !item.schedule.Notify {
			return
		}
		if item.schedule.Frequency != "" && item.schedule.Frequency != model.FrequencyNone {
			if recurringDue(item.schedule, now) {
				recurring = append(recurring, item)
			}
			return
		}
		pending = append(pending, item)
	}

	for _, task := range tasks {
		if task.IsCompleted {
			continue
		}
		add(reminderItem{title: task.Title, schedule: task.Schedule, createdAt: task.CreatedAt})
		for _, sub := range task.Subtasks {
			add(reminderItem{title: sub.Title, parent: task.Title, schedule: sub.Schedule, createdAt: sub.CreatedAt})
		}
	}

	if len(pending) == 0 && len(recurring) == 0 {
		return ""
	}

	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i].schedule.DueDate, pending[j].schedule.DueDate
		switch {
		case a == nil && b == nil:
			return pending[i].createdAt.After(pending[j].createdAt)
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily digest</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("2006-01-02")))

	builder.WriteString("🔥 <b>Open tasks</b>\n")
	if len(pending) == 0 {
		builder.WriteString("— nothing open\n")
	} else {
		for _, item := range pending {
			builder.WriteString(formatItem(item, now))
		}
	}

	builder.WriteString("\n♻️ <b>Recurring today</b>\n")
	if len(recurring) == 0 {
		builder.WriteString("— nothing scheduled\n")
	} else {
		for _, item := range recurring {
			builder.WriteString(formatRecurring(item))
		}
	}

	return strings.TrimSpace(builder.String())
}

// recurringDue reports whether a recurring item has an occurrence on now's
// date. Custom rules are never reported.
func recurringDue(s model.Schedule, now time.Time) bool {
	if s.RecurrenceEndType == model.EndDate && s.RecurrenceEndDate != nil && now.After(*s.RecurrenceEndDate) {
		return false
	}

	year, month, day := now.Date()
	switch s.Frequency {
	case model.FrequencyDaily:
		return true
	case model.FrequencyWeekly:
		today := strings.ToLower(now.Weekday().String())
		for _, d := range s.ByDay {
			d = strings.ToLower(strings.TrimSpace(d))
			if d != "" && strings.HasPrefix(today, d) {
				return true
			}
		}
		return false
	case model.FrequencyMonthly:
		if s.ByMonthDay <= 0 {
			return false
		}
		dueDay := s.ByMonthDay
		if end := daysInMonth(month, year); dueDay > end {
			dueDay = end
		}
		return dueDay == day
	case model.FrequencyYearly:
		if s.DueDate == nil {
			return false
		}
		due := s.DueDate.In(now.Location())
		return due.Month() == month && due.Day() == day
	}
	return false
}

func formatItem(item reminderItem, now time.Time) string {
	var sb strings.Builder

	icon := "🟢"
	if item.schedule.DueDate != nil {
		d := item.schedule.DueDate.In(now.Location())
		switch {
		case now.After(d):
			icon = "⚠️"
		case d.Sub(now) <= 48*time.Hour:
			icon = "⏳"
		}
	}
	if item.schedule.Urgency == model.Urgent {
		icon += "❗"
	}

	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(item.title))))
	if item.parent != "" {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(strings.TrimSpace(item.parent))))
	}

	if item.schedule.DueDate != nil {
		d := item.schedule.DueDate.In(now.Location())
		if now.After(d) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s — <b>overdue</b>", d.Format("2006-01-02")))
		} else {
			daysLeft := int(d.Sub(now).Hours()/24) + 1
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · ≈%d days left", d.Format("2006-01-02"), daysLeft))
		}
	}

	if item.schedule.Description != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(item.schedule.Description))))
	}

	sb.WriteByte('\n')
	return sb.String()
}

func formatRecurring(item reminderItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("♻️ %s", html.EscapeString(strings.TrimSpace(item.title))))
	if item.parent != "" {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(strings.TrimSpace(item.parent))))
	}
	sb.WriteString(fmt.Sprintf("\n   📆 %s", item.schedule.Frequency))
	if item.schedule.DueTime != "" {
		sb.WriteString(fmt.Sprintf(" at %s", html.EscapeString(item.schedule.DueTime)))
	}
	sb.WriteByte('\n')
	return sb.String()
}

func daysInMonth(month time.Month, year int) int {
	// Move to next month, roll back a day.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
