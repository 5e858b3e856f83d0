package service

import (
	"context"
	"math"
	"sort"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

const dayLayout = "2006-01-02"

// DatePoints is one entry of the accumulated points series.
type DatePoints struct {
	Date   string `json:"date"`
	Points int    `json:"points"`
}

// CompletionStats compares completion dates with due dates.
type CompletionStats struct {
	CompletedBeforeDueDate int `json:"completedBeforeDueDate"`
	CompletedAfterDueDate  int `json:"completedAfterDueDate"`
}

// ChartService aggregates points of completed tasks for the charts. Tasks
// are fetched on every call.
type ChartService struct {
	taskRepo *repository.TaskRepository
}

func NewChartService(taskRepo *repository.TaskRepository) *ChartService {
	return &ChartService{taskRepo: taskRepo}
}

func (s *ChartService) DailyPoints(ctx context.Context) (map[string]int, error) {
	tasks, err := s.taskRepo.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}
	return DailyPoints(tasks), nil
}

func (s *ChartService) AccumulatedPoints(ctx context.Context) ([]DatePoints, error) {
	tasks, err := s.taskRepo.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}
	return AccumulatedPoints(tasks), nil
}

func (s *ChartService) WeeklyPoints(ctx context.Context) (map[int]int, error) {
	tasks, err := s.taskRepo.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}
	return WeeklyPoints(tasks), nil
}

func (s *ChartService) MonthlyPoints(ctx context.Context) (map[int]int, error) {
	tasks, err := s.taskRepo.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}
	return MonthlyPoints(tasks), nil
}

func (s *ChartService) CompletionStats(ctx context.Context) (CompletionStats, error) {
	tasks, err := s.taskRepo.ListCompleted(ctx)
	if err != nil {
		return CompletionStats{}, err
	}
	return CompareCompletion(tasks), nil
}

// DailyPoints sums points per UTC completion date. Tasks without a
// completion date are skipped.
func DailyPoints(tasks []model.Task) map[string]int {
	points := make(map[string]int)
	for _, task := range tasks {
		if task.CompletionDate == nil {
			continue
		}
		points[task.CompletionDate.UTC().Format(dayLayout)] += task.Points
	}
	return points
}

// AccumulatedPoints returns the running total of daily points in date order.
func AccumulatedPoints(tasks []model.Task) []DatePoints {
	daily := DailyPoints(tasks)
	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]DatePoints, 0, len(dates))
	total := 0
	for _, date := range dates {
		total += daily[date]
		series = append(series, DatePoints{Date: date, Points: total})
	}
	return series
}

// WeeklyPoints sums points per week number. Week numbers carry no year, so
// the same week of different years shares a bucket.
func WeeklyPoints(tasks []model.Task) map[int]int {
	points := make(map[int]int)
	for _, task := range tasks {
		if task.CompletionDate == nil {
			continue
		}
		points[WeekNumber(*task.CompletionDate)] += task.Points
	}
	return points
}

// WeekNumber computes ceil((daysSinceJan1 + weekdayOfJan1 + 1) / 7) in UTC,
// where daysSinceJan1 keeps its fractional part and Sunday is weekday 0.
func WeekNumber(t time.Time) int {
	t = t.UTC()
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := t.Sub(jan1).Hours() / 24
	return int(math.Ceil((days + float64(jan1.Weekday()) + 1) / 7))
}

// MonthlyPoints sums points per calendar month (1-12), ignoring the year.
func MonthlyPoints(tasks []model.Task) map[int]int {
	points := make(map[int]int)
	for _, task := range tasks {
		if task.CompletionDate == nil {
			continue
		}
		points[int(task.CompletionDate.UTC().Month())] += task.Points
	}
	return points
}

// CompareCompletion counts tasks completed strictly before their due date
// and tasks completed on or after it. Tasks missing either date are counted
// in neither bucket.
func CompareCompletion(tasks []model.Task) CompletionStats {
	var stats CompletionStats
	for _, task := range tasks {
		if task.CompletionDate == nil || task.DueDate == nil {
			continue
		}
		if task.CompletionDate.Before(*task.DueDate) {
			stats.CompletedBeforeDueDate++
		} else {
			stats.CompletedAfterDueDate++
		}
	}
	return stats
}
