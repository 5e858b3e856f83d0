package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gorm.io/gorm"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// backupSchema describes a backup document: an array of task records, each
// with subtasks and errands. Fields are optional so partial records can be
// merged over stored tasks, but present ones must have the stored type.
const backupSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"$defs": {
		"id": {"type": "string", "minLength": 1},
		"title": {"type": "string", "minLength": 1},
		"date": {"type": ["string", "null"]},
		"strings": {"type": ["array", "null"], "items": {"type": "string"}},
		"schedule": {
			"type": "object",
			"properties": {
				"description": {"type": "string"},
				"dueDate": {"$ref": "#/$defs/date"},
				"completionDate": {"$ref": "#/$defs/date"},
				"recurrenceEndDate": {"$ref": "#/$defs/date"},
				"isCompleted": {"type": "boolean"},
				"notify": {"type": "boolean"},
				"links": {"$ref": "#/$defs/strings"},
				"filePaths": {"$ref": "#/$defs/strings"},
				"byDay": {"$ref": "#/$defs/strings"},
				"points": {"type": "integer"},
				"interval": {"type": "integer"},
				"byMonthDay": {"type": "integer"},
				"maxOccurrences": {"type": "integer"}
			}
		},
		"errand": {
			"type": "object",
			"required": ["title"],
			"properties": {
				"_id": {"$ref": "#/$defs/id"},
				"title": {"$ref": "#/$defs/title"},
				"description": {"type": "string"},
				"isCompleted": {"type": "boolean"}
			}
		},
		"subtask": {
			"allOf": [{"$ref": "#/$defs/schedule"}],
			"required": ["title"],
			"properties": {
				"_id": {"$ref": "#/$defs/id"},
				"title": {"$ref": "#/$defs/title"},
				"errands": {"type": ["array", "null"], "items": {"$ref": "#/$defs/errand"}}
			}
		}
	},
	"type": "array",
	"items": {
		"allOf": [{"$ref": "#/$defs/schedule"}],
		"properties": {
			"_id": {"$ref": "#/$defs/id"},
			"title": {"$ref": "#/$defs/title"},
			"priority": {"enum": ["Low", "Medium", "High"]},
			"subtasks": {"type": ["array", "null"], "items": {"$ref": "#/$defs/subtask"}}
		}
	}
}`

var backupDocument = jsonschema.MustCompileString("backup.schema.json", backupSchema)

// BackupService exports tasks to JSON files and restores them.
type BackupService struct {
	taskRepo *repository.TaskRepository
	dir      string
	now      func() time.Time
}

func NewBackupService(taskRepo *repository.TaskRepository, dir string) *BackupService {
	if dir == "" {
		dir = "backups"
	}
	return &BackupService{taskRepo: taskRepo, dir: dir, now: time.Now}
}

// Export writes every task with its subtasks to a timestamped file in the
// backup directory and returns the file path.
func (s *BackupService) Export(ctx context.Context) (string, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return "", err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir %q: %w", s.dir, err)
	}

	name := fmt.Sprintf("tasks-%s.json", s.now().UTC().Format("20060102T150405Z"))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

// Restore reads a JSON array of tasks and upserts them by id. Known ids get
// the fields present in the record written over the stored task; unknown
// ids are inserted with the id from the file. Nothing is written unless the
// whole file reads and parses.
func (s *BackupService) Restore(ctx context.Context, path string) ([]model.Task, error) {
	if path == "" {
		return nil, invalid("filePath is required")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, invalid("Backup file is not valid JSON: %v", err)
	}
	if err := backupDocument.Validate(doc); err != nil {
		return nil, invalid("Backup file must be a JSON array of tasks: %v", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, invalid("Backup file must be a JSON array of tasks: %v", err)
	}

	// Records apply in file order, so a repeated id merges over the
	// earlier record rather than over the stored row.
	merged := make(map[string]*model.Task, len(records))
	tasks := make([]*model.Task, 0, len(records))
	for i, record := range records {
		task, seen, err := s.merge(ctx, record, merged)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if !seen {
			tasks = append(tasks, task)
		}
	}

	if err := s.taskRepo.Upsert(ctx, tasks); err != nil {
		return nil, err
	}

	restored := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		stored, err := s.taskRepo.FindByID(ctx, task.ID)
		if err != nil {
			return nil, fmt.Errorf("reload task %s: %w", task.ID, err)
		}
		stored.ApplyDefaults()
		restored = append(restored, *stored)
	}
	return restored, nil
}

// merge decodes a record over the task already merged under the same id,
// then over the stored task, then over an empty task. seen reports that the
// id was merged by an earlier record.
func (s *BackupService) merge(ctx context.Context, record json.RawMessage, merged map[string]*model.Task) (*model.Task, bool, error) {
	var ident struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(record, &ident); err != nil {
		return nil, false, invalid("Invalid task record: %v", err)
	}

	task := &model.Task{}
	seen := false
	if ident.ID != "" {
		if err := checkID(ident.ID, "task"); err != nil {
			return nil, false, err
		}
		if prev, ok := merged[ident.ID]; ok {
			task, seen = prev, true
		} else {
			existing, err := s.taskRepo.FindByID(ctx, ident.ID)
			switch {
			case err == nil:
				task = existing
				task.Subtasks = nil
			case errors.Is(err, gorm.ErrRecordNotFound):
			default:
				return nil, false, fmt.Errorf("find task: %w", err)
			}
			merged[ident.ID] = task
		}
	}

	if err := json.Unmarshal(record, task); err != nil {
		return nil, false, invalid("Invalid task record: %v", err)
	}
	if task.Title == "" {
		return nil, false, invalid("Title is required")
	}
	task.ApplyDefaults()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now()
	}
	return task, seen, nil
}
