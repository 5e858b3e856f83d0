package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-tracker/internal/repository"
	"task-tracker/internal/service"
)

type testServer struct {
	router    *gin.Engine
	backupDir string
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, repository.Migrate(db))

	taskRepo := repository.NewTaskRepository(db)
	subtaskRepo := repository.NewSubtaskRepository(db)
	subtasks := service.NewSubtaskService(taskRepo, subtaskRepo)
	backupDir := t.TempDir()

	router := NewRouter(Services{
		Tasks:    service.NewTaskService(taskRepo),
		Subtasks: subtasks,
		Errands:  service.NewErrandService(subtasks, subtaskRepo),
		Charts:   service.NewChartService(taskRepo),
		Backups:  service.NewBackupService(taskRepo, backupDir),
	}, db, []string{"https://app.example"})

	return testServer{router: router, backupDir: backupDir}
}

func (s testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s testServer) createTask(t *testing.T, body map[string]any) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/tasks/create", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)["_id"].(string)
}

func TestCreateTask(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/tasks/create", map[string]any{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title is required", decode[map[string]any](t, w)["message"])

	w = srv.do(t, http.MethodPost, "/api/tasks/create", map[string]any{"title": "x", "priority": "Critical"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/tasks/create", `{"title": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/tasks/create", map[string]any{"title": "Write report"})
	require.Equal(t, http.StatusCreated, w.Code)
	task := decode[map[string]any](t, w)
	assert.NotEmpty(t, task["_id"])
	assert.Equal(t, "Write report", task["title"])
	assert.Equal(t, "Low", task["priority"])
	assert.Equal(t, false, task["isCompleted"])
	assert.Equal(t, []any{}, task["subtasks"])

	w = srv.do(t, http.MethodGet, "/api/tasks/list", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]any](t, w), 1)
}

func TestUpdateAndDeleteTask(t *testing.T) {
	srv := newTestServer(t)
	id := srv.createTask(t, map[string]any{"title": "Draft", "description": "keep"})

	w := srv.do(t, http.MethodPut, "/api/tasks/"+id, map[string]any{"points": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPut, "/api/tasks/"+id, map[string]any{"priority": "High"})
	require.Equal(t, http.StatusOK, w.Code)
	task := decode[map[string]any](t, w)
	assert.Equal(t, "High", task["priority"])
	assert.Equal(t, "keep", task["description"])

	w = srv.do(t, http.MethodDelete, "/api/tasks/delete/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decode[map[string]any](t, w)["message"])

	w = srv.do(t, http.MethodDelete, "/api/tasks/delete/not-an-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decode[map[string]any](t, w)["message"])

	w = srv.do(t, http.MethodPut, "/api/tasks/not-an-id", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/tasks/delete/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "Task deleted", body["message"])
	assert.Equal(t, id, body["task"].(map[string]any)["_id"])

	w = srv.do(t, http.MethodGet, "/api/tasks/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleCompletion(t *testing.T) {
	srv := newTestServer(t)
	id := srv.createTask(t, map[string]any{"title": "Toggle me"})

	for _, body := range []string{`{"isCompleted": "true"}`, `{"isCompleted": 1}`, `{}`} {
		w := srv.do(t, http.MethodPatch, "/api/tasks/"+id+"/completed", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w := srv.do(t, http.MethodPatch, "/api/tasks/"+id+"/completed", map[string]any{"isCompleted": true})
	require.Equal(t, http.StatusOK, w.Code)
	task := decode[map[string]any](t, w)
	assert.Equal(t, true, task["isCompleted"])
	assert.NotNil(t, task["completionDate"])

	w = srv.do(t, http.MethodPatch, "/api/tasks/"+id+"/completed", map[string]any{"isCompleted": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[map[string]any](t, w)["completionDate"])
}

func TestSubtaskRoutes(t *testing.T) {
	srv := newTestServer(t)
	taskID := srv.createTask(t, map[string]any{"title": "Parent"})
	otherID := srv.createTask(t, map[string]any{"title": "Other"})

	w := srv.do(t, http.MethodPost, "/api/tasks/"+taskID+"/subtasks", map[string]any{"title": "Child"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	subID := decode[map[string]any](t, w)["_id"].(string)

	w = srv.do(t, http.MethodGet, "/api/tasks/"+taskID+"/subtask/list", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[map[string][]map[string]any](t, w)
	require.Len(t, list["subtasks"], 1)
	assert.Equal(t, subID, list["subtasks"][0]["_id"])

	w = srv.do(t, http.MethodPut, "/api/tasks/subtasks/"+subID, map[string]any{"title": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", decode[map[string]any](t, w)["title"])

	w = srv.do(t, http.MethodPut, "/api/tasks/"+otherID+"/subtasks/"+subID, map[string]any{"title": "Hijack"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPatch, "/api/subtasks/"+subID+"/completed", map[string]any{"isCompleted": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]any](t, w)["isCompleted"])

	w = srv.do(t, http.MethodPost, "/api/tasks/"+taskID+"/subtasks/"+subID+"/errands", map[string]any{"title": "Buy tape"})
	require.Equal(t, http.StatusCreated, w.Code)
	errandID := decode[map[string]any](t, w)["_id"].(string)

	w = srv.do(t, http.MethodDelete, "/api/tasks/"+taskID+"/subtasks/"+subID+"/errands/"+errandID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Errand deleted", decode[map[string]any](t, w)["message"])

	w = srv.do(t, http.MethodDelete, "/api/tasks/delete/subtask/"+subID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "Sub-task deleted", body["message"])
	assert.Equal(t, subID, body["task"].(map[string]any)["_id"])
}

func TestUnresolvableIDsAreNotFound(t *testing.T) {
	srv := newTestServer(t)
	taskID := srv.createTask(t, map[string]any{"title": "Parent"})

	tests := []struct {
		method  string
		path    string
		body    any
		message string
	}{
		{http.MethodGet, "/api/tasks/nonexistent", nil, "Task not found"},
		{http.MethodDelete, "/api/tasks/delete/nonexistent", nil, "Task not found"},
		{http.MethodDelete, "/api/tasks/nonexistent", nil, "Task not found"},
		{http.MethodPatch, "/api/tasks/nonexistent/completed", map[string]any{"isCompleted": true}, "Task not found"},
		{http.MethodPut, "/api/tasks/subtasks/nonexistent", map[string]any{"title": "x"}, "Subtask not found"},
		{http.MethodPut, "/api/tasks/nonexistent/subtasks/" + uuid.NewString(), map[string]any{"title": "x"}, "Task not found"},
		{http.MethodPatch, "/api/subtasks/nonexistent/completed", map[string]any{"isCompleted": true}, "Subtask not found"},
		{http.MethodDelete, "/api/tasks/delete/subtask/nonexistent", nil, "Subtask not found"},
		{http.MethodPost, "/api/tasks/" + taskID + "/subtasks/nonexistent/errands", map[string]any{"title": "x"}, "Subtask not found"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := srv.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
			assert.Equal(t, tt.message, decode[map[string]any](t, w)["message"])
		})
	}
}

func TestChartRoutes(t *testing.T) {
	srv := newTestServer(t)
	for _, points := range []int{5, 3} {
		id := srv.createTask(t, map[string]any{"title": "Done", "points": points})
		w := srv.do(t, http.MethodPatch, "/api/tasks/"+id+"/completed", map[string]any{"isCompleted": true})
		require.Equal(t, http.StatusOK, w.Code)
	}
	srv.createTask(t, map[string]any{"title": "Open", "points": 50})
	today := time.Now().UTC()

	w := srv.do(t, http.MethodGet, "/api/charts/daily-points", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int{today.Format("2006-01-02"): 8}, decode[map[string]int](t, w))

	w = srv.do(t, http.MethodGet, "/api/charts/accumulated-points", nil)
	require.Equal(t, http.StatusOK, w.Code)
	series := decode[[]map[string]any](t, w)
	require.Len(t, series, 1)
	assert.EqualValues(t, 8, series[0]["points"])

	w = srv.do(t, http.MethodGet, "/api/charts/monthly-points", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int{strconv.Itoa(int(today.Month())): 8}, decode[map[string]int](t, w))

	w = srv.do(t, http.MethodGet, "/api/charts/weekly-points", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[map[string]int](t, w), 1)

	w = srv.do(t, http.MethodGet, "/api/charts/tasks-completion", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int{"completedBeforeDueDate": 0, "completedAfterDueDate": 0}, decode[map[string]int](t, w))
}

func TestRestoreRoute(t *testing.T) {
	srv := newTestServer(t)
	id := uuid.NewString()
	require.NoError(t, os.WriteFile(filepath.Join(srv.backupDir, "seed.json"),
		[]byte(`[{"_id": "`+id+`", "title": "Seeded", "points": 2}]`), 0o644))

	w := srv.do(t, http.MethodPost, "/api/tasks/restore", map[string]any{"filePath": "seed.json"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode[[]any](t, w), 1)

	w = srv.do(t, http.MethodGet, "/api/tasks/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Seeded", decode[map[string]any](t, w)["title"])

	require.NoError(t, os.WriteFile(filepath.Join(srv.backupDir, "bad.json"), []byte(`{"not": "a list"}`), 0o644))
	w = srv.do(t, http.MethodPost, "/api/tasks/restore", map[string]any{"filePath": "bad.json"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/tasks/backup", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.FileExists(t, decode[map[string]any](t, w)["filePath"].(string))
}

func TestCORSAndFallbacks(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks/list", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/tasks/list", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = srv.do(t, http.MethodGet, "/api/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", decode[map[string]any](t, w)["message"])

	w = srv.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tasktracker_http_requests_total")
}
