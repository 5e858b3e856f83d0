package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var input service.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Error creating task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		respondError(c, err, "Error fetching task")
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var input service.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("taskId"), input)
	if err != nil {
		respondError(c, err, "Error updating task")
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) SetCompletion(c *gin.Context) {
	completed, ok := bindCompletion(c)
	if !ok {
		return
	}

	task, err := h.taskService.SetCompletion(c.Request.Context(), c.Param("taskId"), completed)
	if err != nil {
		respondError(c, err, "Error updating task completion")
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete serves both /tasks/delete/:id and /tasks/:taskId.
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		id = c.Param("taskId")
	}

	task, err := h.taskService.DeleteTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Error deleting task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted", "task": task})
}
