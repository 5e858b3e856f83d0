package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

type SubtaskHandler struct {
	subtaskService *service.SubtaskService
}

func NewSubtaskHandler(subtaskService *service.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{subtaskService: subtaskService}
}

func (h *SubtaskHandler) Add(c *gin.Context) {
	var input service.SubtaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c, err)
		return
	}

	subtask, err := h.subtaskService.AddSubtask(c.Request.Context(), c.Param("taskId"), input)
	if err != nil {
		respondError(c, err, "Error adding sub-task")
		return
	}

	c.JSON(http.StatusCreated, subtask)
}

func (h *SubtaskHandler) List(c *gin.Context) {
	subtasks, err := h.subtaskService.ListSubtasks(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		respondError(c, err, "Error fetching sub-tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"subtasks": subtasks})
}

// Update serves /tasks/subtasks/:subTaskId, which ignores the owning task,
// and /tasks/:taskId/subtasks/:subTaskId, which requires it.
func (h *SubtaskHandler) Update(c *gin.Context) {
	var input service.SubtaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c, err)
		return
	}

	ctx := c.Request.Context()
	subtaskID := c.Param("subTaskId")

	var err error
	var subtask *model.Subtask
	if taskID := c.Param("taskId"); taskID != "" {
		subtask, err = h.subtaskService.UpdateTaskSubtask(ctx, taskID, subtaskID, input)
	} else {
		subtask, err = h.subtaskService.UpdateSubtask(ctx, subtaskID, input)
	}
	if err != nil {
		respondError(c, err, "Error updating sub-task")
		return
	}

	c.JSON(http.StatusOK, subtask)
}

func (h *SubtaskHandler) SetCompletion(c *gin.Context) {
	completed, ok := bindCompletion(c)
	if !ok {
		return
	}

	subtask, err := h.subtaskService.SetCompletion(c.Request.Context(), c.Param("subtaskId"), completed)
	if err != nil {
		respondError(c, err, "Error updating sub-task completion")
		return
	}

	c.JSON(http.StatusOK, subtask)
}

// Delete serves /tasks/delete/subtask/:subTaskId and the task-scoped
// /tasks/:taskId/subtasks/:subTaskId. The deleted subtask is returned under
// "task" for client compatibility.
func (h *SubtaskHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	subtaskID := c.Param("subTaskId")

	var err error
	var subtask *model.Subtask
	if taskID := c.Param("taskId"); taskID != "" {
		subtask, err = h.subtaskService.DeleteTaskSubtask(ctx, taskID, subtaskID)
	} else {
		subtask, err = h.subtaskService.DeleteSubtask(ctx, subtaskID)
	}
	if err != nil {
		respondError(c, err, "Error deleting sub-task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sub-task deleted", "task": subtask})
}
