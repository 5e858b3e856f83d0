package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker/internal/service"
)

type BackupHandler struct {
	backupService *service.BackupService
}

func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

type restoreRequest struct {
	FilePath string `json:"filePath"`
}

func (h *BackupHandler) Restore(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	tasks, err := h.backupService.Restore(c.Request.Context(), req.FilePath)
	if err != nil {
		respondError(c, err, "Error restoring tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Export writes a backup file on demand.
func (h *BackupHandler) Export(c *gin.Context) {
	path, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error backing up tasks")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Backup created", "filePath": path})
}
