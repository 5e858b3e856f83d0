package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker/internal/service"
)

// respondError maps service errors onto status codes: validation 400,
// not found 404, anything else 500 with fallback as the message.
func respondError(c *gin.Context, err error, fallback string) {
	var validationErr *service.ValidationError
	var notFoundErr *service.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundErr.Error()})
	default:
		log.Printf("[error] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback, "error": err.Error()})
	}
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
}

type completionRequest struct {
	IsCompleted *bool `json:"isCompleted"`
}

// bindCompletion decodes the completion toggle body. Anything but a JSON
// boolean yields a 400 and false.
func bindCompletion(c *gin.Context) (*bool, bool) {
	var req completionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsCompleted == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "isCompleted must be a boolean"})
		return nil, false
	}
	return req.IsCompleted, true
}
