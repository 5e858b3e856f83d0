package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker/internal/service"
)

type ErrandHandler struct {
	errandService *service.ErrandService
}

func NewErrandHandler(errandService *service.ErrandService) *ErrandHandler {
	return &ErrandHandler{errandService: errandService}
}

func (h *ErrandHandler) Add(c *gin.Context) {
	var input service.ErrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c, err)
		return
	}

	errand, err := h.errandService.AddErrand(c.Request.Context(), c.Param("taskId"), c.Param("subTaskId"), input)
	if err != nil {
		respondError(c, err, "Error adding errand")
		return
	}

	c.JSON(http.StatusCreated, errand)
}

func (h *ErrandHandler) Update(c *gin.Context) {
	var input service.ErrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c, err)
		return
	}

	errand, err := h.errandService.UpdateErrand(c.Request.Context(), c.Param("taskId"), c.Param("subTaskId"), c.Param("errandId"), input)
	if err != nil {
		respondError(c, err, "Error updating errand")
		return
	}

	c.JSON(http.StatusOK, errand)
}

func (h *ErrandHandler) Delete(c *gin.Context) {
	errand, err := h.errandService.DeleteErrand(c.Request.Context(), c.Param("taskId"), c.Param("subTaskId"), c.Param("errandId"))
	if err != nil {
		respondError(c, err, "Error deleting errand")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Errand deleted", "errand": errand})
}
