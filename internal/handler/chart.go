package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker/internal/service"
)

// ChartHandler serves the read-only points aggregations.
type ChartHandler struct {
	chartService *service.ChartService
}

func NewChartHandler(chartService *service.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

func (h *ChartHandler) DailyPoints(c *gin.Context) {
	points, err := h.chartService.DailyPoints(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching daily points")
		return
	}
	c.JSON(http.StatusOK, points)
}

func (h *ChartHandler) AccumulatedPoints(c *gin.Context) {
	series, err := h.chartService.AccumulatedPoints(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching accumulated points")
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *ChartHandler) WeeklyPoints(c *gin.Context) {
	points, err := h.chartService.WeeklyPoints(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching weekly points")
		return
	}
	c.JSON(http.StatusOK, points)
}

func (h *ChartHandler) MonthlyPoints(c *gin.Context) {
	points, err := h.chartService.MonthlyPoints(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching monthly points")
		return
	}
	c.JSON(http.StatusOK, points)
}

func (h *ChartHandler) TasksCompletion(c *gin.Context) {
	stats, err := h.chartService.CompletionStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching task completion stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
