package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"task-tracker/internal/middleware"
	"task-tracker/internal/service"
)

// Services bundles what the router dispatches to.
type Services struct {
	Tasks    *service.TaskService
	Subtasks *service.SubtaskService
	Errands  *service.ErrandService
	Charts   *service.ChartService
	Backups  *service.BackupService
}

// NewRouter builds the gin engine with the /api routes, health checks and
// metrics.
func NewRouter(svc Services, db *gorm.DB, corsOrigins []string) *gin.Engine {
	taskHandler := NewTaskHandler(svc.Tasks)
	subtaskHandler := NewSubtaskHandler(svc.Subtasks)
	errandHandler := NewErrandHandler(svc.Errands)
	chartHandler := NewChartHandler(svc.Charts)
	backupHandler := NewBackupHandler(svc.Backups)
	healthHandler := NewHealthHandler(db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.CORS(corsOrigins))
	r.Use(middleware.Metrics())

	r.GET("/health/live", healthHandler.Liveness)
	r.GET("/health/ready", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		tasks := api.Group("/tasks")
		{
			tasks.POST("/create", taskHandler.Create)
			tasks.GET("/list", taskHandler.List)
			tasks.GET("/:taskId", taskHandler.Get)
			tasks.PUT("/:taskId", taskHandler.Update)
			tasks.PATCH("/:taskId/completed", taskHandler.SetCompletion)
			tasks.DELETE("/delete/:id", taskHandler.Delete)
			tasks.DELETE("/:taskId", taskHandler.Delete)

			tasks.POST("/:taskId/subtasks", subtaskHandler.Add)
			tasks.GET("/:taskId/subtask/list", subtaskHandler.List)
			tasks.PUT("/subtasks/:subTaskId", subtaskHandler.Update)
			tasks.PUT("/:taskId/subtasks/:subTaskId", subtaskHandler.Update)
			tasks.DELETE("/delete/subtask/:subTaskId", subtaskHandler.Delete)
			tasks.DELETE("/:taskId/subtasks/:subTaskId", subtaskHandler.Delete)

			tasks.POST("/:taskId/subtasks/:subTaskId/errands", errandHandler.Add)
			tasks.PUT("/:taskId/subtasks/:subTaskId/errands/:errandId", errandHandler.Update)
			tasks.DELETE("/:taskId/subtasks/:subTaskId/errands/:errandId", errandHandler.Delete)

			tasks.POST("/restore", backupHandler.Restore)
			tasks.POST("/backup", backupHandler.Export)
		}

		api.PATCH("/subtasks/:subtaskId/completed", subtaskHandler.SetCompletion)

		charts := api.Group("/charts")
		{
			charts.GET("/daily-points", chartHandler.DailyPoints)
			charts.GET("/accumulated-points", chartHandler.AccumulatedPoints)
			charts.GET("/weekly-points", chartHandler.WeeklyPoints)
			charts.GET("/monthly-points", chartHandler.MonthlyPoints)
			charts.GET("/tasks-completion", chartHandler.TasksCompletion)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return r
}
