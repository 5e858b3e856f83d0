package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"task-tracker/internal/bot"
	"task-tracker/internal/config"
	"task-tracker/internal/handler"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)
	subtaskRepo := repository.NewSubtaskRepository(db)

	subtaskSvc := service.NewSubtaskService(taskRepo, subtaskRepo)
	backupSvc := service.NewBackupService(taskRepo, cfg.BackupDir)
	reminderSvc := service.NewReminderService(taskRepo)

	router := handler.NewRouter(handler.Services{
		Tasks:    service.NewTaskService(taskRepo),
		Subtasks: subtaskSvc,
		Errands:  service.NewErrandService(subtaskSvc, subtaskRepo),
		Charts:   service.NewChartService(taskRepo),
		Backups:  backupSvc,
	}, db, cfg.CORSOrigins)

	scheduler := service.NewSchedulerService(time.Local, 30*time.Second)
	if cfg.BackupInterval > 0 {
		if _, err := scheduler.ScheduleInterval("backup", cfg.BackupInterval, func(ctx context.Context) error {
			path, err := backupSvc.Export(ctx)
			if err == nil {
				log.Printf("[info] backup written to %s", path)
			}
			return err
		}); err != nil {
			log.Fatalf("schedule backup: %v", err)
		}
	}
	if cfg.RemindersEnabled() {
		notifier, err := bot.New(cfg.TelegramToken, cfg.TelegramChatID, reminderSvc)
		if err != nil {
			log.Fatalf("bot: %v", err)
		}
		if _, err := scheduler.ScheduleDaily("reminders", cfg.ReminderTime, notifier.SendDailyDigest); err != nil {
			log.Fatalf("schedule reminders: %v", err)
		}
	}
	if scheduler.Len() > 0 {
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("[info] server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[info] shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[warn] server forced to shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
