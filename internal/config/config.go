package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config keeps runtime settings for the server and its background jobs.
type Config struct {
	Port           string        `toml:"port"`
	GinMode        string        `toml:"gin_mode"`
	DatabaseURL    string        `toml:"database_url"`
	CORSOrigins    []string      `toml:"cors_allowed_origins"`
	BackupDir      string        `toml:"backup_dir"`
	BackupInterval time.Duration `toml:"-"`
	BackupHours    int           `toml:"backup_interval_hours"`
	TelegramToken  string        `toml:"telegram_token"`
	TelegramChatID int64         `toml:"telegram_chat_id"`
	ReminderTime   string        `toml:"reminder_time"`
}

// Load reads the optional TOML file named by CONFIG_FILE, then environment
// variables on top of it, then fills sane defaults.
func Load() (Config, error) {
	var cfg Config

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("read config file %q: %w", path, err)
		}
	}

	setString(&cfg.Port, "PORT")
	setString(&cfg.GinMode, "GIN_MODE")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.BackupDir, "BACKUP_DIR")
	setString(&cfg.TelegramToken, "TELEGRAM_TOKEN")
	setString(&cfg.ReminderTime, "REMINDER_TIME")
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		cfg.CORSOrigins = parseOrigins(raw)
	}
	if raw := strings.TrimSpace(os.Getenv("BACKUP_INTERVAL_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours < 0 {
			return cfg, fmt.Errorf("BACKUP_INTERVAL_HOURS must be a non-negative integer, got %q", raw)
		}
		cfg.BackupHours = hours
	}
	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer, got %q", raw)
		}
		cfg.TelegramChatID = id
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.GinMode == "" {
		cfg.GinMode = "debug"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "task_tracker.db"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = "backups"
	}
	if cfg.ReminderTime == "" {
		cfg.ReminderTime = "08:00"
	}
	cfg.BackupInterval = time.Duration(cfg.BackupHours) * time.Hour

	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

// RemindersEnabled reports whether the Telegram digest should be scheduled.
func (c Config) RemindersEnabled() bool {
	return c.TelegramToken != ""
}

func setString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func parseOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
