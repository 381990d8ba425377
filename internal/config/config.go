package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // Every request acts as the default user
	AuthModeToken AuthMode = "token" // Authorization: Bearer <user token>
)

type LockBackend string

const (
	LockBackendMemory LockBackend = "memory"
	LockBackendRedis  LockBackend = "redis"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		Lock
		Tasks
		Reconcile
		Audit
		Auth
	}

	HTTP struct {
		Port        int32
		Host        string
		CORSOrigins []string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   string // sqlite or postgres
		Path     string // sqlite file
		DSN      string // postgres connection string
		LogLevel string // silent, error, warn, info
	}
	Log struct {
		Level    string
		Encoding string // json or console
	}
	Lock struct {
		Backend       LockBackend
		RedisAddr     string
		RedisPassword string
		RedisDB       int
		TTL           time.Duration // Lease length for the redis backend
	}
	Tasks struct {
		Enabled           bool
		DatabasePath      string
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Reconcile struct {
		Enabled  bool
		Schedule string // Cron format: "30 3 * * *" = nightly at 03:30
	}
	Audit struct {
		RetentionDays int // Days to keep audit events (default: 90)
	}
	Auth struct {
		Mode AuthMode
	}
)

// NewConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func NewConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("cors_origins", "")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_encoding", "json")

	v.SetDefault("lock_backend", string(LockBackendMemory))
	v.SetDefault("lock_redis_addr", "localhost:6379")
	v.SetDefault("lock_redis_password", "")
	v.SetDefault("lock_redis_db", 0)
	v.SetDefault("lock_ttl", "10s")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", DefaultTasksDatabasePath)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("reconcile_enabled", false)
	v.SetDefault("reconcile_schedule", "30 3 * * *")

	v.SetDefault("audit_retention_days", 90)
	v.SetDefault("auth_mode", string(AuthModeNone))

	return &Config{
		HTTP: HTTP{
			Port:        v.GetInt32("PORT"),
			Host:        v.GetString("HOST"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   strings.ToLower(v.GetString("DATABASE_DRIVER")),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: strings.ToLower(v.GetString("DATABASE_LOG_LEVEL")),
		},
		Log: Log{
			Level:    v.GetString("LOG_LEVEL"),
			Encoding: v.GetString("LOG_ENCODING"),
		},
		Lock: Lock{
			Backend:       LockBackend(strings.ToLower(v.GetString("LOCK_BACKEND"))),
			RedisAddr:     v.GetString("LOCK_REDIS_ADDR"),
			RedisPassword: v.GetString("LOCK_REDIS_PASSWORD"),
			RedisDB:       v.GetInt("LOCK_REDIS_DB"),
			TTL:           v.GetDuration("LOCK_TTL"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			DatabasePath:      v.GetString("TASKS_DATABASE_PATH"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Reconcile: Reconcile{
			Enabled:  v.GetBool("RECONCILE_ENABLED"),
			Schedule: v.GetString("RECONCILE_SCHEDULE"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Auth: Auth{
			Mode: AuthMode(strings.ToLower(v.GetString("AUTH_MODE"))),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
