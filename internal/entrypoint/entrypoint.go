// Package entrypoint wires configuration, storage, the progress engine and the
// HTTP server together.
package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/audit"
	"github.com/mrlokans/tracker/internal/auth"
	"github.com/mrlokans/tracker/internal/clock"
	"github.com/mrlokans/tracker/internal/config"
	"github.com/mrlokans/tracker/internal/database"
	auditrepo "github.com/mrlokans/tracker/internal/database/audit"
	"github.com/mrlokans/tracker/internal/database/users"
	"github.com/mrlokans/tracker/internal/entities"
	http_controllers "github.com/mrlokans/tracker/internal/http"
	"github.com/mrlokans/tracker/internal/keylock"
	"github.com/mrlokans/tracker/internal/logger"
	"github.com/mrlokans/tracker/internal/progress"
	"github.com/mrlokans/tracker/internal/scheduler"
	"github.com/mrlokans/tracker/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// NewLogger builds the process logger from configuration.
func NewLogger(cfg *config.Config) *zap.Logger {
	return logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
}

// app holds the components shared by the server and the CLI commands.
type app struct {
	db       *database.Database
	store    *database.Store
	users    *users.Repository
	audit    *audit.Service
	progress *progress.Service
	closers  []func() error
	log      *zap.Logger
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a := &app{db: db, log: log}
	a.closers = append(a.closers, db.Close)

	locker, err := newLocker(ctx, cfg.Lock, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	if c, ok := locker.(io.Closer); ok {
		a.closers = append(a.closers, c.Close)
	}

	a.store = database.NewStore(db.DB)
	a.users = users.NewRepository(db.DB)
	a.audit = audit.NewService(auditrepo.NewRepository(db.DB), clock.Real{}, log.Named("audit"))
	a.progress = progress.NewService(a.store, locker, clock.Real{}, log.Named("progress"))
	a.progress.SetAuditor(a.audit)
	return a, nil
}

func newLocker(ctx context.Context, cfg config.Lock, log *zap.Logger) (progress.Locker, error) {
	switch cfg.Backend {
	case config.LockBackendRedis:
		locker, err := keylock.NewRedis(ctx, keylock.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.TTL,
		}, log.Named("keylock"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect lock backend: %w", err)
		}
		log.Info("using redis aggregate locks", zap.String("addr", cfg.RedisAddr))
		return locker, nil
	case config.LockBackendMemory, "":
		return keylock.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown lock backend %q", cfg.Backend)
	}
}

// Close waits for pending audit writes and releases resources in reverse order.
func (a *app) Close() {
	if a.audit != nil {
		a.audit.Wait()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("error closing resource", zap.Error(err))
		}
	}
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, log *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}
	log.Info("shutting down server", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Background work stops only after in-flight requests have drained.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info("server exited")
	return nil
}

// Run starts the tracker server with every configured component.
func Run(cfg *config.Config, version string, log *zap.Logger) error {
	log.Info("starting tracker", zap.String("version", version))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	defaultUser, err := a.users.EnsureDefaultUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure default user: %w", err)
	}

	var taskClient *tasks.Client
	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Tasks.DatabasePath, tasks.FromAppConfig(cfg.Tasks), log)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		a.closers = append(a.closers, taskClient.Close)

		taskClient.Register(
			tasks.NewRebuildProgressQueue(a.progress, log),
			tasks.NewReconcileAllQueue(a.progress, log),
			tasks.NewCleanupAuditEventsQueue(a.audit, log),
		)
		taskClient.Start(ctx)

		schedCfg := scheduler.Config{AuditRetentionDays: cfg.Audit.RetentionDays}
		if cfg.Reconcile.Enabled {
			schedCfg.ReconcileSchedule = cfg.Reconcile.Schedule
		}
		maintenance = scheduler.NewMaintenanceScheduler(taskClient, schedCfg, log)
		if err := maintenance.Start(ctx); err != nil {
			return fmt.Errorf("failed to start maintenance scheduler: %w", err)
		}
	} else {
		log.Warn("task queue disabled; reconcile and audit cleanup will not run in the background")
	}

	if cfg.Auth.Mode == config.AuthModeToken {
		log.Info("authentication mode: token")
	} else {
		log.Info("authentication mode: none", zap.Uint("default_user_id", defaultUser.ID))
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       a.db,
		Books:          a.store.BookRepository(),
		Courses:        a.store.CourseRepository(),
		Progress:       a.progress,
		Audit:          a.audit,
		AuthMiddleware: auth.NewMiddleware(a.users, cfg.Auth, defaultUser.ID, log.Named("auth")),
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		Version:        version,
		Logger:         log.Named("http"),
	}
	// A typed nil would register the task routes without a queue behind them.
	if taskClient != nil {
		routerCfg.Tasks = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		cancel()
	}

	return Serve(router, cfg, log, onShutdown)
}

// Reconcile rebuilds every aggregate synchronously, outside the task queue.
func Reconcile(ctx context.Context, cfg *config.Config, log *zap.Logger) (tasks.ReconcileSummary, error) {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return tasks.ReconcileSummary{}, err
	}
	defer a.Close()

	return tasks.Reconcile(ctx, a.progress, log)
}

// CreateUser registers an API user and returns it with its bearer token.
func CreateUser(ctx context.Context, cfg *config.Config, log *zap.Logger, username, email string) (*entities.User, error) {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	return a.users.CreateUser(ctx, username, email)
}
