package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/audit"
	"github.com/mrlokans/tracker/internal/auth"
	"github.com/mrlokans/tracker/internal/database"
	"github.com/mrlokans/tracker/internal/progress"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Books    BookStore
	Courses  CourseStore
	Progress ProgressService

	// Audit trail (optional)
	Audit *audit.Service

	// Task queue (optional); reconcile endpoints are only registered with it
	Tasks TaskQueue

	// Authentication; nil acts as the default user 0
	AuthMiddleware *auth.Middleware

	// CORS allowed origins; empty disables CORS handling
	CORSOrigins []string

	// Application info
	Version string

	Logger *zap.Logger
}

var _ ProgressService = (*progress.Service)(nil)
