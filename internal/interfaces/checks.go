package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/tracker/internal/audit"
	"github.com/mrlokans/tracker/internal/auth"
	"github.com/mrlokans/tracker/internal/database"
	"github.com/mrlokans/tracker/internal/database/books"
	"github.com/mrlokans/tracker/internal/database/courses"
	"github.com/mrlokans/tracker/internal/database/users"
	"github.com/mrlokans/tracker/internal/http"
	"github.com/mrlokans/tracker/internal/keylock"
	"github.com/mrlokans/tracker/internal/progress"
	"github.com/mrlokans/tracker/internal/scheduler"
	"github.com/mrlokans/tracker/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ progress.Store = (*database.Store)(nil)

var _ http.BookStore = (*books.Repository)(nil)
var _ http.CourseStore = (*courses.Repository)(nil)

var _ auth.UserLookup = (*users.Repository)(nil)

// =============================================================================
// Progress Engine
// =============================================================================

var _ progress.Locker = (*keylock.Memory)(nil)
var _ progress.Locker = (*keylock.Redis)(nil)

var _ progress.Auditor = (*audit.Service)(nil)

var _ http.ProgressService = (*progress.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.Rebuilder = (*progress.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
