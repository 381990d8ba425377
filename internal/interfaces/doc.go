// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Progress Engine Ports
//
//   - progress.Store: transactional access to catalogue, aggregates and recordings (internal/progress/ports.go)
//   - progress.Locker: per-aggregate mutual exclusion (internal/keylock)
//   - progress.Auditor: fire-and-forget activity trail (internal/audit/service.go)
//
// ## HTTP Dependencies
//
//   - BookStore / CourseStore: catalogue access (internal/http/stores.go)
//   - ProgressService: reading and study operations (internal/http/stores.go)
//   - TaskQueue: enqueue and inspect background tasks (internal/http/stores.go)
//   - AuditReader: audit listing (internal/http/audit.go)
//
// ## Background Work
//
//   - tasks.Rebuilder: aggregate rebuilds used by the reconcile queues (internal/tasks/rebuild_progress.go)
//   - scheduler.Enqueuer: where cron jobs put their tasks (internal/scheduler/reconcile.go)
//
// # Adding a New Trackable Target
//
// To track a new kind of target (e.g., podcasts):
//
//  1. Add the catalogue entity, the aggregate (embedding entities.Progress)
//     and its recording type in internal/entities/
//
//  2. Create a repository sub-package under internal/database/ with a
//     query.Schema listing the filterable fields:
//
//     var Schema = query.Schema{
//         Name:        "user_podcasts",
//         Fields:      map[string]query.Field{"status": {Column: "status", Kind: query.KindString}},
//         DefaultSort: "updated_at",
//         TieBreaker:  "id",
//     }
//
//  3. Expose it from database.Store and add operations to progress.Service
//     that run inside withLock
//
//  4. Register routes in internal/http/router.go
//
// # Adding a New Lock Backend
//
//  1. Implement progress.Locker in internal/keylock/
//
//     func (l *EtcdLocker) Lock(ctx context.Context, key string) (func(), error)
//
//  2. Add a config.LockBackend value and select it in entrypoint.newLocker
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
