// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations
//	├── store.go         # Repository bundle and transactions for the progress service
//	├── dberr/           # gorm error classification
//	├── gormquery/       # query.QueryBase to gorm translation
//	├── books/           # Reading targets
//	├── courses/         # Learning targets
//	├── userbooks/       # Reading progress aggregates
//	├── usercourses/     # Course progress aggregates
//	├── recordings/      # Per-day book and course recordings
//	├── audit/           # Progress audit trail
//	└── users/           # User management
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(cfg.Database, log)
//
//	booksRepo := books.NewRepository(db.DB)
//	page, err := booksRepo.FindAll(ctx, query.New(query.Where(query.Contains("title", "go"))))
//
//	store := database.NewStore(db.DB)
//	err = store.WithinTx(ctx, func(tx progress.Store) error { ... })
//
// # Listings
//
// Every FindAll takes a query.QueryBase and returns query.Result with the
// total size of the matching set. Each repository publishes a query.Schema
// naming the fields that may be filtered and sorted; anything else is a
// Validation error.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Wrap gorm errors with dberr.Translate
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
