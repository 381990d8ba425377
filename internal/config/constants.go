package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./tracker.db"

	// DefaultTasksDatabasePath holds the background task queue
	DefaultTasksDatabasePath = "./tracker-tasks.db"
)
