package config

const (
	// DefaultDatabasePath is the default path for the library database
	DefaultDatabasePath = "./library.db"

	// DefaultEnvFile is read before the environment when present
	DefaultEnvFile = ".env"

	DefaultMaxCoverSizeMB = 5
)
