package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-finance-tracker application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the session token
	// parameters.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the SQLite store file, the backup
	// snapshot directory, and the persisted session file.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged after environment
	// variables and flags. Populated via the CONFIG environment variable
	// or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control the
// persisted-session token lifecycle.
type App struct {
	// TokenSignKey is the secret key used to sign and verify the session
	// JWT written to the session file.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued session
	// token. Tokens whose issuer does not match are rejected on restore.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a persisted session remains valid
	// after login (e.g. "24h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups the configuration for all persistence locations used by
// the application.
type Storage struct {
	// DB holds the SQLite store file settings.
	DB DB `envPrefix:"DB_"`

	// Backups holds the snapshot directory settings.
	Backups Backups `envPrefix:"BACKUPS_"`

	// SessionFile is the path of the file holding the signed session
	// token between runs.
	// Env: STORAGE_SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`
}

// DB holds the SQLite store file settings.
type DB struct {
	// DSN is the path of the SQLite database file. The whole store lives
	// in this single file so that a backup snapshot can be a plain
	// byte-for-byte copy of it.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Backups holds the snapshot directory settings.
type Backups struct {
	// Dir is the directory where backup snapshots are written and read.
	// Env: STORAGE_BACKUPS_DIR
	Dir string `env:"DIR"`

	// Keep is the number of most recent snapshots retained in Dir; older
	// ones are pruned at startup.
	// Env: STORAGE_BACKUPS_KEEP
	Keep int `env:"KEEP"`
}

// Default configuration values applied by [GetConfig] for any field left
// unset by every other source.
const (
	DefaultDatabasePath  = "finance.db"
	DefaultBackupsDir    = "backups"
	DefaultBackupsKeep   = 10
	DefaultSessionFile   = "session.json"
	DefaultTokenIssuer   = "go-finance-tracker"
	DefaultTokenDuration = 24 * time.Hour

	// DefaultTokenSignKey signs the session token of a zero-config run.
	// The token only gates the local session file, not a network surface;
	// set APP_TOKEN_SIGN_KEY to override it.
	DefaultTokenSignKey = "go-finance-tracker-local-session"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  DefaultTokenSignKey,
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
		},
		Storage: Storage{
			DB:          DB{DSN: DefaultDatabasePath},
			Backups:     Backups{Dir: DefaultBackupsDir, Keep: DefaultBackupsKeep},
			SessionFile: DefaultSessionFile,
		},
	}
}

// GetConfig loads, merges, and validates the application configuration from
// all available sources in the following priority order (earlier sources
// win; later ones only fill remaining zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
