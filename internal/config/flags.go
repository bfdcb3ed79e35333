package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database file path
//	-b backup snapshot directory
//	-backups-keep number of snapshots retained
//	-s session file path
//	-c/-config json file path with configs
//	-token-sign-key session token signing key
//	-token-issuer session token issuer name
//	-token-duration session token duration (e.g., "24h", "30m")
func ParseFlags() *StructuredConfig {
	var databasePath string
	var backupsDir string
	var backupsKeep int
	var sessionFile string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration

	flag.StringVar(&databasePath, "d", "", "Database file path")
	flag.StringVar(&backupsDir, "b", "", "Backup snapshot directory")
	flag.IntVar(&backupsKeep, "backups-keep", 0, "Number of backup snapshots retained")
	flag.StringVar(&sessionFile, "s", "", "Session file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Session token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Session token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Session token duration (e.g., 24h, 30m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databasePath,
			},
			Backups: Backups{
				Dir:  backupsDir,
				Keep: backupsKeep,
			},
			SessionFile: sessionFile,
		},
		JSONFilePath: jsonConfigPath,
	}
}
