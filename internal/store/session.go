package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
)

// sessionFile is the on-disk shape of a persisted session.
type sessionFile struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// fileSessionStore persists the signed session token as a small JSON file
// next to the database, letting a returning user skip the login screen while
// the token is still valid. It is deliberately not part of the SQLite store:
// restoring a backup must never revoke the current session.
type fileSessionStore struct {
	logger *logger.Logger
	path   string
}

// NewSessionStore constructs a [SessionStore] writing to the configured
// session file path.
func NewSessionStore(cfg config.Storage, logger *logger.Logger) SessionStore {
	logger.Debug().Str("path", cfg.SessionFile).Msg("creating session store")
	return &fileSessionStore{
		logger: logger,
		path:   cfg.SessionFile,
	}
}

// Save writes the token to the session file, creating parent directories as
// needed. The file is restricted to the owning user.
func (s *fileSessionStore) Save(token string) error {
	data, err := json.MarshalIndent(sessionFile{Token: token, SavedAt: time.Now()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating session directory: %w", err)
		}
	}

	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Err(err).Str("func", "*fileSessionStore.Save").Msg("error: writing session file")
		return fmt.Errorf("writing session file: %w", err)
	}

	return nil
}

// Load returns the previously saved token. A missing or unreadable session
// file yields [ErrSessionNotFound]; the caller falls back to the login flow.
func (s *fileSessionStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrSessionNotFound
		}
		s.logger.Err(err).Str("func", "*fileSessionStore.Load").Msg("error: reading session file")
		return "", fmt.Errorf("reading session file: %w", err)
	}

	var session sessionFile
	if err = json.Unmarshal(data, &session); err != nil {
		s.logger.Warn().Str("func", "*fileSessionStore.Load").Msg("malformed session file, discarding")
		return "", ErrSessionNotFound
	}

	if session.Token == "" {
		return "", ErrSessionNotFound
	}

	return session.Token, nil
}

// Clear removes the session file. Clearing an already-absent session is not
// an error.
func (s *fileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Err(err).Str("func", "*fileSessionStore.Clear").Msg("error: removing session file")
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
