// Package backup copies the SQLite store file to timestamped snapshots and
// restores a selected snapshot over the live store.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
)

var (
	ErrSourceMissing    = errors.New("store file does not exist")
	ErrNoBackups        = errors.New("no backups available")
	ErrInvalidSelection = errors.New("invalid backup selection")
)

// timestampLayout yields names that sort lexicographically in time order.
const timestampLayout = "20060102_150405"

const backupPrefix = "finance_backup_"

// Snapshot describes one backup file on disk.
type Snapshot struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Manager performs whole-file copies of the SQLite store. Copies are only
// consistent because the application holds no open connections between
// operations; the manager itself never touches SQL.
type Manager struct {
	storePath  string
	backupsDir string
	logger     *logger.Logger
}

// NewManager constructs a Manager for the given store file and the
// configured backups directory.
func NewManager(storePath string, cfg config.Backups, logger *logger.Logger) *Manager {
	return &Manager{
		storePath:  storePath,
		backupsDir: cfg.Dir,
		logger:     logger,
	}
}

// Backup copies the store file into the backups directory under a
// timestamped name and returns the created snapshot.
//
// Returns ErrSourceMissing when the store file does not exist yet.
func (m *Manager) Backup() (Snapshot, error) {
	if _, err := os.Stat(m.storePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, ErrSourceMissing
		}
		return Snapshot{}, fmt.Errorf("checking store file: %w", err)
	}

	if err := os.MkdirAll(m.backupsDir, 0o755); err != nil {
		return Snapshot{}, fmt.Errorf("creating backups directory: %w", err)
	}

	name := backupPrefix + time.Now().Format(timestampLayout) + ".db"
	destination := filepath.Join(m.backupsDir, name)

	if err := copyFile(m.storePath, destination); err != nil {
		m.logger.Err(err).Str("func", "*Manager.Backup").Msg("error: copying store file")
		return Snapshot{}, fmt.Errorf("copying store file: %w", err)
	}

	info, err := os.Stat(destination)
	if err != nil {
		return Snapshot{}, fmt.Errorf("checking created backup: %w", err)
	}

	m.logger.Info().Str("backup", name).Int64("size", info.Size()).Msg("backup created")

	return Snapshot{
		Name:    name,
		Path:    destination,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// List returns the snapshots in the backups directory, newest first.
// A missing backups directory yields an empty list, not an error.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.backupsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading backups directory: %w", err)
	}

	var snapshots []Snapshot
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		snapshots = append(snapshots, Snapshot{
			Name:    entry.Name(),
			Path:    filepath.Join(m.backupsDir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// timestamped names sort chronologically, newest first
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name > snapshots[j].Name
	})

	return snapshots, nil
}

// Restore copies the chosen snapshot over the live store file, replacing its
// current contents entirely. The snapshot is taken at face value; a file
// that was never a valid store will surface errors on the next query.
//
// The store file is left untouched when the selection does not name an
// existing snapshot.
func (m *Manager) Restore(snapshot Snapshot) error {
	if _, err := os.Stat(snapshot.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrInvalidSelection
		}
		return fmt.Errorf("checking backup file: %w", err)
	}

	if err := copyFile(snapshot.Path, m.storePath); err != nil {
		m.logger.Err(err).Str("func", "*Manager.Restore").Str("backup", snapshot.Name).Msg("error: restoring store file")
		return fmt.Errorf("restoring store file: %w", err)
	}

	m.logger.Info().Str("backup", snapshot.Name).Msg("store restored from backup")

	return nil
}

// Remove deletes the snapshot file. Removing an already-absent snapshot is
// not an error.
func (m *Manager) Remove(snapshot Snapshot) error {
	if err := os.Remove(snapshot.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		m.logger.Err(err).Str("func", "*Manager.Remove").Str("backup", snapshot.Name).Msg("error: removing backup file")
		return fmt.Errorf("removing backup file: %w", err)
	}

	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err = io.Copy(destination, source); err != nil {
		destination.Close()
		return err
	}

	if err = destination.Sync(); err != nil {
		destination.Close()
		return err
	}

	return destination.Close()
}
