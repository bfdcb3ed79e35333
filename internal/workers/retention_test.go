package workers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-finance-tracker/internal/backup"
	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
)

func newTestRetention(t *testing.T, keep int) (*RetentionWorker, string) {
	t.Helper()

	dir := t.TempDir()
	storePath := filepath.Join(dir, "finance.db")
	backupsDir := filepath.Join(dir, "backups")

	manager := backup.NewManager(storePath, config.Backups{Dir: backupsDir, Keep: keep}, logger.Nop())

	return NewRetentionWorker(manager, keep, logger.Nop()), backupsDir
}

func writeSnapshot(t *testing.T, dir, name string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating backups dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("snapshot"), 0o644); err != nil {
		t.Fatalf("writing snapshot %s: %v", name, err)
	}
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading backups dir: %v", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestRetentionWorker_Run_PrunesOldest(t *testing.T) {
	worker, backupsDir := newTestRetention(t, 2)

	writeSnapshot(t, backupsDir, "finance_backup_20250101_090000.db")
	writeSnapshot(t, backupsDir, "finance_backup_20250215_090000.db")
	writeSnapshot(t, backupsDir, "finance_backup_20250301_090000.db")
	writeSnapshot(t, backupsDir, "finance_backup_20250302_090000.db")

	worker.Run()

	names := listNames(t, backupsDir)
	if len(names) != 2 {
		t.Fatalf("expected 2 snapshots to remain, got %d: %v", len(names), names)
	}
	for _, name := range names {
		if name != "finance_backup_20250301_090000.db" && name != "finance_backup_20250302_090000.db" {
			t.Errorf("unexpected survivor %s, wanted only the two newest", name)
		}
	}
}

func TestRetentionWorker_Run_UnderLimitKeepsAll(t *testing.T) {
	worker, backupsDir := newTestRetention(t, 5)

	writeSnapshot(t, backupsDir, "finance_backup_20250101_090000.db")
	writeSnapshot(t, backupsDir, "finance_backup_20250215_090000.db")

	worker.Run()

	if names := listNames(t, backupsDir); len(names) != 2 {
		t.Fatalf("expected both snapshots to remain, got %v", names)
	}
}

func TestRetentionWorker_Run_DisabledKeepsAll(t *testing.T) {
	worker, backupsDir := newTestRetention(t, 0)

	writeSnapshot(t, backupsDir, "finance_backup_20250101_090000.db")
	writeSnapshot(t, backupsDir, "finance_backup_20250215_090000.db")
	writeSnapshot(t, backupsDir, "finance_backup_20250301_090000.db")

	worker.Run()

	if names := listNames(t, backupsDir); len(names) != 3 {
		t.Fatalf("expected all snapshots to remain, got %v", names)
	}
}

func TestRetentionWorker_Run_MissingDirIsNoop(t *testing.T) {
	worker, _ := newTestRetention(t, 3)

	// Backups directory was never created.
	worker.Run()
}
