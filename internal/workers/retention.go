package workers

import (
	"github.com/MKhiriev/go-finance-tracker/internal/backup"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
)

// RetentionWorker prunes old backup snapshots, keeping only the configured
// number of most recent ones. It runs once and returns; a keep value below
// one disables pruning entirely.
type RetentionWorker struct {
	backups *backup.Manager
	keep    int
	logger  *logger.Logger
}

func NewRetentionWorker(backups *backup.Manager, keep int, logger *logger.Logger) *RetentionWorker {
	return &RetentionWorker{
		backups: backups,
		keep:    keep,
		logger:  logger,
	}
}

// Run removes every snapshot past the keep-count, oldest first. Failures are
// logged and skipped so one stubborn file never blocks the rest.
func (w *RetentionWorker) Run() {
	if w.keep < 1 {
		return
	}

	snapshots, err := w.backups.List()
	if err != nil {
		w.logger.Err(err).Str("func", "*RetentionWorker.Run").Msg("error: listing backups")
		return
	}
	if len(snapshots) <= w.keep {
		return
	}

	// List returns newest first, so everything past keep is prunable.
	pruned := 0
	for _, snapshot := range snapshots[w.keep:] {
		if err := w.backups.Remove(snapshot); err != nil {
			continue
		}
		pruned++
	}

	w.logger.Info().Int("pruned", pruned).Int("kept", w.keep).Msg("backup retention applied")
}
