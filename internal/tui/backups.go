package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-finance-tracker/internal/backup"
)

func (m mainLoopModel) updateBackups(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc", "q":
		m.page = pageTransactions
		m.loading = true
		return m, m.cmdLoadTransactions()
	case "up", "k":
		if m.backupIdx > 0 {
			m.backupIdx--
		}
	case "down", "j":
		if m.backupIdx < len(m.snapshots)-1 {
			m.backupIdx++
		}
	case "n":
		return m, m.cmdBackup()
	case "enter":
		if m.restoring {
			return m, nil
		}
		if len(m.snapshots) == 0 || m.backupIdx >= len(m.snapshots) {
			m.status = "No backup selected"
			return m, nil
		}
		m.restoring = true
		return m, m.cmdRestore(m.snapshots[m.backupIdx])
	}

	return m, nil
}

func (m mainLoopModel) cmdLoadBackups() tea.Cmd {
	manager := m.backups

	return func() tea.Msg {
		snapshots, err := manager.List()
		return backupsLoadedMsg{snapshots: snapshots, err: err}
	}
}

func (m mainLoopModel) cmdBackup() tea.Cmd {
	manager := m.backups

	return func() tea.Msg {
		snapshot, err := manager.Backup()
		return backupDoneMsg{snapshot: snapshot, err: err}
	}
}

func (m mainLoopModel) cmdRestore(snapshot backup.Snapshot) tea.Cmd {
	manager := m.backups

	return func() tea.Msg {
		return restoreDoneMsg{err: manager.Restore(snapshot)}
	}
}

func (m mainLoopModel) viewBackups() string {
	out := ""

	if m.loading {
		out += "Loading backups...\n"
		return renderPage("BACKUPS", strings.TrimRight(out, "\n"), m.backupsHotKeys())
	}

	if m.errMsg != "" {
		out += "Error: " + m.errMsg + "\n"
	}
	if m.status != "" {
		out += "Status: " + m.status + "\n"
	}
	if m.restoring {
		out += "Restoring...\n"
	}

	if len(m.snapshots) == 0 {
		out += "\nNo backups yet\n"
	} else {
		out += "\n"
		out += "Name                              │ Size     │ Created\n"
		out += "──────────────────────────────────┼──────────┼─────────────────────\n"
		for i, snapshot := range m.snapshots {
			cursor := " "
			if i == m.backupIdx {
				cursor = ">"
			}
			out += fmt.Sprintf(
				"%s %-32s │ %8d │ %s\n",
				cursor,
				fitText(snapshot.Name, 32),
				snapshot.Size,
				snapshot.ModTime.Format("2006-01-02 15:04:05"),
			)
		}
	}

	return renderPage("BACKUPS", strings.TrimRight(out, "\n"), m.backupsHotKeys())
}

func (m mainLoopModel) backupsHotKeys() string {
	return "n: new backup │ enter: restore selected │ ↑/↓: navigate │ esc: back"
}
