package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-finance-tracker/internal/backup"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
	"github.com/MKhiriev/go-finance-tracker/models"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services *service.Services
	backups  *backup.Manager
	logger   *logger.Logger
}

func New(services *service.Services, backups *backup.Manager, logger *logger.Logger) (*TUI, error) {
	return &TUI{services: services, backups: backups, logger: logger}, nil
}

// LoginFlow runs the menu/login/register screens until the user either
// authenticates or quits. On success it returns the freshly issued session
// token; the caller persists it.
func (t *TUI) LoginFlow(ctx context.Context) (models.Token, error) {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, "menu")
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return models.Token{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.Token{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.Token{}, ErrUserQuit
	}

	return result.resultToken, nil
}

// MainLoop runs the authenticated screens (ledger, budgets, reports,
// backups) for userID until the user quits or logs out.
func (t *TUI) MainLoop(ctx context.Context, userID int64) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services, t.backups, t.logger, userID)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	if result.logout {
		clearSessionUserID()
	}
	return result.logout, nil
}
