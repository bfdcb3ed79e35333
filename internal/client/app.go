package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-finance-tracker/internal/backup"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/internal/tui"
)

// App is the interactive application: login flow, ledger main loop, and the
// persisted session that lets a returning user skip the login screen.
type App struct {
	services *service.Services
	sessions store.SessionStore
	tui      *tui.TUI
	logger   *logger.Logger
}

func NewApp(services *service.Services, sessions store.SessionStore, backups *backup.Manager, log *logger.Logger) (*App, error) {
	ui, err := tui.New(services, backups, log)
	if err != nil {
		return nil, fmt.Errorf("create tui: %w", err)
	}

	return &App{
		services: services,
		sessions: sessions,
		tui:      ui,
		logger:   log,
	}, nil
}

// Run starts the application and blocks until the user quits. A logout from
// the main loop clears the persisted session and returns to the login flow.
func (a *App) Run() error {
	ctx := context.Background()

	for {
		userID, err := a.resumeSession(ctx)
		if err != nil {
			token, err := a.tui.LoginFlow(ctx)
			if err != nil {
				if errors.Is(err, tui.ErrUserQuit) {
					return nil
				}
				return err
			}

			userID = token.UserID
			if err := a.sessions.Save(token.SignedString); err != nil {
				a.logger.Err(err).Str("func", "*App.Run").Msg("error: persisting session")
			}
		}

		logout, err := a.tui.MainLoop(ctx, userID)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}

		if err := a.sessions.Clear(); err != nil {
			a.logger.Err(err).Str("func", "*App.Run").Msg("error: clearing session")
		}
	}
}

// resumeSession validates the persisted token and returns its user. Any
// failure means the login flow runs; an expired or tampered token is cleared
// so the next start does not retry it.
func (a *App) resumeSession(ctx context.Context) (int64, error) {
	signedString, err := a.sessions.Load()
	if err != nil {
		return 0, err
	}

	token, err := a.services.AuthService.ParseToken(ctx, signedString)
	if err != nil {
		if clearErr := a.sessions.Clear(); clearErr != nil {
			a.logger.Err(clearErr).Str("func", "*App.resumeSession").Msg("error: clearing stale session")
		}
		return 0, err
	}

	a.logger.Info().Int64("user_id", token.UserID).Msg("session restored")
	return token.UserID, nil
}
