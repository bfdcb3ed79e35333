package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-finance-tracker/models"
)

// NavigateTo switches the router to another page, optionally delivering a
// payload message to it.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the login flow. A nil Err carries a signed session
// token for the authenticated user.
type LoginResult struct {
	Err      error
	Username string
	Token    models.Token
}

// RegisterResult reports the outcome of a registration attempt.
type RegisterResult struct {
	Err      error
	Username string
}

// RegisterSuccessNotice is shown on the menu after a successful registration.
type RegisterSuccessNotice struct {
	Username string
}
