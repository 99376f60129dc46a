package cli

import (
	"errors"

	"github.com/felixgeelhaar/tribunal/internal/app"
)

var errNoApp = errors.New("app not initialized: check DATABASE_URL and the service configuration")

// App holds the CLI application dependencies.
type App struct {
	*app.Container
}

// NewApp wraps a wired container.
func NewApp(container *app.Container) *App {
	return &App{Container: container}
}

var cliApp *App

// SetApp sets the application used by every command.
func SetApp(a *App) {
	cliApp = a
}

// GetApp returns the application, or nil when the container failed to start.
func GetApp() *App {
	return cliApp
}

func requireApp() (*App, error) {
	if cliApp == nil || cliApp.Container == nil {
		return nil, errNoApp
	}
	return cliApp, nil
}
