package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotdash/internal/shared"
	"github.com/desertthunder/spotdash/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive player and search controller.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.config.Client.SessionID == "" {
		return fmt.Errorf("%w: no session configured, run spotdash auth login", shared.ErrNotAuthenticated)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spotdash-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.api, ui.Options{
		DashboardURL: r.config.Client.BaseURL,
		Open:         r.open,
		Logger:       fileLogger,
	})
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
