package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/sportshub/internal/shared"
	"github.com/desertthunder/sportshub/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	logFile, err := shared.OpenLogFile(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer logFile.Close()
	r.logger.SetOutput(logFile)
	defer r.logger.SetOutput(os.Stderr)

	model := ui.NewModel(ctx, ui.Deps{
		Session:   r.session,
		Favorites: r.favorites,
		Client:    r.client,
		Config:    r.config.UI,
		Logger:    r.logger,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
