package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unscroll-app/unscroll/internal/logging"
	"github.com/unscroll-app/unscroll/internal/ui"
)

// RunCmd starts the dashboard TUI
type RunCmd struct{}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	logging.Logger.Info("Starting unscroll TUI")

	p := tea.NewProgram(
		ui.NewModel(
			cli.Container.Dashboard,
			cli.Container.Ledger,
			cli.Container.Tracker,
		),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
