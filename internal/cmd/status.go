package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/unscroll-app/unscroll/internal/theme"
)

// StatusCmd shows the active session, if any
type StatusCmd struct{}

// Run executes the status command
func (s *StatusCmd) Run(cli *CLI) error {
	active, err := cli.Container.Ledger.ActiveSession(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load active session: %w", err)
	}

	if active == nil {
		fmt.Println("No session running.")
		return nil
	}

	label := active.ActivityType
	if label == "" {
		label = active.AppID
	}
	elapsed := active.Elapsed(time.Now()).Round(time.Second)

	polarity := theme.PositiveStyle.Render("focus")
	if active.IsNegative() {
		polarity = theme.NegativeStyle.Render("tracked")
	}

	fmt.Printf("%s %s session on %s, running for %s\n",
		theme.ActiveStyle.Render("●"), polarity, label, elapsed)
	fmt.Printf("Session ID: %s\n", active.ID)
	return nil
}
