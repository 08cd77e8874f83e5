package cmd

import (
	"context"
	"fmt"

	"github.com/unscroll-app/unscroll/internal/theme"
)

// StartCmd starts tracking a session
type StartCmd struct {
	App      string `arg:"" help:"App or activity being tracked (e.g. 'Reading', 'Instagram')"`
	Activity string `help:"Activity label shown on the dashboard (defaults to the app name)" default:""`
}

// Run executes the start command
func (s *StartCmd) Run(cli *CLI) error {
	ctx := context.Background()

	// Starting on top of an open session would orphan it, so refuse.
	active, err := cli.Container.Ledger.ActiveSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for active session: %w", err)
	}
	if active != nil {
		return fmt.Errorf("session %s is already running (%s), stop it first", active.ID, active.AppID)
	}

	session, err := cli.Container.Ledger.StartSession(ctx, s.App, s.Activity)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	label := session.ActivityType
	if label == "" {
		label = session.AppID
	}

	if session.IsNegative() {
		fmt.Printf("%s session started for %s. %s\n",
			theme.NegativeStyle.Render("Tracking"),
			label,
			theme.LabelStyle.Render("This one costs XP - keep it short."))
	} else {
		fmt.Printf("%s session started for %s.\n",
			theme.PositiveStyle.Render("Focus"), label)
	}
	fmt.Printf("Session ID: %s\n", session.ID)
	return nil
}
