package cmd

import (
	"context"
	"fmt"

	"github.com/unscroll-app/unscroll/internal/theme"
)

// StopCmd closes a session and settles XP
type StopCmd struct {
	ID     string `help:"Session to close (defaults to the active session)" default:""`
	Reason string `help:"Why the session ended" default:""`
}

// Run executes the stop command
func (s *StopCmd) Run(cli *CLI) error {
	result, err := cli.Container.Tracker.CloseSession(context.Background(), s.ID, s.Reason)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	label := result.Session.ActivityType
	if label == "" {
		label = result.Session.AppID
	}
	fmt.Printf("Closed %s session (%d min)\n", label, result.Session.Minutes())

	switch {
	case result.XPDelta > 0:
		fmt.Printf("%s\n", theme.PositiveStyle.Render(fmt.Sprintf("+%d XP", result.XPDelta)))
	case result.XPDelta < 0:
		fmt.Printf("%s\n", theme.NegativeStyle.Render(fmt.Sprintf("%d XP", result.XPDelta)))
	default:
		fmt.Println(theme.LabelStyle.Render("Too short to score."))
	}

	fmt.Printf("%s %s  %s %s  %s %s\n",
		theme.LabelStyle.Render("XP:"), theme.XPStyle.Render(fmt.Sprintf("%d", result.Stats.XP)),
		theme.LabelStyle.Render("Level:"), theme.LevelStyle.Render(fmt.Sprintf("%d", result.Stats.Level)),
		theme.LabelStyle.Render("Streak:"), theme.StreakStyle.Render(fmt.Sprintf("%d", result.Streak)))
	return nil
}
