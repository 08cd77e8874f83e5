package cmd

import (
	"context"
	"fmt"

	"github.com/unscroll-app/unscroll/internal/theme"
)

// SessionsCmd manages the session ledger
type SessionsCmd struct {
	List SessionsListCmd `cmd:"list" help:"List recorded sessions" default:"1"`
}

// SessionsListCmd lists recorded sessions, newest first
type SessionsListCmd struct {
	Limit int  `help:"Maximum number of sessions to show (0 = all)" default:"20"`
	All   bool `help:"Show all sessions" short:"a"`
}

// Run executes the list command
func (s *SessionsListCmd) Run(cli *CLI) error {
	sessions, err := cli.Container.Ledger.Sessions(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	limit := s.Limit
	if s.All || limit <= 0 || limit > len(sessions) {
		limit = len(sessions)
	}

	// The ledger appends in start order; show newest first.
	shown := 0
	for i := len(sessions) - 1; i >= 0 && shown < limit; i-- {
		session := sessions[i]
		shown++

		label := session.ActivityType
		if label == "" {
			label = session.AppID
		}

		marker := theme.PositiveStyle.Render("●")
		if session.IsNegative() {
			marker = theme.NegativeStyle.Render("●")
		}
		if !session.IsComplete {
			marker = theme.ActiveStyle.Render("◐")
		}

		duration := "running"
		if session.IsComplete {
			duration = fmt.Sprintf("%d min", session.Minutes())
		}

		line := fmt.Sprintf("%s %s  %-16s %s",
			marker,
			session.StartedAt().Format("Jan 02 15:04"),
			label,
			duration)
		if session.Reason != "" {
			line += "  " + theme.LabelStyle.Render(session.Reason)
		}
		fmt.Println(line)
	}

	if shown < len(sessions) {
		fmt.Println(theme.LabelStyle.Render(
			fmt.Sprintf("... and %d more (use --all)", len(sessions)-shown)))
	}
	return nil
}
