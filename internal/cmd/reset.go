package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ResetCmd wipes all local data
type ResetCmd struct {
	Force bool `help:"Skip the confirmation prompt" short:"f"`
}

// Run executes the reset command
func (r *ResetCmd) Run(cli *CLI) error {
	if !r.Force {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Wipe all local data?").
					Description("Sessions, plan, XP, and streak history will be deleted.").
					Affirmative("Wipe").
					Negative("Keep").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("reset cancelled: %w", err)
		}
		if !confirmed {
			fmt.Println("Nothing deleted.")
			return nil
		}
	}

	if err := cli.Container.Ledger.ClearAll(context.Background()); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}

	fmt.Println("All local data wiped. Fresh start.")
	return nil
}
