package cmd

import (
	"context"
	"fmt"

	"github.com/unscroll-app/unscroll/internal/domain"
	"github.com/unscroll-app/unscroll/internal/theme"
)

// StatsCmd shows XP, level, and streak
type StatsCmd struct{}

// Run executes the stats command
func (s *StatsCmd) Run(cli *CLI) error {
	ctx := context.Background()

	stats, err := cli.Container.Stats.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	streak := cli.Container.Tracker.Streak(ctx)

	fmt.Printf("%s %s\n",
		theme.LabelStyle.Render("Level"),
		theme.LevelStyle.Render(fmt.Sprintf("%d", stats.Level)))
	fmt.Printf("%s %s\n",
		theme.LabelStyle.Render("XP   "),
		theme.XPStyle.Render(fmt.Sprintf("%d", stats.XP)))
	fmt.Printf("%s %s\n",
		theme.LabelStyle.Render("Streak"),
		theme.StreakStyle.Render(fmt.Sprintf("%d day(s)", streak)))

	next := domain.XPForLevel(stats.Level + 1)
	fmt.Printf("\n%s %s %s\n",
		theme.ProgressBar(stats.Progress(), 24),
		theme.LabelStyle.Render("next level at"),
		theme.XPStyle.Render(fmt.Sprintf("%d XP", next)))
	return nil
}

// StreakCmd shows the current streak
type StreakCmd struct{}

// Run executes the streak command
func (s *StreakCmd) Run(cli *CLI) error {
	streak := cli.Container.Tracker.Streak(context.Background())
	if streak == 0 {
		fmt.Println("No streak yet. Stay under your daily limit to start one.")
		return nil
	}
	fmt.Printf("%s %d day(s)\n", theme.StreakStyle.Render("🔥"), streak)
	return nil
}
