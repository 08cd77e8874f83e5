package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/unscroll-app/unscroll/internal/domain"
	"github.com/unscroll-app/unscroll/internal/theme"
)

// PlanCmd manages the weekly plan
type PlanCmd struct {
	Init PlanInitCmd `cmd:"init" help:"Create or replace the weekly plan"`
	Show PlanShowCmd `cmd:"show" help:"Show the current plan" default:"1"`
}

// PlanShowCmd shows the current plan
type PlanShowCmd struct{}

// Run executes the show command
func (p *PlanShowCmd) Run(cli *CLI) error {
	plan, err := cli.Container.Plans.Plan(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	if plan == nil {
		fmt.Println("No plan yet. Run 'unscroll plan init' to create one.")
		return nil
	}

	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Goal:"), plan.Goal)
	fmt.Printf("%s %d min/day\n", theme.LabelStyle.Render("Daily limit:"), plan.DailyLimitMinutes)
	if len(plan.Apps) > 0 {
		fmt.Printf("%s %s\n", theme.LabelStyle.Render("Watched apps:"), strings.Join(plan.Apps, ", "))
	}
	if plan.NightBoundary != "" {
		fmt.Printf("%s %s\n", theme.LabelStyle.Render("Wind-down after:"), plan.NightBoundary)
	}
	if created, ok := plan.CreatedTime(); ok {
		fmt.Printf("%s %s\n", theme.LabelStyle.Render("Since:"), created.Format("Jan 02, 2006"))
	}
	return nil
}

// PlanInitCmd creates or replaces the weekly plan
type PlanInitCmd struct {
	Goal          string `help:"What you want out of the week" default:""`
	DailyLimit    int    `help:"Daily limit in minutes for watched apps" default:"0"`
	Apps          string `help:"Comma-separated watched apps" default:""`
	NightBoundary string `help:"Time after which usage counts as night scrolling (HH:MM)" default:""`
	Yes           bool   `help:"Skip the interactive form and use flags only" short:"y"`
}

// Run executes the init command
func (p *PlanInitCmd) Run(cli *CLI) error {
	ctx := context.Background()

	goal := p.Goal
	limit := strconv.Itoa(p.DailyLimit)
	if p.DailyLimit == 0 {
		limit = "30"
	}
	nightBoundary := p.NightBoundary
	if nightBoundary == "" {
		nightBoundary = "22:00"
	}
	apps := splitApps(p.Apps)

	if !p.Yes {
		appOptions := negativeAppOptions(apps)
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("What do you want out of this week?").
					Placeholder("e.g. read more, scroll less").
					Value(&goal),
				huh.NewMultiSelect[string]().
					Title("Which apps pull you in?").
					Options(appOptions...).
					Value(&apps),
				huh.NewInput().
					Title("Daily limit (minutes)").
					Validate(validateMinutes).
					Value(&limit),
				huh.NewInput().
					Title("Wind-down time").
					Description("Usage after this counts as night scrolling").
					Validate(validateClock).
					Value(&nightBoundary),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("plan setup cancelled: %w", err)
		}
	}

	limitMinutes, err := strconv.Atoi(strings.TrimSpace(limit))
	if err != nil || limitMinutes <= 0 {
		return fmt.Errorf("daily limit must be a positive number of minutes")
	}

	// Keep the original creation stamp when replacing an existing plan so
	// the streak window survives edits.
	plan := domain.WeeklyPlan{
		Apps:              apps,
		Goal:              goal,
		DailyLimitMinutes: limitMinutes,
		NightBoundary:     nightBoundary,
	}
	if existing := cli.Container.Plans.PlanOrNil(ctx); existing != nil {
		plan.CreatedAt = existing.CreatedAt
	}

	if err := cli.Container.Plans.SavePlan(ctx, plan); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}

	fmt.Printf("%s Daily limit is %d minutes.\n",
		theme.PositiveStyle.Render("Plan saved."), limitMinutes)
	return nil
}

// negativeAppOptions builds the multi-select options, keeping any custom
// apps the user passed via flags selectable.
func negativeAppOptions(selected []string) []huh.Option[string] {
	names := make([]string, 0, len(domain.NegativeActivities))
	for name := range domain.NegativeActivities {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[string]bool, len(names))
	options := make([]huh.Option[string], 0, len(names)+len(selected))
	for _, name := range names {
		seen[name] = true
		options = append(options, huh.NewOption(name, name))
	}
	for _, name := range selected {
		if !seen[name] {
			options = append(options, huh.NewOption(name, name))
		}
	}
	return options
}

func splitApps(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	apps := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			apps = append(apps, trimmed)
		}
	}
	return apps
}

func validateMinutes(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number of minutes")
	}
	return nil
}

func validateClock(s string) error {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return fmt.Errorf("use HH:MM")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("hour must be 00-23")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("minute must be 00-59")
	}
	return nil
}
