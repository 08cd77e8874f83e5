package cmd

import (
	"context"
	"fmt"

	"github.com/unscroll-app/unscroll/internal/domain"
	"github.com/unscroll-app/unscroll/internal/theme"
)

// AccountCmd manages the signed-in account
type AccountCmd struct {
	Set   AccountSetCmd   `cmd:"set" help:"Record the signed-in account"`
	Clear AccountClearCmd `cmd:"clear" help:"Sign out and forget the account"`
	Show  AccountShowCmd  `cmd:"show" help:"Show the signed-in account" default:"1"`
}

// AccountShowCmd shows the signed-in account
type AccountShowCmd struct{}

// Run executes the show command
func (a *AccountShowCmd) Run(cli *CLI) error {
	account, err := cli.Container.Accounts.Account(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		fmt.Println("Not signed in. Progress stays on this device.")
		return nil
	}

	name := account.Name
	if name == "" {
		name = account.Email
	}
	fmt.Printf("Signed in as %s %s\n", name, theme.LabelStyle.Render("("+account.ID+")"))
	return nil
}

// AccountSetCmd records the signed-in account
type AccountSetCmd struct {
	ID    string `arg:"" help:"Account identifier"`
	Email string `help:"Account email" default:""`
	Name  string `help:"Display name" default:""`
	Token string `help:"Access token for cloud sync" default:""`
}

// Run executes the set command
func (a *AccountSetCmd) Run(cli *CLI) error {
	ctx := context.Background()

	account := &domain.Account{ID: a.ID, Email: a.Email, Name: a.Name}
	if err := cli.Container.Accounts.SetAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	if a.Token != "" {
		if err := cli.Container.Accounts.SetToken(ctx, a.Token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
	}

	fmt.Printf("%s Sessions and stats will mirror to the cloud.\n",
		theme.PositiveStyle.Render("Signed in."))
	return nil
}

// AccountClearCmd signs out and forgets the account
type AccountClearCmd struct{}

// Run executes the clear command
func (a *AccountClearCmd) Run(cli *CLI) error {
	ctx := context.Background()

	if err := cli.Container.Accounts.SetAccount(ctx, nil); err != nil {
		return fmt.Errorf("failed to clear account: %w", err)
	}
	if err := cli.Container.Accounts.SetToken(ctx, ""); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	fmt.Println("Signed out. Local data is untouched.")
	return nil
}
