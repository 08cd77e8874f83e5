package cmd

import (
	"github.com/unscroll-app/unscroll/internal/adapters/storage"
	"github.com/unscroll-app/unscroll/internal/adapters/supabase"
	"github.com/unscroll-app/unscroll/internal/config"
	"github.com/unscroll-app/unscroll/internal/logging"
	"github.com/unscroll-app/unscroll/internal/ports"
	"github.com/unscroll-app/unscroll/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	Accounts  *services.AccountService
	Dashboard *services.DashboardService
	Ledger    *services.LedgerService
	Plans     *services.PlanService
	Stats     *services.StatsService
	Tracker   *services.TrackerService

	// Internal - for cleanup only
	store ports.KeyValueStore
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	store, err := storage.NewSQLiteStore(config.GetDBPath())
	if err != nil {
		return nil, err
	}

	// Cloud mirroring is optional and only active when settings carry
	// Supabase credentials.
	var mirror ports.RemoteMirror
	if settings != nil && settings.SupabaseURL != "" && settings.SupabaseAPIKey != "" {
		mirror = supabase.NewClient(settings.SupabaseURL, settings.SupabaseAPIKey)
		logging.Logger.Info("Cloud mirroring enabled", "url", settings.SupabaseURL)
	}

	accounts := services.NewAccountService(store)
	ledger := services.NewLedgerService(store)
	plans := services.NewPlanService(store)
	stats := services.NewStatsService(store, mirror, accounts)
	tracker := services.NewTrackerService(ledger, plans, stats, accounts)
	dashboard := services.NewDashboardService(ledger, plans, stats, tracker)

	return &Container{
		Accounts:  accounts,
		Dashboard: dashboard,
		Ledger:    ledger,
		Plans:     plans,
		Stats:     stats,
		Tracker:   tracker,
		store:     store,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
