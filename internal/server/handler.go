package server

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"github.com/unscroll-app/unscroll/internal/adapters/storage"
	"github.com/unscroll-app/unscroll/internal/adapters/supabase"
	"github.com/unscroll-app/unscroll/internal/logging"
	"github.com/unscroll-app/unscroll/internal/ports"
	"github.com/unscroll-app/unscroll/internal/services"
	"github.com/unscroll-app/unscroll/internal/ui"
)

// sessionModel wraps ui.Model to close the per-connection store on quit
type sessionModel struct {
	*ui.Model
	sessionID string
	startTime time.Time
	store     ports.KeyValueStore
}

func (s *sessionModel) Init() tea.Cmd {
	return s.Model.Init()
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		duration := time.Since(s.startTime)

		if err := s.store.Close(); err != nil {
			logging.Logger.Error("Failed to close store for SSH session",
				"error", err,
				"session_id", s.sessionID,
				"duration", duration.String())
		}

		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", duration.String())
	}

	updatedModel, cmd := s.Model.Update(msg)
	if m, ok := updatedModel.(*ui.Model); ok {
		s.Model = m
	}
	return s, cmd
}

func (s *sessionModel) View() string {
	return s.Model.View()
}

// teaHandler creates a Bubbletea model for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	// Open the shared database for this connection
	store, err := storage.NewSQLiteStore(s.dbPath)
	if err != nil {
		logging.Logger.Error("Failed to open database for SSH session",
			"error", err,
			"session_id", sessionID)
		return errorModel{err}, nil
	}

	var mirror ports.RemoteMirror
	if s.settings != nil && s.settings.SupabaseURL != "" && s.settings.SupabaseAPIKey != "" {
		mirror = supabase.NewClient(s.settings.SupabaseURL, s.settings.SupabaseAPIKey)
	}

	accounts := services.NewAccountService(store)
	ledger := services.NewLedgerService(store)
	plans := services.NewPlanService(store)
	stats := services.NewStatsService(store, mirror, accounts)
	tracker := services.NewTrackerService(ledger, plans, stats, accounts)
	dashboard := services.NewDashboardService(ledger, plans, stats, tracker)

	model := ui.NewModel(dashboard, ledger, tracker)

	wrappedModel := &sessionModel{
		Model:     model,
		sessionID: sessionID,
		startTime: time.Now(),
		store:     store,
	}

	return wrappedModel, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// errorModel is a simple model that displays an error
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}
