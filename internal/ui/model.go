package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/unscroll-app/unscroll/internal/domain"
	"github.com/unscroll-app/unscroll/internal/logging"
	"github.com/unscroll-app/unscroll/internal/services"
	"github.com/unscroll-app/unscroll/internal/theme"
)

// viewState tracks which screen the dashboard is showing
type viewState int

const (
	stateDashboard viewState = iota
	stateStartForm
	stateStopForm
)

const noticeClearDelay = 5 * time.Second

// Model is the dashboard TUI model
type Model struct {
	dashboard *services.DashboardService
	ledger    *services.LedgerService
	tracker   *services.TrackerService

	keys        KeyMap
	help        help.Model
	spinner     spinner.Model
	sessionList list.Model

	state   viewState
	summary services.Summary
	loaded  bool
	width   int
	height  int
	notice  string
	err     error

	startForm    *huh.Form
	formApp      string
	formActivity string
	stopForm     *huh.Form
	formReason   string
}

// NewModel creates the dashboard model
func NewModel(dashboard *services.DashboardService, ledger *services.LedgerService, tracker *services.TrackerService) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.SpinnerStyle

	sessionList := list.New([]list.Item{}, newSessionDelegate(), 0, 0)
	sessionList.SetShowTitle(false)
	sessionList.SetShowStatusBar(false)
	sessionList.SetShowHelp(false)
	sessionList.SetFilteringEnabled(false)

	return &Model{
		dashboard:   dashboard,
		ledger:      ledger,
		tracker:     tracker,
		keys:        NewKeyMap(),
		help:        help.New(),
		spinner:     sp,
		sessionList: sessionList,
		state:       stateDashboard,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSummary(), tick())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := msg.Height - 14
		if listHeight < 3 {
			listHeight = 3
		}
		m.sessionList.SetSize(msg.Width, listHeight)
		return m, nil

	case tea.KeyMsg:
		if m.state == stateDashboard {
			return m.handleDashboardKey(msg)
		}

	case summaryMsg:
		m.loaded = true
		m.summary = msg.summary
		m.refreshSessionList()
		return m, nil

	case sessionStartedMsg:
		m.notice = theme.PositiveStyle.Render("Session started.")
		return m, tea.Batch(m.loadSummary(), clearNoticeAfter())

	case sessionClosedMsg:
		m.notice = settlementNotice(msg.result)
		return m, tea.Batch(m.loadSummary(), clearNoticeAfter())

	case errMsg:
		m.err = msg.err
		logging.Logger.Error("Dashboard operation failed", "error", msg.err)
		return m, clearNoticeAfter()

	case clearNoticeMsg:
		m.notice = ""
		m.err = nil
		return m, nil

	case tickMsg:
		// Redraw so the active session's elapsed time advances.
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.state {
	case stateStartForm:
		return m.updateStartForm(msg)
	case stateStopForm:
		return m.updateStopForm(msg)
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

// handleDashboardKey processes key presses on the dashboard screen
func (m *Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadSummary()

	case key.Matches(msg, m.keys.Start):
		if m.summary.ActiveSession != nil {
			m.notice = theme.ErrorStyle.Render("A session is already running.")
			return m, clearNoticeAfter()
		}
		m.state = stateStartForm
		m.formApp = ""
		m.formActivity = ""
		m.startForm = newStartForm(&m.formApp, &m.formActivity)
		return m, m.startForm.Init()

	case key.Matches(msg, m.keys.Stop):
		if m.summary.ActiveSession == nil {
			m.notice = theme.ErrorStyle.Render("No session running.")
			return m, clearNoticeAfter()
		}
		m.state = stateStopForm
		m.formReason = ""
		m.stopForm = newStopForm(&m.formReason)
		return m, m.stopForm.Init()
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

// updateStartForm routes messages to the start-session form
func (m *Model) updateStartForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			m.state = stateDashboard
			return m, nil
		}
	}

	form, cmd := m.startForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.startForm = f
	}

	if m.startForm.State == huh.StateCompleted {
		m.state = stateDashboard
		return m, m.startSession(m.formApp, m.formActivity)
	}
	if m.startForm.State == huh.StateAborted {
		m.state = stateDashboard
		return m, nil
	}
	return m, cmd
}

// updateStopForm routes messages to the stop-session form
func (m *Model) updateStopForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			m.state = stateDashboard
			return m, nil
		}
	}

	form, cmd := m.stopForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.stopForm = f
	}

	if m.stopForm.State == huh.StateCompleted {
		m.state = stateDashboard
		return m, m.closeSession(m.formReason)
	}
	if m.stopForm.State == huh.StateAborted {
		m.state = stateDashboard
		return m, nil
	}
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	switch m.state {
	case stateStartForm:
		if m.startForm != nil {
			return m.startForm.View()
		}
	case stateStopForm:
		if m.stopForm != nil {
			return m.stopForm.View()
		}
	}

	if !m.loaded {
		return fmt.Sprintf("\n %s loading...\n", m.spinner.View())
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.AppNameStyle.Render("unscroll"),
		theme.VersionStyle.Render(" "+versionInfo.Version),
	)
	tagline := theme.TaglineStyle.Render(versionInfo.Tagline)

	stats := fmt.Sprintf("%s %s  %s %s  %s %s",
		theme.LabelStyle.Render("Level"),
		theme.LevelStyle.Render(fmt.Sprintf("%d", m.summary.Stats.Level)),
		theme.LabelStyle.Render("XP"),
		theme.XPStyle.Render(fmt.Sprintf("%d", m.summary.Stats.XP)),
		theme.LabelStyle.Render("Streak"),
		theme.StreakStyle.Render(fmt.Sprintf("%d 🔥", m.summary.Streak)))

	progress := fmt.Sprintf("%s %s",
		theme.ProgressBar(m.summary.Stats.Progress(), 24),
		theme.LabelStyle.Render(fmt.Sprintf("next level at %d XP",
			domain.XPForLevel(m.summary.Stats.Level+1))))

	week := fmt.Sprintf("%s %d min today, %d min this week, focus quality %d%%",
		theme.LabelStyle.Render("Focus:"),
		m.summary.TodayMinutes,
		m.summary.WeekMinutes,
		m.summary.FocusQuality)

	active := theme.LabelStyle.Render("No session running. Press 's' to start one.")
	if m.summary.ActiveSession != nil {
		label := m.summary.ActiveSession.ActivityType
		if label == "" {
			label = m.summary.ActiveSession.AppID
		}
		active = fmt.Sprintf("%s %s for %s",
			theme.ActiveStyle.Render("◐ tracking"),
			label,
			m.summary.ActiveSession.Elapsed(time.Now()).Round(time.Second))
	}

	statusLine := m.notice
	if m.err != nil {
		statusLine = theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		tagline,
		"",
		stats,
		progress,
		week,
		active,
		"",
		m.sessionList.View(),
		statusLine,
		m.help.View(m.keys),
	)
}

// refreshSessionList rebuilds the list items from the summary, newest first
func (m *Model) refreshSessionList() {
	sessions := m.ledger.SessionsOrEmpty(context.Background())
	items := make([]list.Item, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		items = append(items, SessionItem{Session: sessions[i]})
	}
	m.sessionList.SetItems(items)
}

// loadSummary builds a fresh dashboard snapshot
func (m *Model) loadSummary() tea.Cmd {
	return func() tea.Msg {
		return summaryMsg{summary: m.dashboard.Summary(context.Background())}
	}
}

// startSession opens a new session
func (m *Model) startSession(app, activity string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.ledger.StartSession(context.Background(), app, activity); err != nil {
			return errMsg{err: err}
		}
		return sessionStartedMsg{}
	}
}

// closeSession settles the active session
func (m *Model) closeSession(reason string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.tracker.CloseSession(context.Background(), "", reason)
		if err != nil {
			return errMsg{err: err}
		}
		return sessionClosedMsg{result: result}
	}
}

// settlementNotice renders the XP outcome of a closed session
func settlementNotice(result *services.CloseResult) string {
	switch {
	case result.XPDelta > 0:
		return theme.PositiveStyle.Render(fmt.Sprintf("+%d XP (level %d)", result.XPDelta, result.Stats.Level))
	case result.XPDelta < 0:
		return theme.NegativeStyle.Render(fmt.Sprintf("%d XP (level %d)", result.XPDelta, result.Stats.Level))
	default:
		return theme.LabelStyle.Render("Session too short to score.")
	}
}

// newStartForm builds the start-session form
func newStartForm(app, activity *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What are you opening?").
				Placeholder("e.g. Reading, Instagram").
				Validate(requireValue).
				Value(app),
			huh.NewInput().
				Title("Activity label (optional)").
				Placeholder("shown on the dashboard").
				Value(activity),
		),
	)
}

// newStopForm builds the stop-session form
func newStopForm(reason *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Why are you stopping?").
				Placeholder("e.g. done reading, caught myself scrolling").
				Value(reason),
		),
	)
}

func requireValue(s string) error {
	if s == "" {
		return fmt.Errorf("enter a value")
	}
	return nil
}

// tick schedules the next elapsed-time redraw
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// clearNoticeAfter hides the notice line after a short delay
func clearNoticeAfter() tea.Cmd {
	return tea.Tick(noticeClearDelay, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}
