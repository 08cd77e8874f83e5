package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unscroll-app/unscroll/internal/domain"
	"github.com/unscroll-app/unscroll/internal/theme"
)

// SessionItem implements list.Item for a ledger entry
type SessionItem struct {
	Session domain.SessionEvent
}

// FilterValue implements list.Item
func (i SessionItem) FilterValue() string {
	return i.Session.AppID + " " + i.Session.ActivityType
}

// label returns the display name for the session
func (i SessionItem) label() string {
	if i.Session.ActivityType != "" {
		return i.Session.ActivityType
	}
	return i.Session.AppID
}

// SessionDelegate renders ledger entries in the dashboard list
type SessionDelegate struct {
	now func() time.Time
}

func newSessionDelegate() SessionDelegate {
	return SessionDelegate{now: time.Now}
}

// Height implements list.ItemDelegate
func (d SessionDelegate) Height() int {
	return 1
}

// Spacing implements list.ItemDelegate
func (d SessionDelegate) Spacing() int {
	return 0
}

// Update implements list.ItemDelegate
func (d SessionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render implements list.ItemDelegate
func (d SessionDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(SessionItem)
	if !ok {
		return
	}

	cursor := " "
	if index == m.Index() {
		cursor = ">"
	}

	session := item.Session
	marker := theme.PositiveStyle.Render("●")
	if session.IsNegative() {
		marker = theme.NegativeStyle.Render("●")
	}

	var duration string
	if session.IsComplete {
		duration = theme.NormalStyle.Render(fmt.Sprintf("%d min", session.Minutes()))
	} else {
		marker = theme.ActiveStyle.Render("◐")
		duration = theme.ActiveStyle.Render(
			session.Elapsed(d.now()).Round(time.Minute).String() + " (running)")
	}

	line := fmt.Sprintf("%s %s %s  %-16s %s",
		cursor,
		marker,
		theme.LabelStyle.Render(session.StartedAt().Format("Jan 02 15:04")),
		item.label(),
		duration)
	fmt.Fprint(w, line)
}
