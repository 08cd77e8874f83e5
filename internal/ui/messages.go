package ui

import (
	"time"

	"github.com/unscroll-app/unscroll/internal/services"
)

// summaryMsg carries a freshly built dashboard snapshot
type summaryMsg struct {
	summary services.Summary
}

// sessionStartedMsg is emitted after a session opens
type sessionStartedMsg struct{}

// sessionClosedMsg carries the settlement of a closed session
type sessionClosedMsg struct {
	result *services.CloseResult
}

// errMsg carries a failed operation's error
type errMsg struct {
	err error
}

// tickMsg drives the elapsed-time display for the active session
type tickMsg time.Time

// clearNoticeMsg hides the transient notice line
type clearNoticeMsg struct{}
