package domain

import (
	"time"

	"github.com/google/uuid"
)

// NegativeActivities is the fixed set of activity labels that mark a session
// as a slip-up. Membership determines session polarity: negative sessions
// deduct XP, everything else earns it.
var NegativeActivities = map[string]bool{
	"Twitter":   true,
	"Instagram": true,
	"TikTok":    true,
	"YouTube":   true,
	"Facebook":  true,
	"Reddit":    true,
	"Gaming":    true,
	"Other":     true,
}

// SessionEvent is one tracked activity interval. Timestamps are milliseconds
// since epoch to keep the persisted JSON form stable. Optional fields are
// pointers so that absence survives a round trip instead of collapsing to a
// zero value.
type SessionEvent struct {
	ID              string `json:"id"`
	StartTime       int64  `json:"startTime"`
	EndTime         *int64 `json:"endTime,omitempty"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	AppID           string `json:"appId"`
	ActivityType    string `json:"activityType,omitempty"`
	Reason          string `json:"reason,omitempty"`
	IsComplete      bool   `json:"isComplete"`
}

// NewSession creates an open session starting now.
func NewSession(appID, activityType string, now time.Time) SessionEvent {
	return SessionEvent{
		ID:           uuid.New().String(),
		StartTime:    now.UnixMilli(),
		AppID:        appID,
		ActivityType: activityType,
	}
}

// StartedAt returns the session start as a time.Time.
func (s SessionEvent) StartedAt() time.Time {
	return time.UnixMilli(s.StartTime)
}

// Minutes returns the recorded duration, or 0 when the session is still open.
func (s SessionEvent) Minutes() int {
	if s.DurationMinutes == nil {
		return 0
	}
	return *s.DurationMinutes
}

// IsNegative reports whether the session's activity falls in the slip-up set.
// Sessions without an activity label fall back to the app id, so a bare
// "start Instagram" still counts against the user.
func (s SessionEvent) IsNegative() bool {
	if s.ActivityType != "" {
		return NegativeActivities[s.ActivityType]
	}
	return NegativeActivities[s.AppID]
}

// Elapsed returns the wall-clock time between start and end, or between start
// and now for an open session.
func (s SessionEvent) Elapsed(now time.Time) time.Duration {
	end := now
	if s.EndTime != nil {
		end = time.UnixMilli(*s.EndTime)
	}
	d := end.Sub(s.StartedAt())
	if d < 0 {
		return 0
	}
	return d
}

// Close marks the session complete at the given instant, recording the end
// time, the reason, and the duration rounded up to whole minutes. Closing an
// already-complete session is a no-op.
func (s *SessionEvent) Close(reason string, now time.Time) {
	if s.IsComplete {
		return
	}
	end := now.UnixMilli()
	s.EndTime = &end
	s.Reason = reason
	minutes := DurationMinutes(s.StartedAt(), now)
	s.DurationMinutes = &minutes
	s.IsComplete = true
}

// DurationMinutes converts an interval to whole minutes, rounding up. A
// 61-second session counts as 2 minutes; a negative interval counts as 0.
func DurationMinutes(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	minutes := int(d / time.Minute)
	if d%time.Minute != 0 {
		minutes++
	}
	return minutes
}
