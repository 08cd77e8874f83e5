package domain

import "time"

// NegativeUsage is one slip-up record in the negative-usage log, kept
// separately from the session ledger so dashboard charts can attribute
// distraction minutes per app.
type NegativeUsage struct {
	Timestamp       int64  `json:"timestamp"`
	AppID           string `json:"appId"`
	DurationMinutes int    `json:"durationMinutes"`
}

// RecordedAt returns the record timestamp as a time.Time.
func (u NegativeUsage) RecordedAt() time.Time {
	return time.UnixMilli(u.Timestamp)
}
