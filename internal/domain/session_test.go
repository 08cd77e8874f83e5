package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)
	s := NewSession("focus", "Reading", now)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, now.UnixMilli(), s.StartTime)
	assert.False(t, s.IsComplete)
	assert.Nil(t, s.EndTime)
	assert.Nil(t, s.DurationMinutes)
}

func TestClose(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	s := NewSession("focus", "Reading", start)

	end := start.Add(12*time.Minute + 30*time.Second)
	s.Close("Felt done", end)

	require.True(t, s.IsComplete)
	require.NotNil(t, s.EndTime)
	assert.Equal(t, end.UnixMilli(), *s.EndTime)
	assert.Equal(t, "Felt done", s.Reason)
	assert.Equal(t, 13, s.Minutes()) // 12m30s rounds up
}

func TestClose_AlreadyCompleteIsNoop(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	s := NewSession("focus", "Reading", start)
	s.Close("first", start.Add(5*time.Minute))

	s.Close("second", start.Add(10*time.Minute))

	assert.Equal(t, "first", s.Reason)
	assert.Equal(t, 5, s.Minutes())
}

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected int
	}{
		{"exact minutes", 5 * time.Minute, 5},
		{"rounds up", 61 * time.Second, 2},
		{"sub-minute rounds to one", 10 * time.Second, 1},
		{"zero", 0, 0},
		{"negative clamps to zero", -time.Minute, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DurationMinutes(start, start.Add(tt.elapsed)))
		})
	}
}

func TestIsNegative(t *testing.T) {
	tests := []struct {
		activity string
		negative bool
	}{
		{"Twitter", true},
		{"Instagram", true},
		{"Gaming", true},
		{"Other", true},
		{"Reading", false},
		{"Exercise", false},
		{"", false},
	}

	// Without an activity label the app id decides polarity.
	assert.True(t, SessionEvent{AppID: "TikTok"}.IsNegative())
	assert.False(t, SessionEvent{AppID: "Kindle"}.IsNegative())

	for _, tt := range tests {
		s := SessionEvent{ActivityType: tt.activity}
		assert.Equal(t, tt.negative, s.IsNegative(), "activity=%q", tt.activity)
	}
}

func TestSessionEvent_JSONRoundTrip(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	s := NewSession("focus", "Reading", start)
	s.Close("Felt done", start.Add(9*time.Minute))

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded SessionEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}

func TestSessionEvent_JSONRoundTrip_AbsentOptionalsStayAbsent(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	s := NewSession("focus", "", start)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	// Open sessions must not persist null placeholders for unset fields: a
	// reader checking isComplete must see the record exactly as written.
	assert.False(t, strings.Contains(string(data), "endTime"))
	assert.False(t, strings.Contains(string(data), "durationMinutes"))
	assert.False(t, strings.Contains(string(data), "activityType"))

	var decoded SessionEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
	assert.Nil(t, decoded.EndTime)
	assert.Nil(t, decoded.DurationMinutes)
	assert.False(t, decoded.IsComplete)
}
