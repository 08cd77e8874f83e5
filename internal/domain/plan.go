package domain

import "time"

// WeeklyPlan is the user's configured goal: which apps are tracked, the daily
// usage limit, and a display-only night boundary. It is created during
// onboarding and replaced wholesale on edit, never patched field by field.
type WeeklyPlan struct {
	Apps              []string `json:"apps"`
	Goal              string   `json:"goal"`
	DailyLimitMinutes int      `json:"dailyLimitMinutes"`
	NightBoundary     string   `json:"nightBoundary"`
	Bedtime           string   `json:"bedtime,omitempty"`
	CreatedAt         *int64   `json:"createdAt,omitempty"`
}

// NewPlan creates a plan stamped with its creation time. The stamp bounds how
// far back the streak calculation may look.
func NewPlan(apps []string, goal string, dailyLimitMinutes int, nightBoundary string, now time.Time) WeeklyPlan {
	created := now.UnixMilli()
	return WeeklyPlan{
		Apps:              apps,
		Goal:              goal,
		DailyLimitMinutes: dailyLimitMinutes,
		NightBoundary:     nightBoundary,
		CreatedAt:         &created,
	}
}

// CreatedTime returns the plan creation time and whether one was recorded.
func (p WeeklyPlan) CreatedTime() (time.Time, bool) {
	if p.CreatedAt == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*p.CreatedAt), true
}
