package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unscroll-app/unscroll/internal/domain"
)

func TestSummary_Empty(t *testing.T) {
	ts := newTestServices()

	summary := ts.dashboard.Summary(context.Background())

	assert.Equal(t, domain.DefaultStats(), summary.Stats)
	assert.Equal(t, 0, summary.Streak)
	assert.Nil(t, summary.Plan)
	assert.Nil(t, summary.ActiveSession)
	assert.Equal(t, 0, summary.TodayMinutes)
	assert.Equal(t, 100, summary.FocusQuality)
	assert.Empty(t, summary.PerActivity)
}

func TestSummary_TodayCountsPositiveOnly(t *testing.T) {
	ts := newTestServices()

	completedSessionAt(ts, ts.now.Add(-4*time.Hour), 25, "Reading")
	completedSessionAt(ts, ts.now.Add(-2*time.Hour), 15, "TikTok") // slip-up
	completedSessionAt(ts, ts.now.AddDate(0, 0, -1), 30, "Reading")

	summary := ts.dashboard.Summary(context.Background())

	assert.Equal(t, 25, summary.TodayMinutes)
	assert.Equal(t, 55, summary.WeekMinutes) // today 25 + yesterday 30
}

func TestSummary_WeekWindowIsSevenDays(t *testing.T) {
	ts := newTestServices()

	completedSessionAt(ts, ts.now.AddDate(0, 0, -6), 10, "Reading") // inside
	completedSessionAt(ts, ts.now.AddDate(0, 0, -7), 40, "Reading") // outside

	summary := ts.dashboard.Summary(context.Background())

	assert.Equal(t, 10, summary.WeekMinutes)
}

func TestSummary_PerActivityIncludesSlipUps(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	completedSessionAt(ts, ts.now.Add(-4*time.Hour), 25, "Reading")
	require.NoError(t, ts.ledger.AppendNegativeUsage(ctx, domain.NegativeUsage{
		Timestamp:       ts.now.Add(-time.Hour).UnixMilli(),
		AppID:           "Instagram",
		DurationMinutes: 12,
	}))

	summary := ts.dashboard.Summary(ctx)

	assert.Equal(t, 25, summary.PerActivity["Reading"])
	assert.Equal(t, 12, summary.PerActivity["Instagram"])
}

func TestSummary_FocusQuality(t *testing.T) {
	ts := newTestServices()

	completedSessionAt(ts, ts.now.Add(-5*time.Hour), 10, "Reading")
	completedSessionAt(ts, ts.now.Add(-4*time.Hour), 10, "Reading")
	completedSessionAt(ts, ts.now.Add(-3*time.Hour), 10, "Reading")
	openSessionAt(ts, ts.now.Add(-time.Hour), "focus", "Reading")

	summary := ts.dashboard.Summary(context.Background())

	// 3 of 4 sessions complete.
	assert.Equal(t, 75, summary.FocusQuality)
}

func TestSummary_ExposesActiveSessionAndPlan(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	plan := domain.NewPlan([]string{"Instagram"}, "less scrolling", 30, "22:00", ts.now.AddDate(0, 0, -7))
	require.NoError(t, ts.plans.SavePlan(ctx, plan))
	open := openSessionAt(ts, ts.now.Add(-time.Hour), "focus", "Reading")

	summary := ts.dashboard.Summary(ctx)

	require.NotNil(t, summary.Plan)
	assert.Equal(t, 30, summary.Plan.DailyLimitMinutes)
	require.NotNil(t, summary.ActiveSession)
	assert.Equal(t, open.ID, summary.ActiveSession.ID)
}

func TestSummary_SessionWithoutActivityFallsBackToApp(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	session := domain.NewSession("deep-work", "", ts.now.Add(-2*time.Hour))
	session.Close("done", ts.now.Add(-time.Hour))
	require.NoError(t, ts.ledger.SaveSession(ctx, session))

	summary := ts.dashboard.Summary(ctx)

	assert.Equal(t, 60, summary.PerActivity["deep-work"])
}
