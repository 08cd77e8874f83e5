package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unscroll-app/unscroll/internal/domain"
)

func TestCloseSession_PositiveAward(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	session := openSessionAt(ts, ts.now, "focus", "Reading")
	ts.advance(10 * time.Minute)

	result, err := ts.tracker.CloseSession(ctx, session.ID, "Felt focused")
	require.NoError(t, err)

	assert.True(t, result.Session.IsComplete)
	assert.Equal(t, 10, result.Session.Minutes())
	assert.Equal(t, 100, result.XPDelta) // 10 min * 10 XP, no streak
	assert.Equal(t, 100, result.Stats.XP)
	assert.Equal(t, 2, result.Stats.Level)
}

func TestCloseSession_NegativeDeduction(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	session := openSessionAt(ts, ts.now, "phone", "TikTok")
	ts.advance(4 * time.Minute)

	result, err := ts.tracker.CloseSession(ctx, session.ID, "Got pulled in")
	require.NoError(t, err)

	assert.Equal(t, -20, result.XPDelta) // 4 min * 5 XP penalty
	assert.Equal(t, -20, result.Stats.XP)
	assert.Equal(t, 1, result.Stats.Level)

	// Slip-ups land in the negative-usage log too.
	log, err := ts.ledger.NegativeUsage(ctx)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "TikTok", log[0].AppID)
	assert.Equal(t, 4, log[0].DurationMinutes)
}

func TestCloseSession_UnderThirtySecondsAwardsNothing(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	session := openSessionAt(ts, ts.now, "focus", "Reading")
	ts.advance(20 * time.Second)

	result, err := ts.tracker.CloseSession(ctx, session.ID, "Accidental tap")
	require.NoError(t, err)

	// The minute count rounds up to 1, but the wall-clock guard wins.
	assert.Equal(t, 1, result.Session.Minutes())
	assert.Equal(t, 0, result.XPDelta)
	assert.Equal(t, 0, result.Stats.XP)
}

func TestCloseSession_StreakMultiplierUsesPriorStreak(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	plan := domain.NewPlan(nil, "less scrolling", 60, "22:00", ts.now.AddDate(0, 0, -30))
	require.NoError(t, ts.plans.SavePlan(ctx, plan))

	// Ten qualifying days ending yesterday put the multiplier at its cap
	// once today picks up usage.
	for i := 1; i <= 10; i++ {
		completedSessionAt(ts, ts.now.AddDate(0, 0, -i), 20, "Reading")
	}
	completedSessionAt(ts, ts.now.Add(-2*time.Hour), 5, "Reading")
	require.Equal(t, 11, ts.tracker.Streak(ctx))

	session := openSessionAt(ts, ts.now, "focus", "Reading")
	ts.advance(10 * time.Minute)

	result, err := ts.tracker.CloseSession(ctx, session.ID, "done")
	require.NoError(t, err)

	// Capped at 1.5x: round(10 * 10 * 1.5).
	assert.Equal(t, 150, result.XPDelta)
}

func TestCloseSession_ActiveWhenIDEmpty(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	openSessionAt(ts, ts.now, "focus", "Reading")
	ts.advance(5 * time.Minute)

	result, err := ts.tracker.CloseSession(ctx, "", "done")
	require.NoError(t, err)
	assert.True(t, result.Session.IsComplete)

	active, err := ts.ledger.ActiveSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestCloseSession_NoActiveSession(t *testing.T) {
	ts := newTestServices()

	_, err := ts.tracker.CloseSession(context.Background(), "", "done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active session")
}

func TestCloseSession_UnknownID(t *testing.T) {
	ts := newTestServices()

	_, err := ts.tracker.CloseSession(context.Background(), "missing", "done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCloseSession_AlreadyComplete(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	session := completedSessionAt(ts, ts.now.Add(-time.Hour), 10, "Reading")

	_, err := ts.tracker.CloseSession(ctx, session.ID, "again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already complete")
}

func TestCloseSession_MirrorsWhenSignedIn(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	require.NoError(t, ts.accounts.SetAccount(ctx, &domain.Account{ID: "user-1", Email: "a@b.c"}))

	session := openSessionAt(ts, ts.now, "focus", "Reading")
	ts.advance(5 * time.Minute)

	_, err := ts.tracker.CloseSession(ctx, session.ID, "done")
	require.NoError(t, err)

	// Mirroring is fire-and-forget; both the stats and the session records
	// should arrive shortly.
	require.Eventually(t, func() bool {
		return ts.mirror.callCount() == 2
	}, time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []string{mirrorStatsTable, mirrorSessionsTable}, ts.mirror.tables())
}

func TestCloseSession_NoMirrorWhenSignedOut(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	session := openSessionAt(ts, ts.now, "focus", "Reading")
	ts.advance(5 * time.Minute)

	_, err := ts.tracker.CloseSession(ctx, session.ID, "done")
	require.NoError(t, err)

	// Give any stray goroutine a beat, then confirm nothing was mirrored.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, ts.mirror.callCount())
}

func TestStreak_EndToEnd(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	plan := domain.NewPlan(nil, "less scrolling", 30, "22:00", ts.now.AddDate(0, 0, -30))
	require.NoError(t, ts.plans.SavePlan(ctx, plan))

	completedSessionAt(ts, ts.now.AddDate(0, 0, -2), 25, "Reading")
	completedSessionAt(ts, ts.now.AddDate(0, 0, -1), 20, "Reading")

	// Today has nothing yet: yesterday and the day before still count.
	assert.Equal(t, 2, ts.tracker.Streak(ctx))

	completedSessionAt(ts, ts.now.Add(-time.Hour), 10, "Reading")
	assert.Equal(t, 3, ts.tracker.Streak(ctx))
}

func TestStreak_NoPlanIsZero(t *testing.T) {
	ts := newTestServices()

	completedSessionAt(ts, ts.now.Add(-time.Hour), 10, "Reading")

	assert.Equal(t, 0, ts.tracker.Streak(context.Background()))
}
