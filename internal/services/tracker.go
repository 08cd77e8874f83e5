package services

import (
	"context"
	"fmt"
	"time"

	"github.com/unscroll-app/unscroll/internal/domain"
	"github.com/unscroll-app/unscroll/internal/logging"
)

// TrackerService orchestrates the session lifecycle: it closes sessions,
// awards or deducts XP, feeds the slip-up log, and derives the streak.
type TrackerService struct {
	ledger   *LedgerService
	plans    *PlanService
	stats    *StatsService
	accounts *AccountService
	now      func() time.Time
}

// NewTrackerService creates a TrackerService over the collaborating services.
func NewTrackerService(ledger *LedgerService, plans *PlanService, stats *StatsService, accounts *AccountService) *TrackerService {
	return &TrackerService{
		ledger:   ledger,
		plans:    plans,
		stats:    stats,
		accounts: accounts,
		now:      time.Now,
	}
}

// CloseResult describes what a session close did.
type CloseResult struct {
	Session domain.SessionEvent
	XPDelta int
	Stats   domain.UserStats
	Streak  int
}

// Streak returns the current consecutive-day streak. Missing plan or
// unreadable history degrade to 0.
func (s *TrackerService) Streak(ctx context.Context) int {
	plan := s.plans.PlanOrNil(ctx)
	sessions := s.ledger.SessionsOrEmpty(ctx)
	return domain.Streak(sessions, plan, s.now())
}

// CloseSession closes the session with the given id (or the active session
// when id is empty), records the reason, and applies the XP outcome. The
// streak multiplier uses the streak as it stood before this close.
func (s *TrackerService) CloseSession(ctx context.Context, id, reason string) (*CloseResult, error) {
	var session *domain.SessionEvent
	var err error

	if id == "" {
		session, err = s.ledger.ActiveSession(ctx)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, fmt.Errorf("no active session")
		}
	} else {
		session, err = s.ledger.SessionByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, fmt.Errorf("session %s not found", id)
		}
	}

	if session.IsComplete {
		return nil, fmt.Errorf("session %s is already complete", session.ID)
	}

	streakBefore := s.Streak(ctx)
	now := s.now()
	elapsed := session.Elapsed(now)

	closed := *session
	closed.Close(reason, now)
	if err := s.ledger.SaveSession(ctx, closed); err != nil {
		return nil, err
	}

	// Sub-30-second sessions award nothing, whatever their polarity. The
	// guard runs on wall clock, before the duration rounds up to a minute.
	delta := 0
	if elapsed >= domain.MinAwardDuration {
		delta = domain.ComputeSessionXP(closed.Minutes(), closed.IsNegative(), streakBefore)
	}

	stats := s.stats.StatsOrDefault(ctx)
	if delta != 0 {
		stats, err = s.stats.AddXP(ctx, delta)
		if err != nil {
			return nil, err
		}
	}

	if closed.IsNegative() {
		appID := closed.ActivityType
		if appID == "" {
			appID = closed.AppID
		}
		usage := domain.NegativeUsage{
			Timestamp:       now.UnixMilli(),
			AppID:           appID,
			DurationMinutes: closed.Minutes(),
		}
		if err := s.ledger.AppendNegativeUsage(ctx, usage); err != nil {
			logging.Logger.Warn("Failed to append negative usage record", "error", err)
		}
	}

	if account := s.accounts.AccountOrNil(ctx); account != nil {
		s.stats.MirrorSession(account, closed)
	}

	logging.Logger.Info("Session closed",
		"session_id", closed.ID,
		"minutes", closed.Minutes(),
		"negative", closed.IsNegative(),
		"xp_delta", delta)

	return &CloseResult{
		Session: closed,
		XPDelta: delta,
		Stats:   stats,
		Streak:  s.Streak(ctx),
	}, nil
}
