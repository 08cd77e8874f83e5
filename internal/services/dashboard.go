package services

import (
	"context"
	"math"
	"time"

	"github.com/unscroll-app/unscroll/internal/domain"
)

// DashboardService aggregates the ledger into the numbers the dashboard
// shows. Everything here is fail-open: a broken store produces an empty
// summary, never an error.
type DashboardService struct {
	ledger  *LedgerService
	plans   *PlanService
	stats   *StatsService
	tracker *TrackerService
	now     func() time.Time
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(ledger *LedgerService, plans *PlanService, stats *StatsService, tracker *TrackerService) *DashboardService {
	return &DashboardService{
		ledger:  ledger,
		plans:   plans,
		stats:   stats,
		tracker: tracker,
		now:     time.Now,
	}
}

// Summary is a point-in-time snapshot of the user's progress.
type Summary struct {
	Stats         domain.UserStats
	Streak        int
	Plan          *domain.WeeklyPlan
	ActiveSession *domain.SessionEvent
	TodayMinutes  int            // positive minutes logged today
	WeekMinutes   int            // positive minutes over the trailing 7 days
	PerActivity   map[string]int // minutes per activity, slip-ups included
	FocusQuality  int            // completed sessions as a % of all sessions
}

// Summary builds the dashboard snapshot.
func (s *DashboardService) Summary(ctx context.Context) Summary {
	now := s.now()
	sessions := s.ledger.SessionsOrEmpty(ctx)
	negativeLog := s.ledger.NegativeUsageOrEmpty(ctx)

	summary := Summary{
		Stats:       s.stats.StatsOrDefault(ctx),
		Streak:      s.tracker.Streak(ctx),
		Plan:        s.plans.PlanOrNil(ctx),
		PerActivity: make(map[string]int),
	}

	if active, err := s.ledger.ActiveSession(ctx); err == nil {
		summary.ActiveSession = active
	}

	today := dayStart(now)
	weekStart := dayStart(now.AddDate(0, 0, -6))

	completed := 0
	for _, session := range sessions {
		if session.IsComplete {
			completed++
		} else {
			continue
		}

		day := dayStart(session.StartedAt())
		if session.IsNegative() {
			continue
		}

		if day.Equal(today) {
			summary.TodayMinutes += session.Minutes()
		}
		if !day.Before(weekStart) {
			summary.WeekMinutes += session.Minutes()

			key := session.ActivityType
			if key == "" {
				key = session.AppID
			}
			if key == "" {
				key = "Focus"
			}
			summary.PerActivity[key] += session.Minutes()
		}
	}

	for _, usage := range negativeLog {
		if usage.RecordedAt().Before(weekStart) {
			continue
		}
		summary.PerActivity[usage.AppID] += usage.DurationMinutes
	}

	if len(sessions) == 0 {
		summary.FocusQuality = 100
	} else {
		summary.FocusQuality = int(math.Round(float64(completed) / float64(len(sessions)) * 100))
	}

	return summary
}

// dayStart truncates a time to local midnight.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
