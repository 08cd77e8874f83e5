package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/unscroll-app/unscroll/internal/domain"
	"github.com/unscroll-app/unscroll/internal/logging"
	"github.com/unscroll-app/unscroll/internal/ports"
)

// mirrorTimeout bounds each background mirror attempt.
const mirrorTimeout = 10 * time.Second

// StatsService folds XP deltas into the running user stats record and
// mirrors the result when an account is present.
type StatsService struct {
	store    ports.KeyValueStore
	mirror   ports.RemoteMirror
	accounts *AccountService
}

// NewStatsService creates a StatsService. The mirror may be nil, which
// simply disables remote mirroring.
func NewStatsService(store ports.KeyValueStore, mirror ports.RemoteMirror, accounts *AccountService) *StatsService {
	return &StatsService{store: store, mirror: mirror, accounts: accounts}
}

// Stats returns the stored record, lazily defaulting to {xp: 0, level: 1}.
func (s *StatsService) Stats(ctx context.Context) (domain.UserStats, error) {
	data, found, err := s.store.Get(ctx, userStatsKey)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("failed to load user stats: %w", err)
	}
	if !found {
		return domain.DefaultStats(), nil
	}

	var stats domain.UserStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return domain.UserStats{}, fmt.Errorf("failed to decode user stats: %w", err)
	}
	if stats.Level < 1 {
		stats.Level = 1
	}
	return stats, nil
}

// StatsOrDefault is the fail-open variant of Stats.
func (s *StatsService) StatsOrDefault(ctx context.Context) domain.UserStats {
	stats, err := s.Stats(ctx)
	if err != nil {
		logging.Logger.Warn("Reading user stats failed, using defaults", "error", err)
		return domain.DefaultStats()
	}
	return stats
}

// AddXP applies a signed XP delta and persists the result. XP is not clamped
// at zero; the level only ever rises. The updated record is mirrored in the
// background when an account is present.
func (s *StatsService) AddXP(ctx context.Context, delta int) (domain.UserStats, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return domain.UserStats{}, err
	}

	stats = stats.ApplyDelta(delta)

	data, err := json.Marshal(stats)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("failed to encode user stats: %w", err)
	}
	if err := s.store.Set(ctx, userStatsKey, string(data)); err != nil {
		return domain.UserStats{}, fmt.Errorf("failed to save user stats: %w", err)
	}

	logging.Logger.Info("XP applied",
		"delta", delta,
		"xp", stats.XP,
		"level", stats.Level)

	if account := s.accounts.AccountOrNil(ctx); account != nil {
		s.mirrorUpsert(mirrorStatsTable, map[string]any{
			"user_id":    account.ID,
			"xp":         stats.XP,
			"level":      stats.Level,
			"updated_at": time.Now().UTC().Format(time.RFC3339),
		})
	}

	return stats, nil
}

// MirrorSession mirrors a finished session record for the given account.
func (s *StatsService) MirrorSession(account *domain.Account, session domain.SessionEvent) {
	record := map[string]any{
		"id":         session.ID,
		"user_id":    account.ID,
		"start_time": session.StartTime,
		"app_id":     session.AppID,
		"activity":   session.ActivityType,
		"reason":     session.Reason,
		"minutes":    session.Minutes(),
	}
	if session.EndTime != nil {
		record["end_time"] = *session.EndTime
	}
	s.mirrorUpsert(mirrorSessionsTable, record)
}

// mirrorUpsert fires a background upsert. Failures are logged and swallowed:
// the local write already succeeded and stays authoritative.
func (s *StatsService) mirrorUpsert(table string, record any) {
	if s.mirror == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := s.mirror.Upsert(ctx, table, record); err != nil {
			logging.Logger.Warn("Remote mirror failed",
				"table", table,
				"error", err)
		}
	}()
}
