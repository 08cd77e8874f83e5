package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/unscroll-app/unscroll/internal/domain"
	"github.com/unscroll-app/unscroll/internal/logging"
	"github.com/unscroll-app/unscroll/internal/ports"
)

// LedgerService is the durable list of all session events plus the active
// session pointer and the negative-usage log. Methods return errors so
// callers can tell a failed read from an empty ledger; the OrEmpty variants
// reproduce the fail-open contract the UI layer relies on.
type LedgerService struct {
	store ports.KeyValueStore
	now   func() time.Time
}

// NewLedgerService creates a LedgerService on the given store.
func NewLedgerService(store ports.KeyValueStore) *LedgerService {
	return &LedgerService{store: store, now: time.Now}
}

// Sessions returns all recorded sessions. Order is storage order, not
// chronological; callers sort by start time when it matters.
func (s *LedgerService) Sessions(ctx context.Context) ([]domain.SessionEvent, error) {
	data, found, err := s.store.Get(ctx, sessionsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	if !found {
		return []domain.SessionEvent{}, nil
	}

	var sessions []domain.SessionEvent
	if err := json.Unmarshal([]byte(data), &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

// SessionsOrEmpty is the fail-open variant of Sessions: a corrupted or
// unreadable ledger degrades to an empty list instead of an error.
func (s *LedgerService) SessionsOrEmpty(ctx context.Context) []domain.SessionEvent {
	sessions, err := s.Sessions(ctx)
	if err != nil {
		logging.Logger.Warn("Reading sessions failed, treating as empty", "error", err)
		return []domain.SessionEvent{}
	}
	return sessions
}

// SaveSession upserts a session by id, preserving list position on replace.
// A complete session clears the active pointer; an open one points it at
// itself.
func (s *LedgerService) SaveSession(ctx context.Context, session domain.SessionEvent) error {
	sessions, err := s.Sessions(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range sessions {
		if sessions[i].ID == session.ID {
			sessions[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, session)
	}

	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	if err := s.store.Set(ctx, sessionsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}

	if session.IsComplete {
		return s.SetActiveSessionID(ctx, "")
	}
	return s.SetActiveSessionID(ctx, session.ID)
}

// SessionByID returns the matching session, or nil when absent.
func (s *LedgerService) SessionByID(ctx context.Context, id string) (*domain.SessionEvent, error) {
	sessions, err := s.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// ActiveSessionID returns the cached pointer value, or "" when unset.
func (s *LedgerService) ActiveSessionID(ctx context.Context) (string, error) {
	id, _, err := s.store.Get(ctx, activeSessionKey)
	if err != nil {
		return "", fmt.Errorf("failed to read active session pointer: %w", err)
	}
	return id, nil
}

// SetActiveSessionID updates the pointer; an empty id clears it.
func (s *LedgerService) SetActiveSessionID(ctx context.Context, id string) error {
	if id == "" {
		if err := s.store.Remove(ctx, activeSessionKey); err != nil {
			return fmt.Errorf("failed to clear active session pointer: %w", err)
		}
		return nil
	}
	if err := s.store.Set(ctx, activeSessionKey, id); err != nil {
		return fmt.Errorf("failed to set active session pointer: %w", err)
	}
	return nil
}

// ActiveSession resolves the current open session. The pointer is consulted
// first; when it is stale (referent missing or already complete) the most
// recently started incomplete session wins. The derived fallback is ground
// truth, the pointer just a cache that can lag after a crash.
func (s *LedgerService) ActiveSession(ctx context.Context) (*domain.SessionEvent, error) {
	sessions, err := s.Sessions(ctx)
	if err != nil {
		return nil, err
	}

	pointer, err := s.ActiveSessionID(ctx)
	if err != nil {
		logging.Logger.Warn("Reading active session pointer failed, using fallback", "error", err)
		pointer = ""
	}

	if pointer != "" {
		for i := range sessions {
			if sessions[i].ID == pointer && !sessions[i].IsComplete {
				return &sessions[i], nil
			}
		}
	}

	var incomplete []domain.SessionEvent
	for _, session := range sessions {
		if !session.IsComplete {
			incomplete = append(incomplete, session)
		}
	}
	if len(incomplete) == 0 {
		return nil, nil
	}
	sort.Slice(incomplete, func(i, j int) bool {
		return incomplete[i].StartTime > incomplete[j].StartTime
	})
	return &incomplete[0], nil
}

// StartSession opens a new session and records it as active.
func (s *LedgerService) StartSession(ctx context.Context, appID, activityType string) (domain.SessionEvent, error) {
	session := domain.NewSession(appID, activityType, s.now())
	if err := s.SaveSession(ctx, session); err != nil {
		return domain.SessionEvent{}, err
	}
	logging.Logger.Info("Session started",
		"session_id", session.ID,
		"app_id", appID,
		"activity", activityType)
	return session, nil
}

// NegativeUsage returns the slip-up log, empty on a missing or broken key.
func (s *LedgerService) NegativeUsage(ctx context.Context) ([]domain.NegativeUsage, error) {
	data, found, err := s.store.Get(ctx, negativeUsageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load negative usage log: %w", err)
	}
	if !found {
		return []domain.NegativeUsage{}, nil
	}

	var usage []domain.NegativeUsage
	if err := json.Unmarshal([]byte(data), &usage); err != nil {
		return nil, fmt.Errorf("failed to decode negative usage log: %w", err)
	}
	return usage, nil
}

// NegativeUsageOrEmpty is the fail-open variant of NegativeUsage.
func (s *LedgerService) NegativeUsageOrEmpty(ctx context.Context) []domain.NegativeUsage {
	usage, err := s.NegativeUsage(ctx)
	if err != nil {
		logging.Logger.Warn("Reading negative usage log failed, treating as empty", "error", err)
		return []domain.NegativeUsage{}
	}
	return usage
}

// AppendNegativeUsage adds one slip-up record to the log.
func (s *LedgerService) AppendNegativeUsage(ctx context.Context, usage domain.NegativeUsage) error {
	log, err := s.NegativeUsage(ctx)
	if err != nil {
		return err
	}
	log = append(log, usage)

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to encode negative usage log: %w", err)
	}
	if err := s.store.Set(ctx, negativeUsageKey, string(data)); err != nil {
		return fmt.Errorf("failed to save negative usage log: %w", err)
	}
	return nil
}

// ClearAll wipes every key the app owns: plan, sessions, pointer, stats,
// reflections, negative-usage log, and stored account.
func (s *LedgerService) ClearAll(ctx context.Context) error {
	if err := s.store.RemoveMany(ctx, allKeys()); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	logging.Logger.Info("All local data cleared")
	return nil
}
