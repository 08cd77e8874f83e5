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

// PlanService stores the user's weekly plan. The plan is replaced wholesale
// on every save, never patched.
type PlanService struct {
	store ports.KeyValueStore
	now   func() time.Time
}

// NewPlanService creates a PlanService on the given store.
func NewPlanService(store ports.KeyValueStore) *PlanService {
	return &PlanService{store: store, now: time.Now}
}

// Plan returns the stored plan, or nil when none has been created yet.
func (s *PlanService) Plan(ctx context.Context) (*domain.WeeklyPlan, error) {
	data, found, err := s.store.Get(ctx, planKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if !found {
		return nil, nil
	}

	var plan domain.WeeklyPlan
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	return &plan, nil
}

// PlanOrNil is the fail-open variant of Plan: read failures degrade to "no
// plan" instead of an error.
func (s *PlanService) PlanOrNil(ctx context.Context) *domain.WeeklyPlan {
	plan, err := s.Plan(ctx)
	if err != nil {
		logging.Logger.Warn("Reading plan failed, treating as absent", "error", err)
		return nil
	}
	return plan
}

// SavePlan persists the plan, stamping a creation time if it has none.
func (s *PlanService) SavePlan(ctx context.Context, plan domain.WeeklyPlan) error {
	if plan.CreatedAt == nil {
		created := s.now().UnixMilli()
		plan.CreatedAt = &created
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := s.store.Set(ctx, planKey, string(data)); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	logging.Logger.Info("Plan saved",
		"daily_limit_minutes", plan.DailyLimitMinutes,
		"apps", len(plan.Apps))
	return nil
}
