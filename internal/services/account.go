package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/unscroll-app/unscroll/internal/domain"
	"github.com/unscroll-app/unscroll/internal/logging"
	"github.com/unscroll-app/unscroll/internal/ports"
)

// AccountService stores the remote identity. Whether an account is present
// is what decides if writes get mirrored; sign-in itself happens elsewhere.
type AccountService struct {
	store ports.KeyValueStore
}

// NewAccountService creates an AccountService on the given store.
func NewAccountService(store ports.KeyValueStore) *AccountService {
	return &AccountService{store: store}
}

// Account returns the stored identity, or nil when signed out.
func (s *AccountService) Account(ctx context.Context) (*domain.Account, error) {
	data, found, err := s.store.Get(ctx, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if !found {
		return nil, nil
	}

	var account domain.Account
	if err := json.Unmarshal([]byte(data), &account); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}
	return &account, nil
}

// AccountOrNil is the fail-open variant of Account. A broken read looks like
// signed-out, which only means the mirror stays off.
func (s *AccountService) AccountOrNil(ctx context.Context) *domain.Account {
	account, err := s.Account(ctx)
	if err != nil {
		logging.Logger.Warn("Reading account failed, treating as signed out", "error", err)
		return nil
	}
	return account
}

// SetAccount stores an identity; nil clears it.
func (s *AccountService) SetAccount(ctx context.Context, account *domain.Account) error {
	if account == nil {
		if err := s.store.Remove(ctx, accountKey); err != nil {
			return fmt.Errorf("failed to clear account: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to encode account: %w", err)
	}
	if err := s.store.Set(ctx, accountKey, string(data)); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// Token returns the stored access token, or "" when absent.
func (s *AccountService) Token(ctx context.Context) (string, error) {
	token, _, err := s.store.Get(ctx, accountTokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// SetToken stores an access token; an empty token clears it.
func (s *AccountService) SetToken(ctx context.Context, token string) error {
	if token == "" {
		if err := s.store.Remove(ctx, accountTokenKey); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
		return nil
	}
	if err := s.store.Set(ctx, accountTokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}
