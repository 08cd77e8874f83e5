package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unscroll-app/unscroll/internal/domain"
)

func TestAccount_NilWhenSignedOut(t *testing.T) {
	ts := newTestServices()

	account, err := ts.accounts.Account(context.Background())
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestSetAccount_RoundTrip(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	account := &domain.Account{ID: "user-1", Email: "a@b.c", Name: "A"}
	require.NoError(t, ts.accounts.SetAccount(ctx, account))

	loaded, err := ts.accounts.Account(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, *account, *loaded)
}

func TestSetAccount_NilClears(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	require.NoError(t, ts.accounts.SetAccount(ctx, &domain.Account{ID: "user-1"}))
	require.NoError(t, ts.accounts.SetAccount(ctx, nil))

	account, err := ts.accounts.Account(ctx)
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestToken_RoundTripAndClear(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	require.NoError(t, ts.accounts.SetToken(ctx, "tok-123"))

	token, err := ts.accounts.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	require.NoError(t, ts.accounts.SetToken(ctx, ""))
	token, err = ts.accounts.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
