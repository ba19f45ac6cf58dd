package service_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
)

func newKey() string {
	return uuid.Must(uuid.NewV4()).String()
}

func seedAccount(t *testing.T, store *memory.Store, encodedKey string, deposits ...string) {
	t.Helper()
	ctx := context.Background()

	w, err := store.Write(ctx)
	require.NoError(t, err)
	open := &actions.OpenAccount{OwnerID: 5, EncodedKey: encodedKey}
	require.NoError(t, open.Perform(ctx, w))
	require.NoError(t, w.Commit(ctx))

	for _, amount := range deposits {
		w, err := store.Write(ctx)
		require.NoError(t, err)
		dep := &actions.Deposit{EncodedKey: encodedKey, Amount: decimal.RequireFromString(amount)}
		require.NoError(t, dep.Perform(ctx, w))
		require.NoError(t, w.Commit(ctx))
	}
}

func TestGetAccount_NotFound(t *testing.T) {
	svc := service.NewService(memory.New())

	_, err := svc.Ledger.GetAccount(context.Background(), newKey())
	assert.ErrorIs(t, err, actions.ErrAccountNotFound)
}

func TestGetAccount_ZeroBalanceIsNotMissing(t *testing.T) {
	store := memory.New()
	key := newKey()
	seedAccount(t, store, key)
	svc := service.NewService(store)

	acct, err := svc.Ledger.GetAccount(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, key, acct.EncodedKey)
	assert.Equal(t, int64(5), acct.OwnerID)
	assert.True(t, acct.Balance.IsZero())
	assert.True(t, acct.IsActive)
}

func TestGetAccount_ReflectsMovements(t *testing.T) {
	store := memory.New()
	key := newKey()
	seedAccount(t, store, key, "10.50", "4.50")
	svc := service.NewService(store)

	acct, err := svc.Ledger.GetAccount(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, acct.Balance.Equal(decimal.RequireFromString("15.00")))
}

func TestListMovements_UnknownAccountIsEmpty(t *testing.T) {
	svc := service.NewService(memory.New())

	movs, err := svc.Ledger.ListMovements(context.Background(), newKey())
	require.NoError(t, err)
	assert.NotNil(t, movs)
	assert.Empty(t, movs)
}

func TestListMovements_NewestFirst(t *testing.T) {
	store := memory.New()
	key := newKey()
	seedAccount(t, store, key, "10.00", "20.00", "30.00")
	svc := service.NewService(store)

	movs, err := svc.Ledger.ListMovements(context.Background(), key)
	require.NoError(t, err)
	require.Len(t, movs, 3)

	assert.Equal(t, int64(3), movs[0].Sequence)
	assert.True(t, movs[0].Amount.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, int64(2), movs[1].Sequence)
	assert.Equal(t, int64(1), movs[2].Sequence)
	assert.Equal(t, "deposit", movs[0].Kind)
	assert.Equal(t, "API", movs[0].Channel)
}

func TestStaticOwnerDirectory(t *testing.T) {
	dir := service.StaticOwnerDirectory{}

	ok, err := dir.OwnerExists(context.Background(), 12)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dir.OwnerExists(context.Background(), 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
