package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/npcai/internal/testutil"
)

func TestHealthRepository_Snapshots(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pool := testutil.SetupTestDB(t)
	repo := NewHealthRepository(pool)
	ctx := context.Background()

	_, ok, err := repo.LoadSnapshot(ctx, "hero")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SaveSnapshot(ctx, HealthSnapshot{Owner: "hero", Current: 80, Max: 100}))
	require.NoError(t, repo.SaveSnapshot(ctx, HealthSnapshot{Owner: "hero", Current: 0, Max: 100, Dead: true}))

	got, ok, err := repo.LoadSnapshot(ctx, "hero")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(0), got.Current)
	assert.Equal(t, int32(100), got.Max)
	assert.True(t, got.Dead)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestHealthRepository_DamageHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pool := testutil.SetupTestDB(t)
	repo := NewHealthRepository(pool)
	ctx := context.Background()

	for _, e := range []DamageEvent{
		{Owner: "hero", Amount: 10, Remaining: 90},
		{Owner: "hero", Amount: 10, Remaining: 80},
		{Owner: "other", Amount: 5, Remaining: 45},
		{Owner: "hero", Amount: 10, Remaining: 70},
	} {
		require.NoError(t, repo.RecordDamage(ctx, e))
	}

	history, err := repo.DamageHistory(ctx, "hero", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int32(70), history[0].Remaining, "newest first")
	assert.Equal(t, int32(80), history[1].Remaining)

	assert.Error(t, repo.RecordDamage(ctx, DamageEvent{Owner: "hero", Amount: 0}), "non-positive damage violates the check")
}

func TestHealthJournal_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pool := testutil.SetupTestDB(t)
	repo := NewHealthRepository(pool)
	ctx := context.Background()

	j := NewHealthJournal(repo, 8)
	j.Track(1, "hero", 100, 100)
	j.HealthChanged(1, 75, 100)
	runToCompletion(t, j)

	got, ok, err := repo.LoadSnapshot(ctx, "hero")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(75), got.Current)

	history, err := repo.DamageHistory(ctx, "hero", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int32(25), history[0].Amount)
}
