package main

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-labs/wtadb/internal/config"
	"github.com/matchpoint-labs/wtadb/internal/database"
	"github.com/matchpoint-labs/wtadb/internal/tour"
)

func setupSeededDB(t *testing.T) *sql.DB {
	t.Helper()
	db, teardown, err := database.Connect(database.RoleAdmin, config.Config{DBPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(teardown)
	require.NoError(t, seedSampleData(db))
	return db
}

func TestSeedPopulatesEveryRankSlot(t *testing.T) {
	db := setupSeededDB(t)

	// No gaps: every rank 1..20 has exactly one occupant.
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM ranking").Scan(&n))
	assert.Equal(t, 20, n)
	require.NoError(t, db.QueryRow("SELECT COUNT(DISTINCT rank) FROM ranking WHERE rank BETWEEN 1 AND 20").Scan(&n))
	assert.Equal(t, 20, n)

	// Every slot references a seeded player.
	require.NoError(t, db.QueryRow(`
		SELECT COUNT(*) FROM ranking r
		LEFT JOIN player p ON r.player_id = p.player_id
		WHERE p.player_id IS NULL`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestSeedAllowsReplacingAnySlot(t *testing.T) {
	db := setupSeededDB(t)
	store := tour.New(db)

	// A freshly seeded database accepts a replacement at every valid rank.
	for _, rank := range []int{1, 5, 17, 20} {
		err := store.UpdateRankingSlot(context.Background(), rank, 21, 3000, 15)
		require.NoError(t, err, "rank %d", rank)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupSeededDB(t)
	require.NoError(t, seedSampleData(db))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM ranking").Scan(&n))
	assert.Equal(t, 20, n)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM player").Scan(&n))
	assert.Equal(t, 24, n)
}

func TestEnsureAdmin(t *testing.T) {
	db := setupSeededDB(t)

	require.NoError(t, ensureAdmin(db, "boss", "hunter2"))
	var isAdmin int
	require.NoError(t, db.QueryRow("SELECT is_admin FROM user_info WHERE username = 'boss'").Scan(&isAdmin))
	assert.Equal(t, 1, isAdmin)

	// Re-running keeps the existing account.
	require.NoError(t, ensureAdmin(db, "boss", "other"))
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM user_info WHERE username = 'boss'").Scan(&n))
	assert.Equal(t, 1, n)

	assert.Error(t, ensureAdmin(db, "", "pw"))
	assert.Error(t, ensureAdmin(db, "boss", ""))
}
