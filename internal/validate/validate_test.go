package validate_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/matchpoint-labs/wtadb/internal/config"
	"github.com/matchpoint-labs/wtadb/internal/database"
	"github.com/matchpoint-labs/wtadb/internal/fault"
	"github.com/matchpoint-labs/wtadb/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	got, err := validate.Date("2001-05-31")
	require.NoError(t, err)
	assert.Equal(t, "2001-05-31", got)

	for _, raw := range []string{"31-05-2001", "2001-13-01", "2001-02-30", "yesterday", ""} {
		_, err := validate.Date(raw)
		require.Error(t, err, "input %q", raw)
		assert.Equal(t, fault.KindValidation, fault.KindOf(err))
	}
}

func TestPositiveInt(t *testing.T) {
	n, err := validate.PositiveInt("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	for _, raw := range []string{"-1", "4.2", "abc", "", "1e3"} {
		_, err := validate.PositiveInt(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestIntInRange(t *testing.T) {
	n, err := validate.IntInRange("5", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = validate.IntInRange("0", 1, 20)
	assert.Error(t, err)
	_, err = validate.IntInRange("21", 1, 20)
	assert.Error(t, err)
}

func TestCountryCode(t *testing.T) {
	got, err := validate.CountryCode("usa")
	require.NoError(t, err)
	assert.Equal(t, "USA", got)

	for _, raw := range []string{"US", "USAA", "123", ""} {
		_, err := validate.CountryCode(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestHand(t *testing.T) {
	for raw, want := range map[string]string{"l": "L", "R": "R", " r ": "R"} {
		got, err := validate.Hand(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := validate.Hand("ambidextrous")
	assert.Error(t, err)
}

func TestYesNo(t *testing.T) {
	for raw, want := range map[string]bool{"yes": true, "Y": true, "no": false, "N": false} {
		got, err := validate.YesNo(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := validate.YesNo("maybe")
	assert.Error(t, err)
}

func TestScore(t *testing.T) {
	for _, raw := range []string{"6-4, 7-6(3)", "WALKOVER"} {
		_, err := validate.Score(raw)
		assert.NoError(t, err, "input %q", raw)
	}
	for _, raw := range []string{"", "64"} {
		_, err := validate.Score(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, teardown, err := database.Connect(database.RoleAdmin, config.Config{DBPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(teardown)
	return db
}

func TestChecker(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Exec(`INSERT INTO player (player_id, first_name, last_name, hand, dob, country, height) VALUES
		(1, 'Serena', 'Williams', 'R', '1981-09-26', 'USA', 175)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tournament (tournament_id, tournament_name, surface, tournament_year) VALUES (7, 'Wimbledon', 'grass', 2025)`)
	require.NoError(t, err)

	checker := validate.NewChecker(db)
	ctx := context.Background()

	ok, err := checker.PlayerExists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = checker.PlayerExists(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = checker.TournamentExists(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = checker.CountryExists(ctx, "USA")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = checker.CountryExists(ctx, "ZZZ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckerUnknownLookup(t *testing.T) {
	checker := validate.NewChecker(setupTestDB(t))
	_, err := checker.Exists(context.Background(), "ranking; DROP TABLE player", 1)
	assert.Error(t, err)
}

func TestCheckerValueIsDataNotStructure(t *testing.T) {
	db := setupTestDB(t)
	checker := validate.NewChecker(db)

	// A crafted value must be treated as literal data.
	ok, err := checker.Exists(context.Background(), "country", "x'; DROP TABLE player; --")
	require.NoError(t, err)
	assert.False(t, ok)

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'player'`).Scan(&name)
	require.NoError(t, err, "player table must still exist")
}
