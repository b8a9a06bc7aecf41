package format_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-labs/wtadb/internal/format"
	"github.com/matchpoint-labs/wtadb/internal/tour"
)

var now = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

func TestAge(t *testing.T) {
	assert.Equal(t, 23, format.Age("2001-05-31", now))
	// Birthday later in the year has not happened yet.
	assert.Equal(t, 19, format.Age("2004-12-25", now))
	// Unparseable dates signal instead of passing for a newborn.
	assert.Equal(t, -1, format.Age("not-a-date", now))
}

func TestUnparseableDOBRendersAsUnknown(t *testing.T) {
	res := format.TopRanked([]tour.RankedPlayer{
		{Rank: 1, FirstName: "Iga", LastName: "Swiatek", DOB: "31/05/2001"},
	}, now)
	require.Len(t, res.Records, 1)
	assert.Equal(t, format.Field{Label: "Age", Value: "?"}, res.Records[0][2])

	unranked := format.UnrankedPlayers([]tour.AgedPlayer{
		{FirstName: "Ons", LastName: "Jabeur", DOB: "bad"},
	}, now)
	assert.Equal(t, format.Field{Label: "Age", Value: "?"}, unranked.Records[0][1])
}

func TestTournamentWinners(t *testing.T) {
	res := format.TournamentWinners([]tour.TournamentWin{
		{Year: 2022, FirstName: "Petra", LastName: "Kvitova"},
		{Year: 2023, FirstName: "Ons", LastName: "Jabeur"},
	})
	require.False(t, res.Empty)
	require.Len(t, res.Records, 2)
	assert.Equal(t, format.DisplayRecord{
		{Label: "Year", Value: "2022"},
		{Label: "Champion", Value: "Petra Kvitova"},
	}, res.Records[0])
}

func TestTournamentWinnersEmpty(t *testing.T) {
	res := format.TournamentWinners(nil)
	assert.True(t, res.Empty)
	assert.Equal(t, "No matching records.", res.String())
}

func TestTopRankedDerivesAge(t *testing.T) {
	res := format.TopRanked([]tour.RankedPlayer{
		{Rank: 1, FirstName: "Iga", LastName: "Swiatek", DOB: "2001-05-31"},
	}, now)
	require.Len(t, res.Records, 1)
	assert.Equal(t, format.Field{Label: "Age", Value: "23"}, res.Records[0][2])
}

func TestFormattingIsIdempotent(t *testing.T) {
	players := []tour.AgedPlayer{
		{FirstName: "Ons", LastName: "Jabeur", DOB: "1994-08-28"},
	}
	first := format.UnrankedPlayers(players, now)
	second := format.UnrankedPlayers(players, now)
	assert.Equal(t, first, second)
	assert.Equal(t, first.String(), second.String())
}

func TestUsageStatsSortedByKey(t *testing.T) {
	res := format.UsageStats(map[string]int{
		"top-ranked":          3,
		"insert-match-result": 1,
	})
	require.Len(t, res.Records, 2)
	assert.Equal(t, "insert-match-result", res.Records[0][0].Value)
	assert.Equal(t, "top-ranked", res.Records[1][0].Value)
}

func TestResultString(t *testing.T) {
	res := format.SurfaceBreakdown([]tour.SurfaceCount{
		{Surface: "clay", Matches: 2},
		{Surface: "grass", Matches: 1},
	})
	assert.Equal(t, "Surface: clay\nMatches: 2\n\nSurface: grass\nMatches: 1\n", res.String())
}
