package tour_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-labs/wtadb/internal/fault"
	"github.com/matchpoint-labs/wtadb/internal/metrics"
	"github.com/matchpoint-labs/wtadb/internal/notifier"
	"github.com/matchpoint-labs/wtadb/internal/pubsub"
	"github.com/matchpoint-labs/wtadb/internal/tour"
	"github.com/matchpoint-labs/wtadb/internal/validate"
)

type serviceFixture struct {
	svc      *tour.Service
	store    *tour.MockStore
	metrics  *metrics.Mock
	usage    *metrics.MockUsage
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
}

// setupService wires a Service over a mock store and a real checker backed by
// the seeded in-memory database.
func setupService(t *testing.T) serviceFixture {
	t.Helper()
	db := setupTestDB(t)
	f := serviceFixture{
		store:    tour.NewMockStore(),
		metrics:  metrics.NewMock(),
		usage:    metrics.NewMockUsage(),
		notifier: notifier.NewMock(),
		pubsub:   pubsub.NewMock(),
	}
	f.svc = tour.NewService(f.store, validate.NewChecker(db), f.metrics, f.usage, f.notifier, f.pubsub, false)
	return f
}

func validMatchInput() tour.RecordMatchInput {
	return tour.RecordMatchInput{
		IsFinal:      "no",
		TournamentID: "10",
		StartDate:    "2024-07-01",
		Score:        "6-4, 7-6(3)",
		DurationMins: "105",
		WinnerID:     "1",
		LoserID:      "2",
		Played:       "yes",
		WinnerAces:   "4",
		WinnerBPs:    "2",
		WinnerDFs:    "1",
		LoserAces:    "6",
		LoserBPs:     "3",
		LoserDFs:     "2",
	}
}

func TestServiceTournamentWinnersTrimsName(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.TournamentWinners(context.Background(), "  Wimbledon  ")
	require.NoError(t, err)
	require.Len(t, f.store.TournamentWinnersCalls, 1)
	assert.Equal(t, "Wimbledon", f.store.TournamentWinnersCalls[0])
	counts, err := f.usage.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 1, counts["tournament-winners"])
}

func TestServiceTournamentWinnersEmptyName(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.TournamentWinners(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindValidation))
	assert.Empty(t, f.store.TournamentWinnersCalls)
	assert.Equal(t, 1, f.metrics.ValidationFailures())
}

func TestServicePlayersByCountryUppercases(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.PlayersByCountry(context.Background(), "usa")
	require.NoError(t, err)
	require.Len(t, f.store.PlayersByCountryCalls, 1)
	assert.Equal(t, "USA", f.store.PlayersByCountryCalls[0])
}

func TestServicePlayersByCountryUnknownCountry(t *testing.T) {
	f := setupService(t)

	// A well-formed code carried by no player is rejected before the
	// roster query is built.
	_, err := f.svc.PlayersByCountry(context.Background(), "FRA")
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindValidation))
	assert.Empty(t, f.store.PlayersByCountryCalls)
	assert.Equal(t, 1, f.metrics.ValidationFailures())
}

func TestServicePlayersByCountryBadCode(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.PlayersByCountry(context.Background(), "202")
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindValidation))
	assert.Empty(t, f.store.PlayersByCountryCalls)
}

func TestServiceUpdatePlayer(t *testing.T) {
	f := setupService(t)

	err := f.svc.UpdatePlayer(context.Background(), "1", "hand", "l")
	require.NoError(t, err)
	require.Len(t, f.store.UpdatePlayerFieldCalls, 1)
	call := f.store.UpdatePlayerFieldCalls[0]
	assert.Equal(t, 1, call.PlayerID)
	assert.Equal(t, "hand", call.Field)
	assert.Equal(t, "L", call.Value)

	require.Len(t, f.pubsub.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventPlayerUpdated), f.pubsub.SendMessageCalls[0].Topic)
}

func TestServiceUpdatePlayerMissingPlayer(t *testing.T) {
	f := setupService(t)

	err := f.svc.UpdatePlayer(context.Background(), "999", "height", "180")
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindValidation))
	// The store is never touched when the existence check fails.
	assert.Empty(t, f.store.UpdatePlayerFieldCalls)
	assert.Empty(t, f.pubsub.SendMessageCalls)
}

func TestServiceUpdatePlayerUnknownField(t *testing.T) {
	f := setupService(t)

	err := f.svc.UpdatePlayer(context.Background(), "1", "player_id", "7")
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindValidation))
	assert.Empty(t, f.store.UpdatePlayerFieldCalls)
}

func TestServiceUpdatePlayerBadValue(t *testing.T) {
	f := setupService(t)

	err := f.svc.UpdatePlayer(context.Background(), "1", "dob", "31-05-2001")
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindValidation))
	assert.Empty(t, f.store.UpdatePlayerFieldCalls)
}

func TestServiceUpdateRanking(t *testing.T) {
	f := setupService(t)

	err := f.svc.UpdateRanking(context.Background(), "2", "3", "6800", "22")
	require.NoError(t, err)
	require.Len(t, f.store.UpdateRankingSlotCalls, 1)
	assert.Equal(t, tour.UpdateRankingSlotCall{Rank: 2, PlayerID: 3, Points: 6800, TournamentsPlayed: 22}, f.store.UpdateRankingSlotCalls[0])

	require.Len(t, f.pubsub.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventRankingUpdated), f.pubsub.SendMessageCalls[0].Topic)
}

func TestServiceUpdateRankingOutOfRange(t *testing.T) {
	f := setupService(t)

	for _, rank := range []string{"0", "21", "abc", "-1"} {
		err := f.svc.UpdateRanking(context.Background(), rank, "3", "100", "5")
		require.Error(t, err, "rank %q", rank)
		assert.True(t, fault.IsKind(err, fault.KindValidation))
	}
	assert.Empty(t, f.store.UpdateRankingSlotCalls)
	assert.Equal(t, 4, f.metrics.ValidationFailures())
}

func TestServiceRecordMatch(t *testing.T) {
	f := setupService(t)
	f.store.RecordMatchResultFunc = func(ctx context.Context, m tour.MatchResult) (int, error) {
		return 0, nil
	}

	err := f.svc.RecordMatch(context.Background(), validMatchInput())
	require.NoError(t, err)
	require.Len(t, f.store.RecordMatchResultCalls, 1)

	m := f.store.RecordMatchResultCalls[0]
	assert.False(t, m.IsFinal)
	assert.Equal(t, 10, m.TournamentID)
	require.NotNil(t, m.WinnerStats)
	assert.Equal(t, tour.MatchStats{Aces: 4, BreakPointsSaved: 2, DoubleFaults: 1}, *m.WinnerStats)
	require.NotNil(t, m.LoserStats)

	assert.Equal(t, 1, f.metrics.TxCommitted())
	require.Len(t, f.notifier.Calls(), 1)
	require.Len(t, f.pubsub.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventMatchRecorded), f.pubsub.SendMessageCalls[0].Topic)
}

func TestServiceRecordMatchFinalAnnouncesYear(t *testing.T) {
	f := setupService(t)
	f.store.RecordMatchResultFunc = func(ctx context.Context, m tour.MatchResult) (int, error) {
		return 2024, nil
	}

	in := validMatchInput()
	in.IsFinal = "yes"
	require.NoError(t, f.svc.RecordMatch(context.Background(), in))

	calls := f.notifier.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].IsFinal)
	assert.Equal(t, 2024, calls[0].Year)
}

func TestServiceRecordMatchWalkoverSkipsStats(t *testing.T) {
	f := setupService(t)

	in := validMatchInput()
	in.Played = "no"
	in.WinnerAces, in.WinnerBPs, in.WinnerDFs = "", "", ""
	in.LoserAces, in.LoserBPs, in.LoserDFs = "", "", ""
	require.NoError(t, f.svc.RecordMatch(context.Background(), in))

	m := f.store.RecordMatchResultCalls[0]
	assert.Nil(t, m.WinnerStats)
	assert.Nil(t, m.LoserStats)
}

func TestServiceRecordMatchPartialStats(t *testing.T) {
	f := setupService(t)

	in := validMatchInput()
	in.LoserDFs = ""
	err := f.svc.RecordMatch(context.Background(), in)
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindValidation))
	assert.Empty(t, f.store.RecordMatchResultCalls)
}

func TestServiceRecordMatchSamePlayer(t *testing.T) {
	f := setupService(t)

	in := validMatchInput()
	in.LoserID = in.WinnerID
	err := f.svc.RecordMatch(context.Background(), in)
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindValidation))
	assert.Empty(t, f.store.RecordMatchResultCalls)
}

func TestServiceRecordMatchMissingTournament(t *testing.T) {
	f := setupService(t)

	in := validMatchInput()
	in.TournamentID = "999"
	err := f.svc.RecordMatch(context.Background(), in)
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindValidation))
	assert.Empty(t, f.store.RecordMatchResultCalls)
	assert.Empty(t, f.notifier.Calls())
}

func TestServiceRecordMatchRolledBack(t *testing.T) {
	f := setupService(t)
	f.store.RecordMatchResultFunc = func(ctx context.Context, m tour.MatchResult) (int, error) {
		return 0, fault.New(fault.KindTransaction, "record-match-result", errors.New("history upsert failed"))
	}

	err := f.svc.RecordMatch(context.Background(), validMatchInput())
	require.Error(t, err)
	assert.Equal(t, 1, f.metrics.TxRolledBack())
	assert.Equal(t, 0, f.metrics.TxCommitted())
	// No announcement for a write that did not commit.
	assert.Empty(t, f.notifier.Calls())
	assert.Empty(t, f.pubsub.SendMessageCalls)
}

func TestServiceNotifierFailureDoesNotFailWrite(t *testing.T) {
	f := setupService(t)
	f.notifier.SendMatchRecordedFunc = func(a notifier.MatchAnnouncement, dryRun bool) error {
		return errors.New("slack unavailable")
	}

	err := f.svc.RecordMatch(context.Background(), validMatchInput())
	require.NoError(t, err)
}

func TestServiceUsageCountsPerOperation(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.TopRanked(context.Background())
	require.NoError(t, err)
	_, err = f.svc.TopRanked(context.Background())
	require.NoError(t, err)
	_, err = f.svc.UnrankedPlayers(context.Background())
	require.NoError(t, err)

	counts, err := f.svc.UsageStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, counts["top-ranked"])
	assert.Equal(t, 1, counts["unranked-players"])
}
