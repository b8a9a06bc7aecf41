package tour

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matchpoint-labs/wtadb/internal/fault"
	"github.com/matchpoint-labs/wtadb/internal/metrics"
	"github.com/matchpoint-labs/wtadb/internal/notifier"
	"github.com/matchpoint-labs/wtadb/internal/pubsub"
	"github.com/matchpoint-labs/wtadb/internal/query"
	"github.com/matchpoint-labs/wtadb/internal/validate"
)

// Service is the operation layer. It takes raw field values from the
// interaction surface, runs every validation rule and existence check before
// a statement is ever built, executes through the Store, and fans out
// notifications after committed writes.
type Service struct {
	store    Store
	checker  *validate.Checker
	metrics  metrics.Metrics
	usage    metrics.UsageStore
	notifier notifier.Notifier
	pubsub   pubsub.PubSubClient
	dryRun   bool
}

// NewService creates the operation layer over its collaborators.
func NewService(store Store, checker *validate.Checker, m metrics.Metrics, usage metrics.UsageStore, n notifier.Notifier, ps pubsub.PubSubClient, dryRun bool) *Service {
	return &Service{
		store:    store,
		checker:  checker,
		metrics:  m,
		usage:    usage,
		notifier: n,
		pubsub:   ps,
		dryRun:   dryRun,
	}
}

// reject counts a validation failure and returns the rule's error unchanged.
func (s *Service) reject(op query.Op, err error) error {
	s.metrics.IncValidationFailure()
	log.Debug("Rejected input", "op", string(op), "error", err)
	return err
}

func (s *Service) done(op query.Op) {
	s.usage.Increment(string(op))
}

// TournamentWinners lists the past champions of the named tournament, oldest
// year first. An unknown tournament name is not an error; it is an empty list.
func (s *Service) TournamentWinners(ctx context.Context, rawName string) ([]TournamentWin, error) {
	s.metrics.IncOperation(string(query.OpTournamentWinners))
	name, err := validate.Name(rawName)
	if err != nil {
		return nil, s.reject(query.OpTournamentWinners, err)
	}
	wins, err := s.store.TournamentWinners(ctx, name)
	if err != nil {
		return nil, err
	}
	s.done(query.OpTournamentWinners)
	return wins, nil
}

// TopRanked lists the current top-20, best rank first.
func (s *Service) TopRanked(ctx context.Context) ([]RankedPlayer, error) {
	s.metrics.IncOperation(string(query.OpTopRanked))
	players, err := s.store.TopRanked(ctx)
	if err != nil {
		return nil, err
	}
	s.done(query.OpTopRanked)
	return players, nil
}

// UnrankedPlayers lists every player outside the ranking table, youngest
// first.
func (s *Service) UnrankedPlayers(ctx context.Context) ([]AgedPlayer, error) {
	s.metrics.IncOperation(string(query.OpUnrankedPlayers))
	players, err := s.store.UnrankedPlayers(ctx)
	if err != nil {
		return nil, err
	}
	s.done(query.OpUnrankedPlayers)
	return players, nil
}

// SurfaceBreakdown counts the named player's matches per court surface.
func (s *Service) SurfaceBreakdown(ctx context.Context, rawFirst, rawLast string) ([]SurfaceCount, error) {
	s.metrics.IncOperation(string(query.OpSurfaceBreakdown))
	first, err := validate.Name(rawFirst)
	if err != nil {
		return nil, s.reject(query.OpSurfaceBreakdown, err)
	}
	last, err := validate.Name(rawLast)
	if err != nil {
		return nil, s.reject(query.OpSurfaceBreakdown, err)
	}
	counts, err := s.store.SurfaceBreakdown(ctx, first, last)
	if err != nil {
		return nil, err
	}
	s.done(query.OpSurfaceBreakdown)
	return counts, nil
}

// PlayersByCountry lists the players representing a country code. The code
// must be carried by at least one player; unknown codes are rejected rather
// than answered with an empty roster.
func (s *Service) PlayersByCountry(ctx context.Context, rawCode string) ([]PlayerProfile, error) {
	s.metrics.IncOperation(string(query.OpPlayersByCountry))
	code, err := validate.CountryCode(rawCode)
	if err != nil {
		return nil, s.reject(query.OpPlayersByCountry, err)
	}
	ok, err := s.checker.CountryExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.reject(query.OpPlayersByCountry,
			fault.Newf(fault.KindValidation, string(query.OpPlayersByCountry), "no players from country %q", code))
	}
	players, err := s.store.PlayersByCountry(ctx, code)
	if err != nil {
		return nil, err
	}
	s.done(query.OpPlayersByCountry)
	return players, nil
}

// UpdatePlayer changes exactly one mutable field of an existing player. The
// field name must come from the fixed allowlist and the value must pass the
// field's own rule; the player must exist before any statement is built.
func (s *Service) UpdatePlayer(ctx context.Context, rawPlayerID, field, rawValue string) error {
	op := query.OpUpdatePlayerField
	s.metrics.IncOperation(string(op))

	playerID, err := validate.PositiveInt(rawPlayerID)
	if err != nil {
		return s.reject(op, err)
	}
	if !query.MutablePlayerField(field) {
		return s.reject(op, fault.Newf(fault.KindValidation, string(op), "%q is not an updatable player field", field))
	}
	value, err := playerFieldValue(field, rawValue)
	if err != nil {
		return s.reject(op, err)
	}
	ok, err := s.checker.PlayerExists(ctx, playerID)
	if err != nil {
		return err
	}
	if !ok {
		return s.reject(op, fault.Newf(fault.KindValidation, string(op), "player %d does not exist", playerID))
	}

	if err := s.store.UpdatePlayerField(ctx, playerID, field, value); err != nil {
		return err
	}
	s.done(op)
	s.publish(pubsub.EventPlayerUpdated, pubsub.PlayerUpdatedEvent{PlayerID: playerID, Field: field})
	return nil
}

// UpdateRanking replaces the occupant of one rank slot. The rank must be in
// [1, 20] and the incoming player must exist; the slot itself always does.
func (s *Service) UpdateRanking(ctx context.Context, rawRank, rawPlayerID, rawPoints, rawTournaments string) error {
	op := query.OpUpdateRankingSlot
	s.metrics.IncOperation(string(op))

	rank, err := validate.IntInRange(rawRank, 1, 20)
	if err != nil {
		return s.reject(op, err)
	}
	playerID, err := validate.PositiveInt(rawPlayerID)
	if err != nil {
		return s.reject(op, err)
	}
	points, err := validate.PositiveInt(rawPoints)
	if err != nil {
		return s.reject(op, err)
	}
	tournaments, err := validate.PositiveInt(rawTournaments)
	if err != nil {
		return s.reject(op, err)
	}
	ok, err := s.checker.PlayerExists(ctx, playerID)
	if err != nil {
		return err
	}
	if !ok {
		return s.reject(op, fault.Newf(fault.KindValidation, string(op), "player %d does not exist", playerID))
	}

	if err := s.store.UpdateRankingSlot(ctx, rank, playerID, points, tournaments); err != nil {
		return err
	}
	s.done(op)
	s.publish(pubsub.EventRankingUpdated, pubsub.RankingUpdatedEvent{
		Rank: rank, PlayerID: playerID, Points: points, TournamentsPlayed: tournaments,
	})
	return nil
}

// RecordMatch validates every raw field of a match result, then writes the
// match row and any history update in one transaction. The six stat fields
// are required together for a played match and forbidden for a walkover.
func (s *Service) RecordMatch(ctx context.Context, in RecordMatchInput) error {
	op := query.OpInsertMatchResult
	s.metrics.IncOperation(string(op))

	m, err := s.validateMatch(ctx, in)
	if err != nil {
		return s.reject(op, err)
	}

	year, err := s.store.RecordMatchResult(ctx, *m)
	if err != nil {
		if fault.IsKind(err, fault.KindTransaction) {
			s.metrics.IncTxRolledBack()
		}
		return err
	}
	s.metrics.IncTxCommitted()
	s.done(op)

	a := notifier.MatchAnnouncement{
		TournamentID: m.TournamentID,
		Year:         year,
		Score:        m.Score,
		DurationMins: m.DurationMins,
		WinnerID:     m.WinnerID,
		LoserID:      m.LoserID,
		IsFinal:      m.IsFinal,
	}
	if err := s.notifier.SendMatchRecorded(a, s.dryRun); err != nil {
		log.Error("Failed to announce match", "error", err)
	}
	s.publish(pubsub.EventMatchRecorded, pubsub.MatchRecordedEvent{
		TournamentID: m.TournamentID,
		StartDate:    m.StartDate,
		Score:        m.Score,
		DurationMins: m.DurationMins,
		WinnerID:     m.WinnerID,
		LoserID:      m.LoserID,
		IsFinal:      m.IsFinal,
	})
	return nil
}

// UsageStats returns the persisted per-operation usage counters.
func (s *Service) UsageStats(ctx context.Context) (map[string]int, error) {
	return s.usage.GetAll()
}

// validateMatch runs every rule for a record-match submission and assembles
// the typed result. It touches the store only for existence checks.
func (s *Service) validateMatch(ctx context.Context, in RecordMatchInput) (*MatchResult, error) {
	isFinal, err := validate.YesNo(in.IsFinal)
	if err != nil {
		return nil, err
	}
	tournamentID, err := validate.PositiveInt(in.TournamentID)
	if err != nil {
		return nil, err
	}
	startDate, err := validate.Date(in.StartDate)
	if err != nil {
		return nil, err
	}
	score, err := validate.Score(in.Score)
	if err != nil {
		return nil, err
	}
	duration, err := validate.PositiveInt(in.DurationMins)
	if err != nil {
		return nil, err
	}
	winnerID, err := validate.PositiveInt(in.WinnerID)
	if err != nil {
		return nil, err
	}
	loserID, err := validate.PositiveInt(in.LoserID)
	if err != nil {
		return nil, err
	}
	if winnerID == loserID {
		return nil, fault.Newf(fault.KindValidation, "match", "winner and loser must be different players")
	}
	played, err := validate.YesNo(in.Played)
	if err != nil {
		return nil, err
	}

	ok, err := s.checker.TournamentExists(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fault.Newf(fault.KindValidation, "match", "tournament %d does not exist", tournamentID)
	}
	for _, id := range []int{winnerID, loserID} {
		ok, err := s.checker.PlayerExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fault.Newf(fault.KindValidation, "match", "player %d does not exist", id)
		}
	}

	m := &MatchResult{
		IsFinal:      isFinal,
		TournamentID: tournamentID,
		StartDate:    startDate,
		Score:        score,
		DurationMins: duration,
		WinnerID:     winnerID,
		LoserID:      loserID,
	}
	if played {
		winnerStats, err := matchStats(in.WinnerAces, in.WinnerBPs, in.WinnerDFs)
		if err != nil {
			return nil, err
		}
		loserStats, err := matchStats(in.LoserAces, in.LoserBPs, in.LoserDFs)
		if err != nil {
			return nil, err
		}
		m.WinnerStats = winnerStats
		m.LoserStats = loserStats
	}
	return m, nil
}

// matchStats validates one side's three stat fields together.
func matchStats(rawAces, rawBPs, rawDFs string) (*MatchStats, error) {
	aces, err := validate.PositiveInt(rawAces)
	if err != nil {
		return nil, err
	}
	bps, err := validate.PositiveInt(rawBPs)
	if err != nil {
		return nil, err
	}
	dfs, err := validate.PositiveInt(rawDFs)
	if err != nil {
		return nil, err
	}
	return &MatchStats{Aces: aces, BreakPointsSaved: bps, DoubleFaults: dfs}, nil
}

// playerFieldValue applies the field-specific rule before an update.
func playerFieldValue(field, raw string) (any, error) {
	switch field {
	case "first_name", "last_name":
		return validate.Name(raw)
	case "hand":
		return validate.Hand(raw)
	case "dob":
		return validate.Date(raw)
	case "country":
		return validate.CountryCode(raw)
	case "height":
		return validate.PositiveInt(raw)
	}
	return nil, fault.Newf(fault.KindValidation, "player-field", "%q is not an updatable player field", field)
}

// publish sends a domain event, logging failures instead of surfacing them;
// a committed write never fails because the broker is down.
func (s *Service) publish(event pubsub.EventType, data any) {
	if err := s.pubsub.SendMessage(string(event), data); err != nil {
		log.Error("Failed to publish event", "event", string(event), "error", err)
	}
}
