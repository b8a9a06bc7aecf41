package tour

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matchpoint-labs/wtadb/internal/fault"
	"github.com/matchpoint-labs/wtadb/internal/query"
	"github.com/matchpoint-labs/wtadb/internal/txn"
)

// New creates a new Store backed by the session's connection.
func New(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) TournamentWinners(ctx context.Context, name string) ([]TournamentWin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stmt, err := query.Build(query.OpTournamentWinners, query.Params{TournamentName: name})
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fault.New(fault.KindQuery, string(query.OpTournamentWinners), err)
	}
	defer rows.Close()

	var wins []TournamentWin
	for rows.Next() {
		var w TournamentWin
		if err := rows.Scan(&w.Year, &w.FirstName, &w.LastName); err != nil {
			return nil, fault.New(fault.KindQuery, string(query.OpTournamentWinners), err)
		}
		wins = append(wins, w)
	}
	return wins, rows.Err()
}

func (s *store) TopRanked(ctx context.Context) ([]RankedPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stmt, err := query.Build(query.OpTopRanked, query.Params{})
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, stmt.SQL)
	if err != nil {
		return nil, fault.New(fault.KindQuery, string(query.OpTopRanked), err)
	}
	defer rows.Close()

	var players []RankedPlayer
	for rows.Next() {
		var p RankedPlayer
		if err := rows.Scan(&p.Rank, &p.FirstName, &p.LastName, &p.DOB); err != nil {
			return nil, fault.New(fault.KindQuery, string(query.OpTopRanked), err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) UnrankedPlayers(ctx context.Context) ([]AgedPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stmt, err := query.Build(query.OpUnrankedPlayers, query.Params{})
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, stmt.SQL)
	if err != nil {
		return nil, fault.New(fault.KindQuery, string(query.OpUnrankedPlayers), err)
	}
	defer rows.Close()

	var players []AgedPlayer
	for rows.Next() {
		var p AgedPlayer
		if err := rows.Scan(&p.FirstName, &p.LastName, &p.DOB); err != nil {
			return nil, fault.New(fault.KindQuery, string(query.OpUnrankedPlayers), err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) SurfaceBreakdown(ctx context.Context, firstName, lastName string) ([]SurfaceCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stmt, err := query.Build(query.OpSurfaceBreakdown, query.Params{FirstName: firstName, LastName: lastName})
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fault.New(fault.KindQuery, string(query.OpSurfaceBreakdown), err)
	}
	defer rows.Close()

	var counts []SurfaceCount
	for rows.Next() {
		var c SurfaceCount
		if err := rows.Scan(&c.Surface, &c.Matches); err != nil {
			return nil, fault.New(fault.KindQuery, string(query.OpSurfaceBreakdown), err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (s *store) PlayersByCountry(ctx context.Context, country string) ([]PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stmt, err := query.Build(query.OpPlayersByCountry, query.Params{Country: country})
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fault.New(fault.KindQuery, string(query.OpPlayersByCountry), err)
	}
	defer rows.Close()

	var players []PlayerProfile
	for rows.Next() {
		var p PlayerProfile
		if err := rows.Scan(&p.FirstName, &p.LastName, &p.Hand, &p.Height); err != nil {
			return nil, fault.New(fault.KindQuery, string(query.OpPlayersByCountry), err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// UpdatePlayerField updates exactly one of the six mutable player columns.
func (s *store) UpdatePlayerField(ctx context.Context, playerID int, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmt, err := query.Build(query.OpUpdatePlayerField, query.Params{PlayerID: playerID, Field: field, Value: value})
	if err != nil {
		return fault.New(fault.KindValidation, string(query.OpUpdatePlayerField), err)
	}
	res, err := s.db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return fault.New(fault.KindQuery, string(query.OpUpdatePlayerField), err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.Newf(fault.KindQuery, string(query.OpUpdatePlayerField), "player %d not found", playerID)
	}
	return nil
}

// UpdateRankingSlot replaces the occupant of one rank in place. It never
// inserts a new slot, so rank values 1..20 stay fully populated.
func (s *store) UpdateRankingSlot(ctx context.Context, rank, playerID, points, tournamentsPlayed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmt, err := query.Build(query.OpUpdateRankingSlot, query.Params{
		Rank: rank, PlayerID: playerID, Points: points, TournamentsPlayed: tournamentsPlayed,
	})
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return fault.New(fault.KindQuery, string(query.OpUpdateRankingSlot), err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.Newf(fault.KindQuery, string(query.OpUpdateRankingSlot), "rank %d has no slot", rank)
	}
	return nil
}

// RecordMatchResult inserts the match row and, for a final, upserts the
// tournament-history triple. Both steps share one transaction: if the
// history step fails the match row is rolled back with it.
func (s *store) RecordMatchResult(ctx context.Context, m MatchResult) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var year int
	err := txn.Run(ctx, s.db, "record-match-result", func(tx *sql.Tx) error {
		params := query.Params{
			TournamentID: m.TournamentID,
			StartDate:    m.StartDate,
			Score:        m.Score,
			DurationMins: m.DurationMins,
			WinnerID:     m.WinnerID,
			LoserID:      m.LoserID,
		}
		if m.WinnerStats != nil {
			params.WinnerAces = &m.WinnerStats.Aces
			params.WinnerBPs = &m.WinnerStats.BreakPointsSaved
			params.WinnerDFs = &m.WinnerStats.DoubleFaults
		}
		if m.LoserStats != nil {
			params.LoserAces = &m.LoserStats.Aces
			params.LoserBPs = &m.LoserStats.BreakPointsSaved
			params.LoserDFs = &m.LoserStats.DoubleFaults
		}

		stmt, err := query.Build(query.OpInsertMatchResult, params)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
			return fmt.Errorf("match insert: %w", err)
		}

		if !m.IsFinal {
			return nil
		}

		yearStmt, err := query.Build(query.OpTournamentYear, query.Params{TournamentID: m.TournamentID})
		if err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, yearStmt.SQL, yearStmt.Args...).Scan(&year); err != nil {
			return fmt.Errorf("tournament year lookup: %w", err)
		}

		histStmt, err := query.Build(query.OpUpsertHistory, query.Params{
			TournamentID: m.TournamentID, TournamentYear: year, WinnerID: m.WinnerID,
		})
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, histStmt.SQL, histStmt.Args...); err != nil {
			return fmt.Errorf("history upsert: %w", err)
		}
		log.Debug("Recorded tournament final", "tournament", m.TournamentID, "year", year, "winner", m.WinnerID)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return year, nil
}
