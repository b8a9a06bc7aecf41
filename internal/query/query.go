// Package query owns the mapping from logical operation to statement shape.
// Every statement is a fixed template with bound parameters; values are never
// interpolated into SQL text.
package query

import (
	"fmt"
)

// Op names a logical operation supported by the store.
type Op string

const (
	OpTournamentWinners Op = "tournament-winners"
	OpTopRanked         Op = "top-ranked"
	OpUnrankedPlayers   Op = "unranked-players"
	OpSurfaceBreakdown  Op = "surface-breakdown"
	OpPlayersByCountry  Op = "players-by-country"

	OpUpdatePlayerField  Op = "update-player-field"
	OpUpdateRankingSlot  Op = "update-ranking-slot"
	OpInsertMatchResult  Op = "insert-match-result"
	OpUpsertHistory      Op = "upsert-tournament-history"
	OpTournamentYear     Op = "tournament-year"
	OpAuthenticateLookup Op = "authenticate-lookup"
	OpRegisterUser       Op = "register-user"
)

// Statement pairs a parameterized template with its ordered argument list.
type Statement struct {
	SQL  string
	Args []any
}

// Params carries the typed, already-validated values for a single Build call.
// Only the fields the operation needs are read.
type Params struct {
	TournamentName string
	FirstName      string
	LastName       string
	Country        string

	PlayerID int
	Field    string
	Value    any

	Rank              int
	Points            int
	TournamentsPlayed int

	TournamentID   int
	TournamentYear int
	StartDate      string
	Score          string
	DurationMins   int
	WinnerID       int
	LoserID        int
	WinnerAces     *int
	WinnerBPs      *int
	WinnerDFs      *int
	LoserAces      *int
	LoserBPs       *int
	LoserDFs       *int

	UserID       string
	Username     string
	PasswordHash string
	IsAdmin      bool
}

// playerColumns maps the mutable player field names to their columns.
// Exactly these six fields may be updated, one per call.
var playerColumns = map[string]string{
	"first_name": "first_name",
	"last_name":  "last_name",
	"hand":       "hand",
	"dob":        "dob",
	"country":    "country",
	"height":     "height",
}

const (
	sqlTournamentWinners = `
		SELECT h.tournament_year, p.first_name, p.last_name
		FROM tournament t
		JOIN tournament_history h ON t.tournament_id = h.tournament_id
		JOIN player p ON h.winner_id = p.player_id
		WHERE t.tournament_name = ?
		ORDER BY h.tournament_year;`

	sqlTopRanked = `
		SELECT r.rank, p.first_name, p.last_name, p.dob
		FROM ranking r
		JOIN player p ON r.player_id = p.player_id
		ORDER BY r.rank;`

	sqlUnrankedPlayers = `
		SELECT first_name, last_name, dob
		FROM player
		WHERE player_id NOT IN (SELECT player_id FROM ranking)
		ORDER BY dob DESC;`

	sqlSurfaceBreakdown = `
		SELECT t.surface, COUNT(*) AS num_matches
		FROM match_result m
		JOIN tournament t ON m.tournament_id = t.tournament_id
		JOIN player p ON (m.winner_id = p.player_id OR m.loser_id = p.player_id)
		WHERE p.first_name = ? AND p.last_name = ?
		GROUP BY t.surface
		ORDER BY t.surface;`

	sqlPlayersByCountry = `
		SELECT first_name, last_name, hand, height
		FROM player
		WHERE country = ?
		ORDER BY last_name, first_name;`

	sqlUpdateRankingSlot = `
		UPDATE ranking
		SET player_id = ?, player_points = ?, tournaments_played = ?
		WHERE rank = ?;`

	sqlInsertMatchResult = `
		INSERT INTO match_result (
			tournament_id, start_date, score, duration_mins,
			winner_id, loser_id,
			winner_aces, winner_bp_saved, winner_dfs,
			loser_aces, loser_bp_saved, loser_dfs
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	sqlUpsertHistory = `
		INSERT INTO tournament_history (tournament_id, tournament_year, winner_id)
		VALUES (?, ?, ?)
		ON CONFLICT(tournament_id, tournament_year) DO UPDATE SET
			winner_id = excluded.winner_id;`

	sqlTournamentYear = `
		SELECT tournament_year FROM tournament WHERE tournament_id = ?;`

	sqlAuthenticateLookup = `
		SELECT user_id, password_hash, is_admin FROM user_info WHERE username = ?;`

	sqlRegisterUser = `
		INSERT INTO user_info (user_id, username, password_hash, is_admin)
		VALUES (?, ?, ?, ?);`
)

// Build returns the statement for op with p's values bound as arguments.
func Build(op Op, p Params) (Statement, error) {
	switch op {
	case OpTournamentWinners:
		return Statement{SQL: sqlTournamentWinners, Args: []any{p.TournamentName}}, nil
	case OpTopRanked:
		return Statement{SQL: sqlTopRanked}, nil
	case OpUnrankedPlayers:
		return Statement{SQL: sqlUnrankedPlayers}, nil
	case OpSurfaceBreakdown:
		return Statement{SQL: sqlSurfaceBreakdown, Args: []any{p.FirstName, p.LastName}}, nil
	case OpPlayersByCountry:
		return Statement{SQL: sqlPlayersByCountry, Args: []any{p.Country}}, nil

	case OpUpdatePlayerField:
		col, ok := playerColumns[p.Field]
		if !ok {
			return Statement{}, fmt.Errorf("query: %q is not a mutable player field", p.Field)
		}
		// col comes from the fixed map above, never from caller text.
		return Statement{
			SQL:  fmt.Sprintf("UPDATE player SET %s = ? WHERE player_id = ?;", col),
			Args: []any{p.Value, p.PlayerID},
		}, nil
	case OpUpdateRankingSlot:
		return Statement{SQL: sqlUpdateRankingSlot, Args: []any{p.PlayerID, p.Points, p.TournamentsPlayed, p.Rank}}, nil
	case OpInsertMatchResult:
		return Statement{SQL: sqlInsertMatchResult, Args: []any{
			p.TournamentID, p.StartDate, p.Score, p.DurationMins,
			p.WinnerID, p.LoserID,
			intArg(p.WinnerAces), intArg(p.WinnerBPs), intArg(p.WinnerDFs),
			intArg(p.LoserAces), intArg(p.LoserBPs), intArg(p.LoserDFs),
		}}, nil
	case OpUpsertHistory:
		return Statement{SQL: sqlUpsertHistory, Args: []any{p.TournamentID, p.TournamentYear, p.WinnerID}}, nil
	case OpTournamentYear:
		return Statement{SQL: sqlTournamentYear, Args: []any{p.TournamentID}}, nil
	case OpAuthenticateLookup:
		return Statement{SQL: sqlAuthenticateLookup, Args: []any{p.Username}}, nil
	case OpRegisterUser:
		return Statement{SQL: sqlRegisterUser, Args: []any{p.UserID, p.Username, p.PasswordHash, boolArg(p.IsAdmin)}}, nil
	}
	return Statement{}, fmt.Errorf("query: unknown operation %q", op)
}

// MutablePlayerField reports whether field names one of the six updatable
// player columns.
func MutablePlayerField(field string) bool {
	_, ok := playerColumns[field]
	return ok
}

// intArg converts an optional stat to its bind value (NULL when absent).
func intArg(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolArg(b bool) int {
	if b {
		return 1
	}
	return 0
}
