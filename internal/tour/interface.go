package tour

import "context"

// Store defines the interface for interacting with the tour data. All values
// it receives are already validated and typed; it owns statement construction
// and execution only.
type Store interface {
	TournamentWinners(ctx context.Context, name string) ([]TournamentWin, error)
	TopRanked(ctx context.Context) ([]RankedPlayer, error)
	UnrankedPlayers(ctx context.Context) ([]AgedPlayer, error)
	SurfaceBreakdown(ctx context.Context, firstName, lastName string) ([]SurfaceCount, error)
	PlayersByCountry(ctx context.Context, country string) ([]PlayerProfile, error)

	UpdatePlayerField(ctx context.Context, playerID int, field string, value any) error
	UpdateRankingSlot(ctx context.Context, rank, playerID, points, tournamentsPlayed int) error
	// RecordMatchResult returns the tournament year written to the history
	// table for a final, and 0 otherwise.
	RecordMatchResult(ctx context.Context, m MatchResult) (int, error)
}
