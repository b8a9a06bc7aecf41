package tour

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the tour data.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// MatchStats holds one player's per-match statistics. The three fields are
// recorded together or not at all.
type MatchStats struct {
	Aces             int
	BreakPointsSaved int
	DoubleFaults     int
}

// MatchResult is one recorded match. WinnerStats and LoserStats are present
// together for a played match and both nil for a walkover or unknown match.
type MatchResult struct {
	IsFinal      bool
	TournamentID int
	StartDate    string
	Score        string
	DurationMins int
	WinnerID     int
	LoserID      int
	WinnerStats  *MatchStats
	LoserStats   *MatchStats
}

// TournamentWin is one past champion of a tournament.
type TournamentWin struct {
	Year      int
	FirstName string
	LastName  string
}

// RankedPlayer is one row of the current top-20 listing.
type RankedPlayer struct {
	Rank      int
	FirstName string
	LastName  string
	DOB       string
}

// AgedPlayer is a player outside the ranking table, ordered youngest first.
type AgedPlayer struct {
	FirstName string
	LastName  string
	DOB       string
}

// SurfaceCount is the number of matches a player contested on one surface.
type SurfaceCount struct {
	Surface string
	Matches int
}

// PlayerProfile is one row of the players-by-country listing.
type PlayerProfile struct {
	FirstName string
	LastName  string
	Hand      string
	Height    int
}

// RecordMatchInput carries the raw field values collected by the interaction
// surface for a record-match operation. Every field passes its validation
// rule before any statement is built.
type RecordMatchInput struct {
	IsFinal      string
	TournamentID string
	StartDate    string
	Score        string
	DurationMins string
	WinnerID     string
	LoserID      string
	// Played selects whether the six stat fields are expected at all.
	Played     string
	WinnerAces string
	WinnerBPs  string
	WinnerDFs  string
	LoserAces  string
	LoserBPs   string
	LoserDFs   string
}
