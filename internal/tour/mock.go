package tour

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of Store for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	TournamentWinnersFunc func(ctx context.Context, name string) ([]TournamentWin, error)
	TopRankedFunc         func(ctx context.Context) ([]RankedPlayer, error)
	UnrankedPlayersFunc   func(ctx context.Context) ([]AgedPlayer, error)
	SurfaceBreakdownFunc  func(ctx context.Context, firstName, lastName string) ([]SurfaceCount, error)
	PlayersByCountryFunc  func(ctx context.Context, country string) ([]PlayerProfile, error)
	UpdatePlayerFieldFunc func(ctx context.Context, playerID int, field string, value any) error
	UpdateRankingSlotFunc func(ctx context.Context, rank, playerID, points, tournamentsPlayed int) error
	RecordMatchResultFunc func(ctx context.Context, m MatchResult) (int, error)

	// Call records
	TournamentWinnersCalls []string
	SurfaceBreakdownCalls  [][2]string
	PlayersByCountryCalls  []string
	UpdatePlayerFieldCalls []UpdatePlayerFieldCall
	UpdateRankingSlotCalls []UpdateRankingSlotCall
	RecordMatchResultCalls []MatchResult
	TopRankedCount         int
	UnrankedPlayersCount   int
}

// UpdatePlayerFieldCall holds the arguments for a call to UpdatePlayerField.
type UpdatePlayerFieldCall struct {
	PlayerID int
	Field    string
	Value    any
}

// UpdateRankingSlotCall holds the arguments for a call to UpdateRankingSlot.
type UpdateRankingSlotCall struct {
	Rank              int
	PlayerID          int
	Points            int
	TournamentsPlayed int
}

// NewMockStore creates a new mock Store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TournamentWinnersCalls = nil
	m.SurfaceBreakdownCalls = nil
	m.PlayersByCountryCalls = nil
	m.UpdatePlayerFieldCalls = nil
	m.UpdateRankingSlotCalls = nil
	m.RecordMatchResultCalls = nil
	m.TopRankedCount = 0
	m.UnrankedPlayersCount = 0
}

func (m *MockStore) TournamentWinners(ctx context.Context, name string) ([]TournamentWin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TournamentWinnersCalls = append(m.TournamentWinnersCalls, name)
	if m.TournamentWinnersFunc != nil {
		return m.TournamentWinnersFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockStore) TopRanked(ctx context.Context) ([]RankedPlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TopRankedCount++
	if m.TopRankedFunc != nil {
		return m.TopRankedFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) UnrankedPlayers(ctx context.Context) ([]AgedPlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnrankedPlayersCount++
	if m.UnrankedPlayersFunc != nil {
		return m.UnrankedPlayersFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) SurfaceBreakdown(ctx context.Context, firstName, lastName string) ([]SurfaceCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SurfaceBreakdownCalls = append(m.SurfaceBreakdownCalls, [2]string{firstName, lastName})
	if m.SurfaceBreakdownFunc != nil {
		return m.SurfaceBreakdownFunc(ctx, firstName, lastName)
	}
	return nil, nil
}

func (m *MockStore) PlayersByCountry(ctx context.Context, country string) ([]PlayerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayersByCountryCalls = append(m.PlayersByCountryCalls, country)
	if m.PlayersByCountryFunc != nil {
		return m.PlayersByCountryFunc(ctx, country)
	}
	return nil, nil
}

func (m *MockStore) UpdatePlayerField(ctx context.Context, playerID int, field string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatePlayerFieldCalls = append(m.UpdatePlayerFieldCalls, UpdatePlayerFieldCall{PlayerID: playerID, Field: field, Value: value})
	if m.UpdatePlayerFieldFunc != nil {
		return m.UpdatePlayerFieldFunc(ctx, playerID, field, value)
	}
	return nil
}

func (m *MockStore) UpdateRankingSlot(ctx context.Context, rank, playerID, points, tournamentsPlayed int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateRankingSlotCalls = append(m.UpdateRankingSlotCalls, UpdateRankingSlotCall{
		Rank: rank, PlayerID: playerID, Points: points, TournamentsPlayed: tournamentsPlayed,
	})
	if m.UpdateRankingSlotFunc != nil {
		return m.UpdateRankingSlotFunc(ctx, rank, playerID, points, tournamentsPlayed)
	}
	return nil
}

func (m *MockStore) RecordMatchResult(ctx context.Context, mr MatchResult) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordMatchResultCalls = append(m.RecordMatchResultCalls, mr)
	if m.RecordMatchResultFunc != nil {
		return m.RecordMatchResultFunc(ctx, mr)
	}
	return 0, nil
}
