package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchRecorded  EventType = "match-recorded"
	EventRankingUpdated EventType = "ranking-updated"
	EventPlayerUpdated  EventType = "player-updated"
	EventUserRegistered EventType = "user-registered"
)

// RankingUpdatedEvent is the payload published after a ranking slot change.
type RankingUpdatedEvent struct {
	Rank              int `msgpack:"rank"`
	PlayerID          int `msgpack:"player_id"`
	Points            int `msgpack:"points"`
	TournamentsPlayed int `msgpack:"tournaments_played"`
}

// PlayerUpdatedEvent is the payload published after a player field change.
type PlayerUpdatedEvent struct {
	PlayerID int    `msgpack:"player_id"`
	Field    string `msgpack:"field"`
}

// UserRegisteredEvent is the payload published after a first-time login
// creates an account.
type UserRegisteredEvent struct {
	UserID   string `msgpack:"user_id"`
	Username string `msgpack:"username"`
}

// MatchRecordedEvent is the payload published after a committed match write.
type MatchRecordedEvent struct {
	TournamentID int    `msgpack:"tournament_id"`
	StartDate    string `msgpack:"start_date"`
	Score        string `msgpack:"score"`
	DurationMins int    `msgpack:"duration_mins"`
	WinnerID     int    `msgpack:"winner_id"`
	LoserID      int    `msgpack:"loser_id"`
	IsFinal      bool   `msgpack:"is_final"`
}
