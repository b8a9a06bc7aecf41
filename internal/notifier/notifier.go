// Package notifier decouples the rest of the application from the specific
// notification provider (e.g., Slack).
package notifier

// MatchAnnouncement carries the facts of a freshly recorded match result.
type MatchAnnouncement struct {
	TournamentID int
	Year         int
	Score        string
	DurationMins int
	WinnerID     int
	LoserID      int
	IsFinal      bool
}

// Notifier defines a high-level interface for announcing business events.
type Notifier interface {
	SendMatchRecorded(a MatchAnnouncement, dryRun bool) error
}

// Nop is a Notifier that does nothing. Used when no provider is configured.
type Nop struct{}

func (Nop) SendMatchRecorded(MatchAnnouncement, bool) error { return nil }
