package config

// Config holds all configuration for the application.
type Config struct {
	// DBPath is the local database file. Used by both roles when no remote
	// primary is configured.
	DBPath string
	Admin  RoleDSN
	Reader RoleDSN
	Slack  SlackConfig
	PubSub PubSubConfig
}

// RoleDSN holds the remote connection parameters for one privilege tier.
// When URL is empty the role falls back to the local DBPath.
type RoleDSN struct {
	URL       string
	AuthToken string
}

// SlackConfig holds notifier settings. An empty Token disables Slack
// notifications.
type SlackConfig struct {
	Token     string
	ChannelID string
}

// PubSubConfig holds event publishing settings. An empty ProjectID disables
// publishing. Each event type publishes to the topic named after it.
type PubSubConfig struct {
	ProjectID string
}
