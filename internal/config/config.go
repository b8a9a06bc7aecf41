package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}
	// Optional env var with a default.
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBPath: getEnv("WTADB_PATH"),
		Admin: RoleDSN{
			URL:       getEnvOr("WTADB_ADMIN_URL", ""),
			AuthToken: getEnvOr("WTADB_ADMIN_TOKEN", ""),
		},
		Reader: RoleDSN{
			URL:       getEnvOr("WTADB_READER_URL", ""),
			AuthToken: getEnvOr("WTADB_READER_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     getEnvOr("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnvOr("SLACK_CHANNEL_ID", ""),
		},
		PubSub: PubSubConfig{
			ProjectID: getEnvOr("GCP_PROJECT", ""),
		},
	}
	return cfg
}
