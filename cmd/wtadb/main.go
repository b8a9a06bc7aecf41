package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	role   string
	dryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "wtadb",
	Short: "A CLI for the women's tour statistics database",
	Long: `A command-line interface for querying and maintaining the women's tour
statistics database: tournaments, match results, rankings and players.

Every command asks for credentials first. Connect with --role admin to run
the mutating commands; the default user role can run every read command and
registers unseen usernames on first login.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&role, "role", "user", "Privilege tier to connect with (admin or user)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Log notifications instead of sending them")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command: %s\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
