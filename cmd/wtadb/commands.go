package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matchpoint-labs/wtadb/internal/format"
	"github.com/matchpoint-labs/wtadb/internal/query"
	"github.com/matchpoint-labs/wtadb/internal/tour"
	"github.com/matchpoint-labs/wtadb/internal/validate"
)

func init() {
	rootCmd.AddCommand(winnersCmd)
	rootCmd.AddCommand(top20Cmd)
	rootCmd.AddCommand(unrankedCmd)
	rootCmd.AddCommand(surfaceCmd)
	rootCmd.AddCommand(countryCmd)
	rootCmd.AddCommand(updatePlayerCmd)
	rootCmd.AddCommand(updateRankingCmd)
	rootCmd.AddCommand(recordMatchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(seedCmd)
}

var winnersCmd = &cobra.Command{
	Use:   "winners <tournament>",
	Short: "List the recent champions of a tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, teardown, err := setup(false)
		if err != nil {
			return err
		}
		defer teardown()

		wins, err := app.svc.TournamentWinners(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(format.TournamentWinners(wins))
		return nil
	},
}

var top20Cmd = &cobra.Command{
	Use:   "top20",
	Short: "List the current top-20, best rank first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, teardown, err := setup(false)
		if err != nil {
			return err
		}
		defer teardown()

		players, err := app.svc.TopRanked(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(format.TopRanked(players, time.Now()))
		return nil
	},
}

var unrankedCmd = &cobra.Command{
	Use:   "unranked",
	Short: "List the players outside the top-20, youngest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, teardown, err := setup(false)
		if err != nil {
			return err
		}
		defer teardown()

		players, err := app.svc.UnrankedPlayers(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(format.UnrankedPlayers(players, time.Now()))
		return nil
	},
}

var surfaceCmd = &cobra.Command{
	Use:   "surface <first> <last>",
	Short: "Count a player's matches per court surface",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, teardown, err := setup(false)
		if err != nil {
			return err
		}
		defer teardown()

		counts, err := app.svc.SurfaceBreakdown(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(format.SurfaceBreakdown(counts))
		return nil
	},
}

var countryCmd = &cobra.Command{
	Use:   "country <code>",
	Short: "List the players representing a 3-letter country code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, teardown, err := setup(false)
		if err != nil {
			return err
		}
		defer teardown()

		players, err := app.svc.PlayersByCountry(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(format.PlayersByCountry(players))
		return nil
	},
}

var updatePlayerCmd = &cobra.Command{
	Use:   "update-player",
	Short: "Change one field of an existing player",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, teardown, err := setup(true)
		if err != nil {
			return err
		}
		defer teardown()

		playerID, err := promptValid("Player id", intRule)
		if err != nil {
			return err
		}
		field, err := promptValid("Field (first_name, last_name, hand, dob, country, height)", func(raw string) error {
			if !query.MutablePlayerField(raw) {
				return fmt.Errorf("%q is not an updatable player field", raw)
			}
			return nil
		})
		if err != nil {
			return err
		}
		value, err := promptValid("New value", fieldRule(field))
		if err != nil {
			return err
		}

		if err := app.svc.UpdatePlayer(context.Background(), playerID, field, value); err != nil {
			return err
		}
		fmt.Println("Player updated.")
		return nil
	},
}

var updateRankingCmd = &cobra.Command{
	Use:   "update-ranking",
	Short: "Replace the occupant of one rank in the top-20",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, teardown, err := setup(true)
		if err != nil {
			return err
		}
		defer teardown()

		rank, err := promptValid("Rank (1-20)", func(raw string) error {
			_, err := validate.IntInRange(raw, 1, 20)
			return err
		})
		if err != nil {
			return err
		}
		playerID, err := promptValid("Player id", intRule)
		if err != nil {
			return err
		}
		points, err := promptValid("Points", intRule)
		if err != nil {
			return err
		}
		tournaments, err := promptValid("Tournaments played", intRule)
		if err != nil {
			return err
		}

		if err := app.svc.UpdateRanking(context.Background(), rank, playerID, points, tournaments); err != nil {
			return err
		}
		fmt.Println("Ranking updated.")
		return nil
	},
}

var recordMatchCmd = &cobra.Command{
	Use:   "record-match",
	Short: "Record a match result, updating tournament history for finals",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, teardown, err := setup(true)
		if err != nil {
			return err
		}
		defer teardown()

		in, err := promptMatch()
		if err != nil {
			return err
		}
		if err := app.svc.RecordMatch(context.Background(), in); err != nil {
			return err
		}
		fmt.Println("Match recorded.")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often each operation has been used",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, teardown, err := setup(false)
		if err != nil {
			return err
		}
		defer teardown()

		counts, err := app.svc.UsageStats(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(format.UsageStats(counts))
		return nil
	},
}

// promptMatch collects every field of a match result, re-prompting per field.
func promptMatch() (tour.RecordMatchInput, error) {
	var in tour.RecordMatchInput
	var err error

	prompts := []struct {
		dst   *string
		label string
		check func(string) error
	}{
		{&in.IsFinal, "Is this a final? (yes/no)", yesNoRule},
		{&in.TournamentID, "Tournament id", intRule},
		{&in.StartDate, "Start date (YYYY-MM-DD)", func(raw string) error {
			_, err := validate.Date(raw)
			return err
		}},
		{&in.Score, "Score", func(raw string) error {
			_, err := validate.Score(raw)
			return err
		}},
		{&in.DurationMins, "Duration in minutes", intRule},
		{&in.WinnerID, "Winner id", intRule},
		{&in.LoserID, "Loser id", intRule},
		{&in.Played, "Was the match played? (yes/no)", yesNoRule},
	}
	for _, p := range prompts {
		if *p.dst, err = promptValid(p.label, p.check); err != nil {
			return in, err
		}
	}

	played, _ := validate.YesNo(in.Played)
	if !played {
		return in, nil
	}
	stats := []struct {
		dst   *string
		label string
	}{
		{&in.WinnerAces, "Winner aces"},
		{&in.WinnerBPs, "Winner break points saved"},
		{&in.WinnerDFs, "Winner double faults"},
		{&in.LoserAces, "Loser aces"},
		{&in.LoserBPs, "Loser break points saved"},
		{&in.LoserDFs, "Loser double faults"},
	}
	for _, p := range stats {
		if *p.dst, err = promptValid(p.label, intRule); err != nil {
			return in, err
		}
	}
	return in, nil
}

func intRule(raw string) error {
	_, err := validate.PositiveInt(raw)
	return err
}

func yesNoRule(raw string) error {
	_, err := validate.YesNo(raw)
	return err
}

// fieldRule returns the validation rule matching one player field.
func fieldRule(field string) func(string) error {
	return func(raw string) error {
		var err error
		switch field {
		case "hand":
			_, err = validate.Hand(raw)
		case "dob":
			_, err = validate.Date(raw)
		case "country":
			_, err = validate.CountryCode(raw)
		case "height":
			_, err = validate.PositiveInt(raw)
		default:
			_, err = validate.Name(raw)
		}
		return err
	}
}
