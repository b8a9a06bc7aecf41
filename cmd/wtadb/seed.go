package main

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/matchpoint-labs/wtadb/internal/config"
	"github.com/matchpoint-labs/wtadb/internal/database"
)

// seedCmd provisions a fresh database: sample tour data plus the first admin
// account. It connects directly instead of logging in, because before it runs
// there is no admin account to log in with.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate a fresh database with sample data and the first admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db, teardown, err := database.Connect(database.RoleAdmin, cfg)
		if err != nil {
			return err
		}
		defer teardown()

		username, password, err := promptCredentials()
		if err != nil {
			return err
		}
		if err := ensureAdmin(db, username, password); err != nil {
			return err
		}
		log.Info("Ensured admin account exists", "username", username)

		if err := seedSampleData(db); err != nil {
			return err
		}
		log.Info("Seeded sample tour data")
		return nil
	},
}

// ensureAdmin creates the named admin account if it does not exist yet.
func ensureAdmin(db *sql.DB, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("the admin account needs a username and a password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := db.Exec(
		"INSERT OR IGNORE INTO user_info (user_id, username, password_hash, is_admin) VALUES (?, ?, ?, 1)",
		uuid.NewString(), username, string(hash)); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	return nil
}

// seedSampleData loads the demo dataset. Every rank slot 1..20 is populated,
// so ranking updates can replace any slot in place on a fresh database.
func seedSampleData(db *sql.DB) error {
	stmts := []string{
		`INSERT OR IGNORE INTO player (player_id, first_name, last_name, hand, dob, country, height) VALUES
			(1, 'Iga', 'Swiatek', 'R', '2001-05-31', 'POL', 176),
			(2, 'Aryna', 'Sabalenka', 'R', '1998-05-05', 'BLR', 182),
			(3, 'Coco', 'Gauff', 'R', '2004-03-13', 'USA', 175),
			(4, 'Elena', 'Rybakina', 'R', '1999-06-17', 'KAZ', 184),
			(5, 'Jessica', 'Pegula', 'R', '1994-02-24', 'USA', 170),
			(6, 'Jasmine', 'Paolini', 'R', '1996-01-04', 'ITA', 163),
			(7, 'Qinwen', 'Zheng', 'R', '2002-10-08', 'CHN', 178),
			(8, 'Emma', 'Navarro', 'R', '2001-05-18', 'USA', 170),
			(9, 'Daria', 'Kasatkina', 'R', '1997-05-07', 'RUS', 170),
			(10, 'Barbora', 'Krejcikova', 'R', '1995-12-18', 'CZE', 178),
			(11, 'Danielle', 'Collins', 'R', '1993-12-13', 'USA', 178),
			(12, 'Jelena', 'Ostapenko', 'R', '1997-06-08', 'LAT', 177),
			(13, 'Anna', 'Kalinskaya', 'R', '1998-12-02', 'RUS', 175),
			(14, 'Madison', 'Keys', 'R', '1995-02-17', 'USA', 178),
			(15, 'Beatriz', 'Haddad Maia', 'L', '1996-05-30', 'BRA', 185),
			(16, 'Liudmila', 'Samsonova', 'R', '1998-11-11', 'RUS', 182),
			(17, 'Marta', 'Kostyuk', 'R', '2002-06-28', 'UKR', 174),
			(18, 'Mirra', 'Andreeva', 'R', '2007-04-29', 'RUS', 171),
			(19, 'Diana', 'Shnaider', 'L', '2004-04-02', 'RUS', 170),
			(20, 'Victoria', 'Azarenka', 'R', '1989-07-31', 'BLR', 183),
			(21, 'Ons', 'Jabeur', 'R', '1994-08-28', 'TUN', 167),
			(22, 'Petra', 'Kvitova', 'L', '1990-03-08', 'CZE', 182),
			(23, 'Marketa', 'Vondrousova', 'L', '1999-06-28', 'CZE', 172),
			(24, 'Naomi', 'Osaka', 'R', '1997-10-16', 'JPN', 180);`,
		`INSERT OR IGNORE INTO tournament (tournament_id, tournament_name, surface, tournament_year) VALUES
			(1, 'Australian Open', 'hard', 2024),
			(2, 'Roland Garros', 'clay', 2024),
			(3, 'Wimbledon', 'grass', 2024),
			(4, 'US Open', 'hard', 2024);`,
		`INSERT OR IGNORE INTO tournament_history (tournament_id, tournament_year, winner_id) VALUES
			(3, 2023, 23),
			(3, 2022, 4),
			(2, 2023, 1);`,
		`INSERT OR IGNORE INTO ranking (rank, player_id, player_points, tournaments_played) VALUES
			(1, 1, 9770, 19),
			(2, 2, 8905, 17),
			(3, 3, 7063, 21),
			(4, 4, 5871, 18),
			(5, 5, 5705, 20),
			(6, 6, 5344, 22),
			(7, 7, 5340, 23),
			(8, 8, 3698, 24),
			(9, 9, 3368, 21),
			(10, 10, 3214, 19),
			(11, 11, 3152, 18),
			(12, 12, 3068, 20),
			(13, 13, 2823, 22),
			(14, 14, 2716, 17),
			(15, 15, 2661, 21),
			(16, 16, 2381, 23),
			(17, 17, 2228, 20),
			(18, 18, 2189, 16),
			(19, 19, 2086, 22),
			(20, 20, 2040, 14);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
	}
	return nil
}
