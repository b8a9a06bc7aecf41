// Package validate gates every raw field value before it may reach the query
// layer. Rules either return the typed value or a classified validation error;
// re-prompting on failure is the caller's concern.
package validate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/matchpoint-labs/wtadb/internal/fault"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

// Date checks that raw parses as a YYYY-MM-DD calendar date and returns it
// in canonical form. Invalid strings are rejected, never coerced.
func Date(raw string) (string, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", fault.Newf(fault.KindValidation, "date", "%q is not a valid YYYY-MM-DD date", raw)
	}
	return t.Format(DateLayout), nil
}

// PositiveInt checks that raw is a digits-only string and returns its value.
func PositiveInt(raw string) (int, error) {
	if raw == "" || !digitsOnly(raw) {
		return 0, fault.Newf(fault.KindValidation, "integer", "%q is not a non-negative integer", raw)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fault.Newf(fault.KindValidation, "integer", "%q is not a non-negative integer", raw)
	}
	return n, nil
}

// IntInRange checks that raw is an integer within [lo, hi].
func IntInRange(raw string, lo, hi int) (int, error) {
	n, err := PositiveInt(raw)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fault.Newf(fault.KindValidation, "range", "%d is outside [%d, %d]", n, lo, hi)
	}
	return n, nil
}

// CountryCode checks that raw is a 3-character code that is not purely
// numeric, and returns it uppercased.
func CountryCode(raw string) (string, error) {
	if len(raw) != 3 || digitsOnly(raw) {
		return "", fault.Newf(fault.KindValidation, "country", "%q is not a 3-letter country code", raw)
	}
	return strings.ToUpper(raw), nil
}

// Hand checks the dominant-hand enum and returns "L" or "R".
func Hand(raw string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "L":
		return "L", nil
	case "R":
		return "R", nil
	}
	return "", fault.Newf(fault.KindValidation, "hand", "%q is not one of L, R", raw)
}

// Surface checks the court-surface enum.
func Surface(raw string) (string, error) {
	switch s := strings.ToLower(strings.TrimSpace(raw)); s {
	case "hard", "clay", "grass", "carpet":
		return s, nil
	}
	return "", fault.Newf(fault.KindValidation, "surface", "%q is not one of hard, clay, grass, carpet", raw)
}

// YesNo maps a yes/no answer to a bool. Accepts any case and leading-letter
// shorthand ("y", "n").
func YesNo(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fault.Newf(fault.KindValidation, "yes-no", "%q is not one of yes, no", raw)
}

// Name checks that a name field is non-empty after trimming.
func Name(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fault.Newf(fault.KindValidation, "name", "name must not be empty")
	}
	return s, nil
}

// Score checks that a match score is non-empty and not purely numeric
// (e.g. "6-4, 7-6(3)" or "WALKOVER").
func Score(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" || digitsOnly(s) {
		return "", fault.Newf(fault.KindValidation, "score", "%q is not a valid match score", raw)
	}
	return s, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// lookups is the closed set of existence checks. Identifiers are never taken
// from caller input; only the value is, and it is always bound as a parameter.
var lookups = map[string]string{
	"player":     "SELECT 1 FROM player WHERE player_id = ? LIMIT 1",
	"tournament": "SELECT 1 FROM tournament WHERE tournament_id = ? LIMIT 1",
	"country":    "SELECT 1 FROM player WHERE country = ? LIMIT 1",
}

// Checker performs existence checks against the store. Existence is
// authoritative at validation time only; a concurrent delete between check
// and write is out of scope for a single-session core.
type Checker struct {
	db *sql.DB
}

// NewChecker creates a Checker bound to the session's connection.
func NewChecker(db *sql.DB) *Checker {
	return &Checker{db: db}
}

// Exists reports whether value is present for the named lookup. Unknown
// lookup names are a programming error and fail loudly.
func (c *Checker) Exists(ctx context.Context, lookup string, value any) (bool, error) {
	stmt, ok := lookups[lookup]
	if !ok {
		return false, fmt.Errorf("validate: unknown existence lookup %q", lookup)
	}
	var one int
	err := c.db.QueryRowContext(ctx, stmt, value).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fault.New(fault.KindQuery, "exists:"+lookup, err)
	}
	return true, nil
}

// PlayerExists checks a player id against the player table.
func (c *Checker) PlayerExists(ctx context.Context, playerID int) (bool, error) {
	return c.Exists(ctx, "player", playerID)
}

// TournamentExists checks a tournament id against the tournament table.
func (c *Checker) TournamentExists(ctx context.Context, tournamentID int) (bool, error) {
	return c.Exists(ctx, "tournament", tournamentID)
}

// CountryExists checks that at least one player carries the country code.
func (c *Checker) CountryExists(ctx context.Context, code string) (bool, error) {
	return c.Exists(ctx, "country", code)
}
