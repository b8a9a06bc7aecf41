// Package format turns store rows into ordered label/value records for the
// interaction surface. Everything here is pure: the same rows always produce
// the same records, and formatting never touches the store.
package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/matchpoint-labs/wtadb/internal/tour"
	"github.com/matchpoint-labs/wtadb/internal/validate"
)

// Field is one labelled value of a record.
type Field struct {
	Label string
	Value string
}

// DisplayRecord is one row of output, fields in display order.
type DisplayRecord []Field

// Result is a formatted answer. Empty reporting is explicit so the surface
// can print "no rows" instead of nothing at all.
type Result struct {
	Records []DisplayRecord
	Empty   bool
}

// String renders the result for a plain-text surface.
func (r Result) String() string {
	if r.Empty {
		return "No matching records."
	}
	var b strings.Builder
	for i, rec := range r.Records {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, f := range rec {
			fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
		}
	}
	return b.String()
}

func result(records []DisplayRecord) Result {
	return Result{Records: records, Empty: len(records) == 0}
}

// Age derives a player's age in whole years at now. A dob that does not
// parse yields -1; dates are validated on the write path, so this only
// surfaces data loaded out of band.
func Age(dob string, now time.Time) int {
	born, err := time.Parse(validate.DateLayout, dob)
	if err != nil {
		return -1
	}
	age := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		age--
	}
	return age
}

// ageField renders an age, showing "?" rather than a wrong number for an
// unparseable dob.
func ageField(dob string, now time.Time) Field {
	if age := Age(dob, now); age >= 0 {
		return Field{Label: "Age", Value: fmt.Sprintf("%d", age)}
	}
	return Field{Label: "Age", Value: "?"}
}

// TournamentWinners formats the past-champions listing.
func TournamentWinners(wins []tour.TournamentWin) Result {
	records := make([]DisplayRecord, 0, len(wins))
	for _, w := range wins {
		records = append(records, DisplayRecord{
			{Label: "Year", Value: fmt.Sprintf("%d", w.Year)},
			{Label: "Champion", Value: w.FirstName + " " + w.LastName},
		})
	}
	return result(records)
}

// TopRanked formats the top-20 listing with ages derived at now.
func TopRanked(players []tour.RankedPlayer, now time.Time) Result {
	records := make([]DisplayRecord, 0, len(players))
	for _, p := range players {
		records = append(records, DisplayRecord{
			{Label: "Rank", Value: fmt.Sprintf("%d", p.Rank)},
			{Label: "Player", Value: p.FirstName + " " + p.LastName},
			ageField(p.DOB, now),
		})
	}
	return result(records)
}

// UnrankedPlayers formats the outside-the-rankings listing, youngest first.
func UnrankedPlayers(players []tour.AgedPlayer, now time.Time) Result {
	records := make([]DisplayRecord, 0, len(players))
	for _, p := range players {
		records = append(records, DisplayRecord{
			{Label: "Player", Value: p.FirstName + " " + p.LastName},
			ageField(p.DOB, now),
		})
	}
	return result(records)
}

// SurfaceBreakdown formats per-surface match counts.
func SurfaceBreakdown(counts []tour.SurfaceCount) Result {
	records := make([]DisplayRecord, 0, len(counts))
	for _, c := range counts {
		records = append(records, DisplayRecord{
			{Label: "Surface", Value: c.Surface},
			{Label: "Matches", Value: fmt.Sprintf("%d", c.Matches)},
		})
	}
	return result(records)
}

// PlayersByCountry formats the country roster.
func PlayersByCountry(players []tour.PlayerProfile) Result {
	records := make([]DisplayRecord, 0, len(players))
	for _, p := range players {
		records = append(records, DisplayRecord{
			{Label: "Player", Value: p.FirstName + " " + p.LastName},
			{Label: "Hand", Value: p.Hand},
			{Label: "Height", Value: fmt.Sprintf("%d cm", p.Height)},
		})
	}
	return result(records)
}

// UsageStats formats the persisted operation counters, sorted by key so the
// output is stable.
func UsageStats(counts map[string]int) Result {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]DisplayRecord, 0, len(keys))
	for _, k := range keys {
		records = append(records, DisplayRecord{
			{Label: "Operation", Value: k},
			{Label: "Count", Value: fmt.Sprintf("%d", counts[k])},
		})
	}
	return result(records)
}
