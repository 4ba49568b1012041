package statement

import (
	"time"

	"github.com/example/tally/internal/common"
	"github.com/example/tally/internal/model"
)

// ResolveDate reconstructs a full calendar date from a day+month partial
// using the most recently established reference date. The candidate
// takes the reference year; if that lands after the reference date the
// year is decremented, which handles a December description date read
// against a January posting date. An invalid substitution (day 30 in
// February) falls back to the reference date unchanged.
//
// The heuristic assumes description dates never precede the reference
// date by more than about a year.
func ResolveDate(partial model.PartialDate, ref time.Time) (time.Time, error) {
	if ref.IsZero() {
		return time.Time{}, common.ErrNoReferenceDate
	}

	candidate, ok := dateOf(ref.Year(), partial, ref.Location())
	if !ok {
		return ref, nil
	}
	if candidate.After(ref) {
		candidate, ok = dateOf(ref.Year()-1, partial, ref.Location())
		if !ok {
			return ref, nil
		}
	}
	return candidate, nil
}

// dateOf builds year/partial as a date, reporting false when the
// combination is not a real calendar day. time.Date silently normalizes
// out-of-range values, so the check is against the round trip.
func dateOf(year int, partial model.PartialDate, loc *time.Location) (time.Time, bool) {
	d := time.Date(year, time.Month(partial.Month), partial.Day, 0, 0, 0, 0, loc)
	if d.Day() != partial.Day || int(d.Month()) != partial.Month {
		return time.Time{}, false
	}
	return d, true
}
