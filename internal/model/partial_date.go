package model

import "fmt"

// PartialDate is a day and month with no year, as found embedded in
// transaction descriptions (e.g. "POS05JAN SHOP"). It must be resolved
// against a reference date before it can become a calendar date.
type PartialDate struct {
	Day   int
	Month int
}

// IsZero reports whether the partial date is unset.
func (p PartialDate) IsZero() bool {
	return p.Day == 0 && p.Month == 0
}

func (p PartialDate) String() string {
	return fmt.Sprintf("--%02d-%02d", p.Month, p.Day)
}
