package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/tally/internal/model"
)

// Convert turns a raw captured string into a typed field value.
type Convert func(string) (any, error)

// Date returns a converter that parses a full calendar date with the
// given reference layout (e.g. "02 Jan 2006").
func Date(layout string) Convert {
	return func(value string) (any, error) {
		t, err := time.Parse(layout, strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("failed to parse date %q: %w", value, err)
		}
		return t, nil
	}
}

// Amount parses a statement amount like "1,234.56" into an exact decimal.
// A trailing overdraft marker (" OD") negates the value.
func Amount() Convert {
	return func(value string) (any, error) {
		value = strings.TrimSpace(value)
		overdrawn := false
		if rest, ok := strings.CutSuffix(value, " OD"); ok {
			overdrawn = true
			value = rest
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(value, ",", ""))
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount %q: %w", value, err)
		}
		if overdrawn {
			d = d.Neg()
		}
		return d, nil
	}
}

var monthAbbrevs = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// MonthDayText parses partial dates of the form "05JAN".
func MonthDayText() Convert {
	return func(value string) (any, error) {
		value = strings.TrimSpace(value)
		if len(value) != 5 {
			return nil, fmt.Errorf("malformed partial date %q", value)
		}
		day, err := strconv.Atoi(value[:2])
		if err != nil {
			return nil, fmt.Errorf("malformed partial date %q: %w", value, err)
		}
		month, ok := monthAbbrevs[strings.ToUpper(value[2:])]
		if !ok {
			return nil, fmt.Errorf("unknown month in partial date %q", value)
		}
		return model.PartialDate{Day: day, Month: int(month)}, nil
	}
}

// MonthDayDigits parses partial dates of the form "0501" (DDMM).
func MonthDayDigits() Convert {
	return func(value string) (any, error) {
		value = strings.TrimSpace(value)
		if len(value) != 4 {
			return nil, fmt.Errorf("malformed partial date %q", value)
		}
		day, err := strconv.Atoi(value[:2])
		if err != nil {
			return nil, fmt.Errorf("malformed partial date %q: %w", value, err)
		}
		month, err := strconv.Atoi(value[2:])
		if err != nil {
			return nil, fmt.Errorf("malformed partial date %q: %w", value, err)
		}
		return model.PartialDate{Day: day, Month: month}, nil
	}
}
