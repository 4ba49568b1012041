// Package pattern implements regex rules with named capture fields and
// per-field value converters, plus the priority-ordered tables they are
// evaluated in.
package pattern

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/tally/internal/model"
)

// Fields holds the named captures of a successful match. Values are
// strings unless a converter produced a typed value for that field.
type Fields map[string]any

// String returns the field as a string, or "" if absent or typed.
func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// Decimal returns the field as an exact decimal.
func (f Fields) Decimal(key string) (decimal.Decimal, bool) {
	d, ok := f[key].(decimal.Decimal)
	return d, ok
}

// Time returns the field as a full calendar date.
func (f Fields) Time(key string) (time.Time, bool) {
	t, ok := f[key].(time.Time)
	return t, ok
}

// PartialDate returns the field as a day+month partial date.
func (f Fields) PartialDate(key string) (model.PartialDate, bool) {
	p, ok := f[key].(model.PartialDate)
	return p, ok
}

// Pattern is a compiled regular expression with named capture groups and
// optional per-group converters. Patterns are immutable and safe to
// reuse across goroutines.
type Pattern struct {
	re       *regexp.Regexp
	converts map[string]Convert
}

// MustCompile compiles the expression and binds converters to its named
// groups. It panics on an invalid expression; patterns are declared
// statically, so a failure here is a programming error.
func MustCompile(expr string, converts map[string]Convert) *Pattern {
	return &Pattern{
		re:       regexp.MustCompile(expr),
		converts: converts,
	}
}

// Match evaluates the pattern against text. On success it returns the
// named captures with converters applied. A converter is only invoked
// for a group that captured non-empty text; empty or absent optional
// groups pass through as empty strings. A converter failure disqualifies
// the rule, as if the pattern had not matched.
func (p *Pattern) Match(text string) (Fields, bool) {
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}

	fields := make(Fields)
	for i, name := range p.re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		raw := m[i]
		conv, ok := p.converts[name]
		if !ok || raw == "" {
			fields[name] = raw
			continue
		}
		value, err := conv(raw)
		if err != nil {
			return nil, false
		}
		fields[name] = value
	}

	return fields, true
}
