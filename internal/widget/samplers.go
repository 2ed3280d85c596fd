package widget

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/friday/internal/calendar"
)

var (
	// ErrUnknownWeekday means the target is not a weekday name in the match
	// locale.
	ErrUnknownWeekday = errors.New("widget: unknown weekday")

	// ErrAmbiguousWeekday means the target's prefix matches more than one
	// weekday name.
	ErrAmbiguousWeekday = errors.New("widget: ambiguous weekday prefix")
)

// DefaultPrefixLen is how many leading characters of the weekday name are
// compared.
const DefaultPrefixLen = 3

// DayMatch reports whether an instant falls on the target weekday by
// comparing the leading characters of the rendered weekday name.
type DayMatch struct {
	weekday *calendar.Formatter
	prefix  string
}

// NewDayMatch builds a DayMatch for target, rendered through weekday (a
// StyleWeekday formatter). prefixLen <= 0 selects DefaultPrefixLen.
func NewDayMatch(weekday *calendar.Formatter, target string, prefixLen int) (*DayMatch, error) {
	if prefixLen <= 0 {
		prefixLen = DefaultPrefixLen
	}
	prefix := leading(norm.NFC.String(target), prefixLen)

	var hits int
	var known bool
	for _, name := range weekday.Weekdays() {
		name = norm.NFC.String(name)
		if name == norm.NFC.String(target) {
			known = true
		}
		if strings.HasPrefix(name, prefix) {
			hits++
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknownWeekday, target, weekday.Locale())
	}
	if hits > 1 {
		return nil, fmt.Errorf("%w: %q matches %d weekdays", ErrAmbiguousWeekday, prefix, hits)
	}
	return &DayMatch{weekday: weekday, prefix: prefix}, nil
}

// Sample implements gate.Sampler.
func (d *DayMatch) Sample(t time.Time) (bool, error) {
	return strings.HasPrefix(norm.NFC.String(d.weekday.Format(t)), d.prefix), nil
}

// Prefix returns the compared prefix.
func (d *DayMatch) Prefix() string {
	return d.prefix
}

// leading returns the first n runes of s.
func leading(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Text renders an instant through a formatter. DateText and TimeText are
// both Text values.
type Text struct {
	f *calendar.Formatter
}

// NewText wraps f.
func NewText(f *calendar.Formatter) *Text {
	return &Text{f: f}
}

// Sample implements gate.Sampler.
func (x *Text) Sample(t time.Time) (string, error) {
	return x.f.Format(t), nil
}
