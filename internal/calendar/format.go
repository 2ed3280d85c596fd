package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrZoneUnavailable means the named zone could not be loaded, usually
	// because the time zone database is missing or the name is unknown.
	ErrZoneUnavailable = errors.New("time zone unavailable")

	// ErrInvalidLocale means the locale is not a well-formed BCP 47 tag.
	ErrInvalidLocale = errors.New("invalid locale")

	// ErrUnsupportedStyle means the Style value is unknown.
	ErrUnsupportedStyle = errors.New("unsupported format style")
)

// Style selects what a Formatter renders.
type Style int

const (
	// StyleWeekday renders the long weekday name ("Friday").
	StyleWeekday Style = iota + 1

	// StyleFullDate renders the full date ("Friday, October 16, 2026").
	StyleFullDate

	// StyleFullTime renders the time of day with seconds and zone
	// ("10:00:00 AM PDT").
	StyleFullTime
)

func (s Style) String() string {
	switch s {
	case StyleWeekday:
		return "weekday"
	case StyleFullDate:
		return "full-date"
	case StyleFullTime:
		return "full-time"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// LoadZone loads a named IANA zone.
func LoadZone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrZoneUnavailable, name, err)
	}
	return loc, nil
}

// Formatter renders instants in one locale, zone and style. It is immutable
// and safe for concurrent use.
type Formatter struct {
	loc   *locale
	zone  *time.Location
	style Style
}

// NewFormatter creates a Formatter. An empty locale selects en-US.
func NewFormatter(localeName string, zone *time.Location, style Style) (*Formatter, error) {
	if zone == nil {
		return nil, fmt.Errorf("%w: nil location", ErrZoneUnavailable)
	}
	switch style {
	case StyleWeekday, StyleFullDate, StyleFullTime:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedStyle, style)
	}

	l, err := matchLocale(localeName)
	if err != nil {
		return nil, err
	}
	return &Formatter{loc: l, zone: zone, style: style}, nil
}

// Format renders t.
func (f *Formatter) Format(t time.Time) string {
	t = t.In(f.zone)
	switch f.style {
	case StyleWeekday:
		return f.loc.weekday(t)
	case StyleFullDate:
		return f.loc.date(f.loc, t)
	default:
		return t.Format(f.loc.clock)
	}
}

// Locale returns the matched locale tag.
func (f *Formatter) Locale() string {
	return f.loc.tag.String()
}

// Zone returns the formatter's time zone.
func (f *Formatter) Zone() *time.Location {
	return f.zone
}

// Weekdays returns the locale's long weekday names, Sunday first.
func (f *Formatter) Weekdays() []string {
	out := make([]string, len(f.loc.weekdays))
	copy(out, f.loc.weekdays[:])
	return out
}
