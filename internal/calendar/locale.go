package calendar

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// locale holds the names and patterns for one supported language.
type locale struct {
	tag      language.Tag
	weekdays [7]string // indexed by time.Weekday, Sunday first
	months   [12]string
	date     func(l *locale, t time.Time) string
	clock    string // time.Format layout for the full time style
}

func (l *locale) weekday(t time.Time) string { return l.weekdays[t.Weekday()] }
func (l *locale) month(t time.Time) string   { return l.months[t.Month()-1] }

// locales is ordered; the first entry is the fallback.
var locales = []*locale{
	{
		tag:      language.AmericanEnglish,
		weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
		date: func(l *locale, t time.Time) string {
			return fmt.Sprintf("%s, %s %d, %d", l.weekday(t), l.month(t), t.Day(), t.Year())
		},
		clock: "3:04:05 PM MST",
	},
	{
		tag:      language.BritishEnglish,
		weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
		date: func(l *locale, t time.Time) string {
			return fmt.Sprintf("%s %d %s %d", l.weekday(t), t.Day(), l.month(t), t.Year())
		},
		clock: "15:04:05 MST",
	},
	{
		tag:      language.German,
		weekdays: [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember"},
		date: func(l *locale, t time.Time) string {
			return fmt.Sprintf("%s, %d. %s %d", l.weekday(t), t.Day(), l.month(t), t.Year())
		},
		clock: "15:04:05 MST",
	},
	{
		tag:      language.French,
		weekdays: [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		months: [12]string{"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		date: func(l *locale, t time.Time) string {
			return fmt.Sprintf("%s %d %s %d", l.weekday(t), t.Day(), l.month(t), t.Year())
		},
		clock: "15:04:05 MST",
	},
	{
		tag:      language.Spanish,
		weekdays: [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		months: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		date: func(l *locale, t time.Time) string {
			return fmt.Sprintf("%s, %d de %s de %d", l.weekday(t), t.Day(), l.month(t), t.Year())
		},
		clock: "15:04:05 MST",
	},
	{
		tag:      language.Dutch,
		weekdays: [7]string{"zondag", "maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag"},
		months: [12]string{"januari", "februari", "maart", "april", "mei", "juni",
			"juli", "augustus", "september", "oktober", "november", "december"},
		date: func(l *locale, t time.Time) string {
			return fmt.Sprintf("%s %d %s %d", l.weekday(t), t.Day(), l.month(t), t.Year())
		},
		clock: "15:04:05 MST",
	},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// matchLocale picks the closest supported locale. An empty name selects the
// fallback.
func matchLocale(name string) (*locale, error) {
	if name == "" {
		return locales[0], nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, name, err)
	}
	_, idx, _ := matcher.Match(tag)
	return locales[idx], nil
}

// Supported lists the supported locale tags, fallback first.
func Supported() []string {
	out := make([]string, len(locales))
	for i, l := range locales {
		out[i] = l.tag.String()
	}
	return out
}
