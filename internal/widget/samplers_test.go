package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/friday/internal/calendar"
)

func weekdayFormatter(t *testing.T, locale string) *calendar.Formatter {
	t.Helper()
	zone, err := calendar.LoadZone("US/Pacific")
	require.NoError(t, err)
	f, err := calendar.NewFormatter(locale, zone, calendar.StyleWeekday)
	require.NoError(t, err)
	return f
}

func TestDayMatch_Friday(t *testing.T) {
	d, err := NewDayMatch(weekdayFormatter(t, "en-US"), "Friday", 0)
	require.NoError(t, err)
	assert.Equal(t, "Fri", d.Prefix())

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"friday morning", pdt(16, 10, 0, 0), true},
		{"friday one second later", pdt(16, 10, 0, 1), true},
		{"friday last second", pdt(16, 23, 59, 59), true},
		{"saturday midnight", pdt(17, 0, 0, 0), false},
		{"thursday", pdt(15, 12, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Sample(tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayMatch_UsesZoneNotUTC(t *testing.T) {
	d, err := NewDayMatch(weekdayFormatter(t, "en-US"), "Friday", 0)
	require.NoError(t, err)

	// Saturday 03:00 UTC is Friday 20:00 in California.
	got, err := d.Sample(time.Date(2026, time.October, 17, 3, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, got)
}

func TestDayMatch_OtherLocale(t *testing.T) {
	d, err := NewDayMatch(weekdayFormatter(t, "de"), "Freitag", 0)
	require.NoError(t, err)

	got, err := d.Sample(pdt(16, 10, 0, 0))
	require.NoError(t, err)
	assert.True(t, got)
}

func TestDayMatch_UnknownWeekday(t *testing.T) {
	_, err := NewDayMatch(weekdayFormatter(t, "en-US"), "Freitag", 0)
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestDayMatch_AmbiguousPrefix(t *testing.T) {
	// "S" matches both Sunday and Saturday.
	_, err := NewDayMatch(weekdayFormatter(t, "en-US"), "Saturday", 1)
	assert.ErrorIs(t, err, ErrAmbiguousWeekday)

	d, err := NewDayMatch(weekdayFormatter(t, "en-US"), "Saturday", 2)
	require.NoError(t, err)
	assert.Equal(t, "Sa", d.Prefix())
}

func TestDayMatch_MultibytePrefix(t *testing.T) {
	// "miércoles" – the accented rune counts as one character.
	d, err := NewDayMatch(weekdayFormatter(t, "es"), "miércoles", 3)
	require.NoError(t, err)
	assert.Equal(t, "mié", d.Prefix())
}

func TestText_Sample(t *testing.T) {
	zone, err := calendar.LoadZone("US/Pacific")
	require.NoError(t, err)
	f, err := calendar.NewFormatter("en-GB", zone, calendar.StyleFullDate)
	require.NoError(t, err)

	got, err := NewText(f).Sample(pdt(16, 10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "Friday 16 October 2026", got)
}

func TestLeading(t *testing.T) {
	assert.Equal(t, "Fri", leading("Friday", 3))
	assert.Equal(t, "Fr", leading("Fr", 3))
	assert.Equal(t, "", leading("", 3))
}
