// Package widget answers "is it the target weekday?" for a fixed time zone
// and keeps a date and a time line live.
//
// Three samplers (day match, date text, time text) are each wrapped in a
// gate and joined in that order. The gates' handlers write to four nodes of
// a Document: the primary label and the image follow the day match, the
// secondary label shows the date and the tertiary label the time.
package widget
