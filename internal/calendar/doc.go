// Package calendar renders instants as locale-appropriate weekday, date and
// time text in a fixed time zone.
//
// Locale selection goes through golang.org/x/text/language matching against
// a small supported set; unsupported locales fall back to en-US. Patterns
// follow the CLDR "full" date style. The full time style uses the zone
// abbreviation instead of the long zone name, which package time does not
// provide.
package calendar
