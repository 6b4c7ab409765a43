package models

import "time"

// TimestampLayout is the ISO-8601 layout used for every stored timestamp,
// UTC with millisecond precision (2006-01-02T15:04:05.000Z).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
