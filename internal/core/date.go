package core

import (
	"math"
	"strings"
	"time"
)

// NoDate is the ordering key of a receipt date that cannot be parsed. It sorts
// below every real timestamp.
const NoDate int64 = math.MinInt64

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
}

// ParseDate parses a receipt or election date in any of the formats seen in
// exports. Times are interpreted as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateKey returns the ordering key of a date label: Unix milliseconds when it
// parses, NoDate otherwise.
func DateKey(label string) int64 {
	t, ok := ParseDate(label)
	if !ok {
		return NoDate
	}
	return t.UnixMilli()
}
