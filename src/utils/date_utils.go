package utils

import (
	"math"
	"strings"
	"time"
)

const DefaultDateFormat = "02-01-2006"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DefaultDateFormat,
	"02/01/2006",
}

// ParseDate parses a stored date in any of the accepted layouts, in UTC.
// The second return is false for empty or unparseable input.
func ParseDate(dateStr string) (time.Time, bool) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DaysBetween is the whole number of days from start to end, rounded to nearest.
func DaysBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// MonthNames are the Spanish month labels used by the monthly series.
var MonthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}
