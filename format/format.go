// Package format renders amounts, dates and show times the way the booking site shows them.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const currencySymbol = "₹"

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

var timeLayouts = []string{
	time.TimeOnly,
	"15:04",
	"15:04:05.000",
}

// Currency rounds half up to whole rupees.
func Currency(amount float64) string {
	if math.IsNaN(amount) {
		return currencySymbol + "NaN"
	}
	rounded := math.Floor(amount + 0.5)
	if rounded == 0 {
		rounded = 0
	}
	return currencySymbol + strconv.FormatFloat(rounded, 'f', 0, 64)
}

// Date turns "2024-01-15" into "Monday, 15 January 2024". Unparseable input
// is returned unchanged.
func Date(value string) string {
	t, ok := parseDate(value)
	if !ok {
		return value
	}
	return t.Format("Monday, 2 January 2006")
}

// Time turns "19:30:00" into "7:30 pm".
func Time(value string) string {
	raw := strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("3:04 pm")
		}
	}
	return value
}

// ParseDate accepts the calendar layouts used by the site and its admin tables.
func ParseDate(value string) (time.Time, bool) {
	return parseDate(value)
}

func parseDate(value string) (time.Time, bool) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	for _, layout := range []string{"Jan 2, 2006", "January 2, 2006", "2 Jan 2006", "2 January 2006", "Monday, 2 January 2006", "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
