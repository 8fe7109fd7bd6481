package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses a date string from MAS or data.gov.sg sources into a time.Time object in UTC.
//
// The sources publish series at different frequencies, so the value may be a full
// timestamp, a day ("2024-01-31"), a month ("2024-01" or "2024 Jan"), a quarter
// ("2024-Q1") or a plain year ("2024").
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	// Quarterly values resolve to the first day of the quarter.
	if t, ok := parseQuarter(value); ok {
		return t, nil
	}

	// List of potential layouts to try
	layouts := []string{
		time.RFC3339,
		time.RFC1123,
		time.RFC1123Z,
		"2006-01-02T15:04:05",
		"2006-01-02",
		"02 Jan 2006",
		"2006-01",
		"2006 Jan",
		"Jan 2006",
		"2006",
	}

	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("error parsing date: %s", value)
}

// parseQuarter parses quarterly values like "2024-Q1" or "2024 Q3".
func parseQuarter(value string) (time.Time, bool) {
	normalized := strings.ToUpper(strings.ReplaceAll(value, " ", "-"))
	parts := strings.SplitN(normalized, "-Q", 2)
	if len(parts) != 2 {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}

	quarter, err := strconv.Atoi(parts[1])
	if err != nil || quarter < 1 || quarter > 4 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC), true
}

// ParseValue parses a numeric cell from MAS statistics into a float64.
// Thousands separators are removed. Returns ok=false for the markers MAS uses
// for missing observations ("na", "n.a.", "-").
func ParseValue(value string) (float64, bool) {
	value = strings.TrimSpace(value)

	switch strings.ToLower(value) {
	case "", "na", "n.a.", "n/a", "-", "*":
		return 0, false
	}

	value = strings.ReplaceAll(value, ",", "")

	// Negative values may be printed in parentheses.
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		value = "-" + value[1:len(value)-1]
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}

	return result, true
}
