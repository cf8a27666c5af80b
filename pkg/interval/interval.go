// Package interval parses the human readable watering intervals stored on crops,
// e.g. "2 days", "1 week", "3 HOURS", "1 month".
package interval

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	Hour  = time.Hour
	Day   = 24 * time.Hour
	Week  = 7 * Day
	Month = 30 * Day // fixed approximation, not calendar aware
)

var pattern = regexp.MustCompile(`(?i)^(\d+)\s*(days?|weeks?|hours?|months?)$`)

// Parse returns the duration described by s and true, or (0, false) when s
// does not match <count><optional whitespace><unit>.
func Parse(s string) (time.Duration, bool) {
	m := pattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}

	var unit time.Duration
	switch strings.ToLower(m[2])[0] {
	case 'd':
		unit = Day
	case 'w':
		unit = Week
	case 'h':
		unit = Hour
	case 'm':
		unit = Month
	default:
		return 0, false
	}
	if n > math.MaxInt64/int64(unit) {
		return 0, false
	}
	return time.Duration(n) * unit, true
}

// Millis is d in whole milliseconds.
func Millis(d time.Duration) int64 { return d.Milliseconds() }
