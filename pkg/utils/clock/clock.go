package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the largest value Parse accepts ("24:00")
const MinutesPerDay = 24 * 60

// Parse converts a clock string like "07:30" into minutes since midnight.
// "24:00" is accepted as the end of the day.
func Parse(s string) (int, error) {
	hours, minutes, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}

	h, err := strconv.Atoi(hours)
	if err != nil || len(hours) == 0 || len(hours) > 2 {
		return 0, fmt.Errorf("invalid clock time %q: bad hour", s)
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || len(minutes) != 2 {
		return 0, fmt.Errorf("invalid clock time %q: bad minute", s)
	}

	if h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}

	total := h*60 + m
	if total > MinutesPerDay {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}

	return total, nil
}

// MustParse is Parse for values known to be valid, such as built-in defaults
func MustParse(s string) int {
	minutes, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return minutes
}

// Format renders minutes since midnight as "HH:MM"
func Format(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatRange renders a half-open interval as "HH:MM-HH:MM"
func FormatRange(start, end int) string {
	return Format(start) + "-" + Format(end)
}
