package config

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// DateLayout is the date key used across the app
const DateLayout = "2006-01-02"

// AppliesTo reports whether the override's RRule has an occurrence on date.
// The rule is anchored a week before date, so rules without an explicit
// anchor (FREQ=WEEKLY;BYDAY=SA and the like) match on their weekday.
func (o DayOverride) AppliesTo(date time.Time) (bool, error) {
	rule, err := rrule.StrToRRule(o.RRule)
	if err != nil {
		return false, fmt.Errorf("failed to parse rrule %q: %w", o.RRule, err)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	searchStart := day.AddDate(0, 0, -7)
	searchEnd := day.AddDate(0, 0, 1)

	rule.DTStart(searchStart)

	want := day.Format(DateLayout)
	for _, occurrence := range rule.Between(searchStart, searchEnd, true) {
		if occurrence.Format(DateLayout) == want {
			return true, nil
		}
	}
	return false, nil
}

// OverridesFor returns the overrides matching date, in config order
func (c *Config) OverridesFor(date time.Time) ([]DayOverride, error) {
	var matched []DayOverride
	for i, override := range c.Overrides {
		applies, err := override.AppliesTo(date)
		if err != nil {
			return nil, fmt.Errorf("overrides[%d]: %w", i, err)
		}
		if applies {
			matched = append(matched, override)
		}
	}
	return matched, nil
}
