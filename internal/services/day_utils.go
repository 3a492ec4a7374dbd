package services

import (
	"errors"
	"time"
)

// DayLayout is the canonical calendar-day form. All engine date math and
// range comparisons happen on this representation, so ordering is plain
// string comparison and immune to timezone drift.
const DayLayout = "2006-01-02"

var ErrInvalidDay = errors.New("invalid day")

// ParseDay validates a canonical YYYY-MM-DD day string.
func ParseDay(day string) (time.Time, error) {
	parsed, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, ErrInvalidDay
	}
	return parsed, nil
}

// DayOf formats a timestamp as the canonical day in the given location.
func DayOf(value time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return value.In(location).Format(DayLayout)
}

// AddDays shifts a canonical day by a number of calendar days.
func AddDays(day string, days int) (string, error) {
	parsed, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return parsed.AddDate(0, 0, days).Format(DayLayout), nil
}

// DaysBetween returns the signed number of calendar days from one canonical
// day to another.
func DaysBetween(fromDay string, toDay string) (int, error) {
	from, err := ParseDay(fromDay)
	if err != nil {
		return 0, err
	}
	to, err := ParseDay(toDay)
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Hours() / 24), nil
}

// WeekStartOf returns the Monday of the week containing the given day.
func WeekStartOf(day string) (string, error) {
	parsed, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	offset := (int(parsed.Weekday()) + 6) % 7
	return parsed.AddDate(0, 0, -offset).Format(DayLayout), nil
}
