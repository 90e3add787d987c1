package services

import (
	"errors"
	"strings"
	"time"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
	clockLayout = "15:04"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidMonth = errors.New("invalid month")
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// DayKey renders the calendar day of value as YYYY-MM-DD in location.
func DayKey(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(dayLayout)
}

func ParseDay(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(dayLayout, strings.TrimSpace(raw), location)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// ParseMonth returns the first day of a YYYY-MM month. An empty value selects
// the month containing now.
func ParseMonth(raw string, now time.Time, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		today := DateAtLocation(now, location)
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, location), nil
	}
	parsed, err := time.ParseInLocation(monthLayout, raw, location)
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return parsed, nil
}

func isValidClock(raw string) bool {
	_, err := time.Parse(clockLayout, raw)
	return err == nil
}
