package services

import (
	"time"

	"github.com/wangtaito/workout-project/internal/models"
)

type CalendarDayState struct {
	Date           time.Time `json:"-"`
	DateString     string    `json:"date"`
	Day            int       `json:"day"`
	InMonth        bool      `json:"inMonth"`
	IsToday        bool      `json:"isToday"`
	EventCount     int       `json:"eventCount"`
	CompletedCount int       `json:"completedCount"`
	TotalMinutes   int       `json:"totalMinutes"`
	HasRecord      bool      `json:"hasRecord"`
}

// BuildCalendarDayStates lays out a Sunday-first grid covering the whole month
// of monthStart, padded with the neighbouring days needed to fill each week.
func BuildCalendarDayStates(monthStart time.Time, events []models.WorkoutEvent, now time.Time, location *time.Location) []CalendarDayState {
	monthStart = DateAtLocation(monthStart, location)
	monthStart = monthStart.AddDate(0, 0, 1-monthStart.Day())
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))

	type dayTotals struct {
		events    int
		completed int
		minutes   int
		record    bool
	}
	totals := make(map[string]dayTotals)
	for _, event := range events {
		key := DayKey(event.Date, location)
		entry := totals[key]
		entry.events++
		entry.minutes += event.DurationMinutes
		if event.Completed {
			entry.completed++
		}
		entry.record = entry.record || event.Record != nil
		totals[key] = entry
	}

	todayKey := DayKey(now, location)

	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayLayout)
		entry := totals[key]
		days = append(days, CalendarDayState{
			Date:           day,
			DateString:     key,
			Day:            day.Day(),
			InMonth:        day.Month() == monthStart.Month(),
			IsToday:        key == todayKey,
			EventCount:     entry.events,
			CompletedCount: entry.completed,
			TotalMinutes:   entry.minutes,
			HasRecord:      entry.record,
		})
	}

	return days
}
