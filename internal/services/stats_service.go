package services

import (
	"slices"
	"strings"
	"time"

	"github.com/wangtaito/workout-project/internal/models"
)

type DailyWorkoutStat struct {
	Date              string  `json:"date"`
	CompletedMinutes  int     `json:"completedMinutes"`
	IncompleteMinutes int     `json:"incompleteMinutes"`
	TotalMinutes      int     `json:"totalMinutes"`
	WeightKg          float64 `json:"weight"`
	HasWeight         bool    `json:"hasWeight"`
}

type WorkoutStats struct {
	Days               []DailyWorkoutStat `json:"days"`
	MaxDurationMinutes int                `json:"maxDuration"`
	MaxWeightKg        float64            `json:"maxWeight"`
}

// BuildWorkoutStats aggregates minutes per calendar day, split by completion,
// together with the weight of the last recorded event of that day in stored
// order. Days are returned oldest first.
func BuildWorkoutStats(events []models.WorkoutEvent, location *time.Location) WorkoutStats {
	byDay := make(map[string]*DailyWorkoutStat)
	for _, event := range events {
		key := DayKey(event.Date, location)
		stat, ok := byDay[key]
		if !ok {
			stat = &DailyWorkoutStat{Date: key}
			byDay[key] = stat
		}

		if event.Completed {
			stat.CompletedMinutes += event.DurationMinutes
		} else {
			stat.IncompleteMinutes += event.DurationMinutes
		}
		stat.TotalMinutes += event.DurationMinutes

		if event.Record != nil && event.Record.WeightKg > 0 {
			stat.WeightKg = event.Record.WeightKg
			stat.HasWeight = true
		}
	}

	stats := WorkoutStats{Days: make([]DailyWorkoutStat, 0, len(byDay))}
	for _, stat := range byDay {
		stats.Days = append(stats.Days, *stat)
		stats.MaxDurationMinutes = max(stats.MaxDurationMinutes, stat.TotalMinutes)
		if stat.HasWeight {
			stats.MaxWeightKg = max(stats.MaxWeightKg, stat.WeightKg)
		}
	}
	slices.SortFunc(stats.Days, func(left, right DailyWorkoutStat) int {
		return strings.Compare(left.Date, right.Date)
	})
	return stats
}
