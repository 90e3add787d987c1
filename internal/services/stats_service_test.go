package services

import (
	"testing"
	"time"

	"github.com/wangtaito/workout-project/internal/models"
)

func TestBuildWorkoutStatsAggregatesPerDay(t *testing.T) {
	day1 := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	events := []models.WorkoutEvent{
		{ID: "c", Date: day2, DurationMinutes: 60, Completed: true, Record: &models.WorkoutRecord{WeightKg: 70.2}},
		{ID: "a", Date: day1, DurationMinutes: 30, Completed: true, Record: &models.WorkoutRecord{WeightKg: 71}},
		{ID: "b", Date: day1.Add(2 * time.Hour), DurationMinutes: 15, Completed: false},
		{ID: "d", Date: day1.Add(4 * time.Hour), DurationMinutes: 10, Completed: true, Record: &models.WorkoutRecord{WeightKg: 70.8}},
	}

	stats := BuildWorkoutStats(events, time.UTC)
	if len(stats.Days) != 2 {
		t.Fatalf("len(Days) = %d, want 2", len(stats.Days))
	}

	first := stats.Days[0]
	if first.Date != "2025-06-01" || first.CompletedMinutes != 40 || first.IncompleteMinutes != 15 || first.TotalMinutes != 55 {
		t.Fatalf("first day = %+v", first)
	}
	if !first.HasWeight || first.WeightKg != 70.8 {
		t.Fatalf("expected last recorded weight of the day, got %+v", first)
	}
	if stats.MaxDurationMinutes != 60 || stats.MaxWeightKg != 70.8 {
		t.Fatalf("max values = %d / %v", stats.MaxDurationMinutes, stats.MaxWeightKg)
	}
}

func TestBuildWorkoutStatsEmpty(t *testing.T) {
	stats := BuildWorkoutStats(nil, time.UTC)
	if len(stats.Days) != 0 || stats.MaxDurationMinutes != 0 || stats.MaxWeightKg != 0 {
		t.Fatalf("BuildWorkoutStats(nil) = %+v", stats)
	}
}
