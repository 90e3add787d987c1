package services

import (
	"io"
	"log"

	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/store"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newWorkoutRegistry(slot store.Slot) *store.Registry[models.WorkoutEvent] {
	return store.NewRegistry(slot, "workoutEvents_%s", store.WithLogger[models.WorkoutEvent](quietLogger()))
}

func newMealRegistry(slot store.Slot) *store.Registry[models.MealRecord] {
	return store.NewRegistry(slot, "mealRecords_%s", store.WithLogger[models.MealRecord](quietLogger()))
}

func newMessageRegistry(slot store.Slot) *store.Registry[models.CoachMessage] {
	return store.NewRegistry(slot, "messages_%s", store.WithLogger[models.CoachMessage](quietLogger()))
}

func sequentialIDs(prefix string) func() string {
	next := 0
	return func() string {
		next++
		return prefix + string(rune('0'+next))
	}
}
