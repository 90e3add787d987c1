package models

import (
	"slices"
	"time"
)

type WorkoutType string

const (
	WorkoutRunning  WorkoutType = "running"
	WorkoutStrength WorkoutType = "strength"
	WorkoutSwimming WorkoutType = "swimming"
	WorkoutYoga     WorkoutType = "yoga"
	WorkoutOther    WorkoutType = "other"
)

type HeartRate struct {
	Min int `json:"min"`
	Max int `json:"max"`
	Avg int `json:"avg"`
}

// WorkoutRecord is the result log attached to a WorkoutEvent. It never exists
// on its own.
type WorkoutRecord struct {
	ID              string    `json:"id"`
	LoggedAt        time.Time `json:"date"`
	WeightKg        float64   `json:"weight"`
	DurationMinutes int       `json:"duration"`
	HeartRate       HeartRate `json:"heartRate"`
	Notes           string    `json:"notes"`
	PhotoRefs       []string  `json:"photoUrls"`
}

type WorkoutEvent struct {
	ID              string         `json:"id"`
	Date            time.Time      `json:"date"`
	Type            WorkoutType    `json:"type"`
	DurationMinutes int            `json:"duration"`
	Notes           string         `json:"notes"`
	Completed       bool           `json:"completed"`
	Record          *WorkoutRecord `json:"record,omitempty"`
}

func (event WorkoutEvent) RecordID() string {
	return event.ID
}

// Clone copies the event together with its attached record and photo refs.
func (event WorkoutEvent) Clone() WorkoutEvent {
	if event.Record != nil {
		record := *event.Record
		record.PhotoRefs = slices.Clone(record.PhotoRefs)
		event.Record = &record
	}
	return event
}
