package services

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/store"
)

var (
	ErrInvalidWorkoutType     = errors.New("invalid workout type")
	ErrInvalidWorkoutDuration = errors.New("invalid workout duration")
	ErrInvalidWorkoutDate     = errors.New("invalid workout date")
	ErrInvalidWorkoutRecord   = errors.New("invalid workout record")
	ErrInvalidWorkoutFilter   = errors.New("invalid workout filter")
	ErrWorkoutNotFound        = errors.New("workout not found")
	ErrWorkoutRecordNotFound  = errors.New("workout record not found")
)

const maxWorkoutNotesLength = 2000

type WorkoutFilter string

const (
	WorkoutFilterAll        WorkoutFilter = "all"
	WorkoutFilterCompleted  WorkoutFilter = "completed"
	WorkoutFilterIncomplete WorkoutFilter = "incomplete"
)

func ParseWorkoutFilter(raw string) (WorkoutFilter, error) {
	switch filter := WorkoutFilter(strings.ToLower(strings.TrimSpace(raw))); filter {
	case "", WorkoutFilterAll:
		return WorkoutFilterAll, nil
	case WorkoutFilterCompleted, WorkoutFilterIncomplete:
		return filter, nil
	default:
		return "", ErrInvalidWorkoutFilter
	}
}

// WorkoutEventStores hands out the event collection of one user.
type WorkoutEventStores interface {
	For(userID string) *store.RecordStore[models.WorkoutEvent]
}

type WorkoutEventInput struct {
	Date            time.Time
	Type            models.WorkoutType
	DurationMinutes int
	Notes           string
}

// WorkoutRecordInput is everything a result log carries except the id and
// timestamp, which are assigned when the record is attached.
type WorkoutRecordInput struct {
	WeightKg        float64
	DurationMinutes int
	HeartRate       models.HeartRate
	Notes           string
	PhotoRefs       []string
}

type WorkoutService struct {
	events   WorkoutEventStores
	location *time.Location
	newID    func() string
}

func NewWorkoutService(events WorkoutEventStores, location *time.Location) *WorkoutService {
	if location == nil {
		location = time.UTC
	}
	return &WorkoutService{
		events:   events,
		location: location,
		newID:    uuid.NewString,
	}
}

func IsKnownWorkoutType(workoutType models.WorkoutType) bool {
	switch workoutType {
	case models.WorkoutRunning, models.WorkoutStrength, models.WorkoutSwimming, models.WorkoutYoga, models.WorkoutOther:
		return true
	default:
		return false
	}
}

func (service *WorkoutService) AddEvent(userID string, input WorkoutEventInput) (models.WorkoutEvent, error) {
	if input.Date.IsZero() {
		return models.WorkoutEvent{}, ErrInvalidWorkoutDate
	}
	if !IsKnownWorkoutType(input.Type) {
		return models.WorkoutEvent{}, ErrInvalidWorkoutType
	}
	if input.DurationMinutes < 1 {
		return models.WorkoutEvent{}, ErrInvalidWorkoutDuration
	}

	event := models.WorkoutEvent{
		ID:              service.newID(),
		Date:            input.Date,
		Type:            input.Type,
		DurationMinutes: input.DurationMinutes,
		Notes:           trimNotes(input.Notes),
		Completed:       false,
	}
	service.events.For(userID).Add(event)
	return event, nil
}

func (service *WorkoutService) ToggleCompletion(userID string, eventID string) (models.WorkoutEvent, error) {
	events := service.events.For(userID)
	if !events.Toggle(eventID, func(event *models.WorkoutEvent) *bool { return &event.Completed }) {
		return models.WorkoutEvent{}, ErrWorkoutNotFound
	}
	event, _ := events.Find(eventID)
	return event, nil
}

func (service *WorkoutService) DeleteEvent(userID string, eventID string) error {
	if !service.events.For(userID).Delete(eventID) {
		return ErrWorkoutNotFound
	}
	return nil
}

// AddWorkoutRecord attaches a result log to an event, replacing any earlier
// one. The record gets its own id, distinct from the event's.
func (service *WorkoutService) AddWorkoutRecord(userID string, eventID string, input WorkoutRecordInput) (models.WorkoutRecord, error) {
	if err := validateWorkoutRecord(input); err != nil {
		return models.WorkoutRecord{}, err
	}

	var attached models.WorkoutRecord
	_, ok := service.events.For(userID).Attach(eventID, func(event *models.WorkoutEvent, attachment store.Attachment) {
		attached = models.WorkoutRecord{
			ID:              attachment.ID,
			LoggedAt:        attachment.At,
			WeightKg:        input.WeightKg,
			DurationMinutes: input.DurationMinutes,
			HeartRate:       input.HeartRate,
			Notes:           trimNotes(input.Notes),
			PhotoRefs:       append([]string{}, input.PhotoRefs...),
		}
		record := attached
		event.Record = &record
	})
	if !ok {
		return models.WorkoutRecord{}, ErrWorkoutNotFound
	}
	return attached, nil
}

func (service *WorkoutService) GetWorkoutRecord(userID string, eventID string) (models.WorkoutRecord, error) {
	event, ok := service.events.For(userID).Find(eventID)
	if !ok {
		return models.WorkoutRecord{}, ErrWorkoutNotFound
	}
	if event.Record == nil {
		return models.WorkoutRecord{}, ErrWorkoutRecordNotFound
	}
	return *event.Record, nil
}

// ListEvents filters by completion and optional type, newest first.
func (service *WorkoutService) ListEvents(userID string, filter WorkoutFilter, workoutType models.WorkoutType) []models.WorkoutEvent {
	events := service.events.For(userID).All()
	result := make([]models.WorkoutEvent, 0, len(events))
	for _, event := range events {
		if filter == WorkoutFilterCompleted && !event.Completed {
			continue
		}
		if filter == WorkoutFilterIncomplete && event.Completed {
			continue
		}
		if workoutType != "" && event.Type != workoutType {
			continue
		}
		result = append(result, event)
	}
	slices.SortStableFunc(result, func(left, right models.WorkoutEvent) int {
		return right.Date.Compare(left.Date)
	})
	return result
}

// EventsOn returns the events falling on day in the service's location, in
// stored order.
func (service *WorkoutService) EventsOn(userID string, day time.Time) []models.WorkoutEvent {
	key := DayKey(day, service.location)
	result := make([]models.WorkoutEvent, 0)
	for _, event := range service.events.For(userID).All() {
		if DayKey(event.Date, service.location) == key {
			result = append(result, event)
		}
	}
	return result
}

func (service *WorkoutService) Calendar(userID string, monthStart time.Time, now time.Time) []CalendarDayState {
	return BuildCalendarDayStates(monthStart, service.events.For(userID).All(), now, service.location)
}

func (service *WorkoutService) Stats(userID string) WorkoutStats {
	return BuildWorkoutStats(service.events.For(userID).All(), service.location)
}

func validateWorkoutRecord(input WorkoutRecordInput) error {
	if input.WeightKg < 0 || input.DurationMinutes < 0 {
		return ErrInvalidWorkoutRecord
	}
	rate := input.HeartRate
	if rate.Min < 0 || rate.Max < 0 || rate.Avg < 0 {
		return ErrInvalidWorkoutRecord
	}
	if rate.Max > 0 && rate.Min > rate.Max {
		return ErrInvalidWorkoutRecord
	}
	return nil
}

func trimNotes(raw string) string {
	notes := strings.TrimSpace(raw)
	if len([]rune(notes)) > maxWorkoutNotesLength {
		notes = string([]rune(notes)[:maxWorkoutNotesLength])
	}
	return notes
}
