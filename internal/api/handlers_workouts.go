package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/services"
)

func (handler *Handler) ListWorkouts(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	filter, err := services.ParseWorkoutFilter(c.Query("filter"))
	if err != nil {
		return respondServiceError(c, err)
	}
	workoutType := models.WorkoutType(strings.TrimSpace(c.Query("type")))
	if workoutType != "" && !services.IsKnownWorkoutType(workoutType) {
		return respondServiceError(c, services.ErrInvalidWorkoutType)
	}

	if rawDay := strings.TrimSpace(c.Query("date")); rawDay != "" {
		day, err := services.ParseDay(rawDay, handler.location)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(fiber.Map{"workouts": handler.deps.Workouts.EventsOn(userID, day)})
	}
	return c.JSON(fiber.Map{"workouts": handler.deps.Workouts.ListEvents(userID, filter, workoutType)})
}

func (handler *Handler) CreateWorkout(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	payload := workoutEventPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	date, err := handler.parseEventDate(payload.Date)
	if err != nil {
		return respondServiceError(c, err)
	}

	event, err := handler.deps.Workouts.AddEvent(userID, services.WorkoutEventInput{
		Date:            date,
		Type:            payload.Type,
		DurationMinutes: payload.Duration,
		Notes:           payload.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (handler *Handler) WorkoutCalendar(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	now := handler.now().In(handler.location)
	monthStart, err := services.ParseMonth(c.Query("month"), now, handler.location)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"month": monthStart.Format("2006-01"),
		"days":  handler.deps.Workouts.Calendar(userID, monthStart, now),
	})
}

func (handler *Handler) WorkoutStats(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(handler.deps.Workouts.Stats(userID))
}

func (handler *Handler) ToggleWorkout(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	event, err := handler.deps.Workouts.ToggleCompletion(userID, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(event)
}

func (handler *Handler) DeleteWorkout(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := handler.deps.Workouts.DeleteEvent(userID, c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) GetWorkoutRecord(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	record, err := handler.deps.Workouts.GetWorkoutRecord(userID, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) AddWorkoutRecord(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	payload := workoutRecordPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.deps.Workouts.AddWorkoutRecord(userID, c.Params("id"), services.WorkoutRecordInput{
		WeightKg:        payload.Weight,
		DurationMinutes: payload.Duration,
		HeartRate:       payload.HeartRate,
		Notes:           payload.Notes,
		PhotoRefs:       payload.PhotoURLs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// parseEventDate accepts a calendar day or a full RFC 3339 timestamp.
func (handler *Handler) parseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if day, err := services.ParseDay(raw, handler.location); err == nil {
		return day, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, services.ErrInvalidWorkoutDate
	}
	return parsed, nil
}
