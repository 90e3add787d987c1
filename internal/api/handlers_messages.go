package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wangtaito/workout-project/internal/coach"
	"github.com/wangtaito/workout-project/internal/services"
)

func (handler *Handler) ListMessages(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"messages": handler.deps.Messages.ListMessages(userID),
		"unread":   handler.deps.Messages.UnreadCount(userID),
	})
}

// CreateMessage posts into the thread of ?userId= as the signed-in coach.
func (handler *Handler) CreateMessage(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	author, _ := currentUser(c)
	payload := messagePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	message, err := handler.deps.Messages.PostMessage(userID, author.Username, payload.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

func (handler *Handler) UpdateMessage(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	payload := messagePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	message, err := handler.deps.Messages.EditMessage(userID, c.Params("id"), payload.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(message)
}

func (handler *Handler) DeleteMessage(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := handler.deps.Messages.DeleteMessage(userID, c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) MarkMessageRead(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := handler.deps.Messages.MarkRead(userID, c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// DraftMessage asks the language model for a message summarising a member's
// recent workouts and meals. Nothing is posted.
func (handler *Handler) DraftMessage(c *fiber.Ctx) error {
	if handler.deps.Drafter == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "drafting unavailable")
	}
	payload := draftPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	memberID := strings.TrimSpace(payload.UserID)
	if memberID == "" {
		return apiError(c, fiber.StatusBadRequest, "userId is required")
	}
	if err := handler.requireKnownUser(memberID); err != nil {
		return respondServiceError(c, err)
	}

	activity := coach.Activity{
		Member:   memberID,
		Workouts: handler.deps.Workouts.ListEvents(memberID, services.WorkoutFilterAll, ""),
		MealDays: handler.deps.Meals.Summary(memberID),
	}
	draft, err := handler.deps.Drafter.Draft(c.UserContext(), memberID, activity)
	if err != nil {
		handler.deps.Logger.Printf("draft coach message for %s: %v", memberID, err)
		if errors.Is(err, coach.ErrDraftUnavailable) {
			return apiError(c, fiber.StatusServiceUnavailable, "drafting unavailable")
		}
		return apiError(c, fiber.StatusBadGateway, "failed to draft message")
	}
	return c.JSON(fiber.Map{"draft": draft})
}
