package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/services"
)

var (
	errUnauthorized = errors.New("unauthorized")
	errAccessDenied = errors.New("access denied")
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func currentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(contextUserKey).(models.User)
	return user, ok
}

func isStaff(user models.User) bool {
	return user.Role == models.RoleTrainer || user.Role == models.RoleAdmin
}

// targetUserID picks whose data a request works on. Members always see their
// own; trainers and admins may name another user from the directory with
// ?userId=.
func (handler *Handler) targetUserID(c *fiber.Ctx) (string, error) {
	user, ok := currentUser(c)
	if !ok {
		return "", errUnauthorized
	}
	requested := strings.TrimSpace(c.Query("userId"))
	if requested == "" || requested == user.ID {
		return user.ID, nil
	}
	if !isStaff(user) {
		return "", errAccessDenied
	}
	if err := handler.requireKnownUser(requested); err != nil {
		return "", err
	}
	return requested, nil
}

func (handler *Handler) requireKnownUser(userID string) error {
	exists, err := handler.deps.Users.Exists(userID)
	if err != nil {
		return err
	}
	if !exists {
		return services.ErrUserNotFound
	}
	return nil
}

// respondServiceError maps service sentinels onto HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errUnauthorized):
		return apiError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, errAccessDenied):
		return apiError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrWorkoutNotFound),
		errors.Is(err, services.ErrWorkoutRecordNotFound),
		errors.Is(err, services.ErrMealNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrCreateUserFailed),
		errors.Is(err, services.ErrDeleteUserFailed),
		errors.Is(err, services.ErrUpdateUserFailed),
		errors.Is(err, services.ErrListUsersFailed),
		errors.Is(err, services.ErrCreateVideoFailed):
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	default:
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
}
