package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wangtaito/workout-project/internal/services"
)

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	limiterKey := loginLimiterKey(c, input.Username)
	now := handler.now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	user, err := handler.deps.Auth.Login(input.Username, input.Password, input.Role)
	if err != nil {
		handler.loginLimiter.recordFailure(limiterKey, now)
		if errors.Is(err, services.ErrAuthRoleInvalid) {
			return apiError(c, fiber.StatusBadRequest, "invalid role")
		}
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	handler.loginLimiter.reset(limiterKey)

	token, err := handler.buildToken(user, defaultAuthTokenTTL)
	if err != nil {
		handler.deps.Logger.Printf("sign session token: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.setAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"token": token,
		"user":  services.NewUserView(user),
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"user": services.NewUserView(user)})
}

func loginLimiterKey(c *fiber.Ctx, username string) string {
	return requestLimiterKey(c) + "|" + strings.ToLower(services.NormalizeUsername(username))
}
