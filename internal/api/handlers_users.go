package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.deps.Users.ListUsers()
	if err != nil {
		handler.deps.Logger.Printf("list users: %v", err)
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

func (handler *Handler) CreateUser(c *fiber.Ctx) error {
	payload := userPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	user, err := handler.deps.Users.CreateUser(payload.Username, payload.Password, payload.Role)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	if current, ok := currentUser(c); ok && current.ID == c.Params("id") {
		return apiError(c, fiber.StatusBadRequest, "cannot delete the signed-in user")
	}
	deleted, err := handler.deps.Users.DeleteUser(c.Params("id"))
	if err != nil {
		handler.deps.Logger.Printf("delete user: %v", err)
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
