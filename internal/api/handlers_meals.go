package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/services"
)

// EstimateCalories prices an unsaved meal. Missing or "none" components
// count as zero.
func (handler *Handler) EstimateCalories(c *fiber.Ctx) error {
	payload := caloriePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	for index := range payload.Vegetables {
		payload.Vegetables[index] = services.NormalizeMealComponent(payload.Vegetables[index])
	}
	payload.Protein = services.NormalizeMealComponent(payload.Protein)
	payload.Starch = services.NormalizeMealComponent(payload.Starch)

	return c.JSON(handler.deps.Calories.Estimate(payload.Vegetables, payload.Protein, payload.Starch))
}

func (handler *Handler) ListMeals(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"meals": handler.deps.Meals.ListMeals(userID)})
}

func (handler *Handler) MealSummary(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"days": handler.deps.Meals.Summary(userID)})
}

func (handler *Handler) CreateMeal(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	input := models.MealRecord{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	meal, err := handler.deps.Meals.AddMeal(userID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(meal)
}

func (handler *Handler) UpdateMeal(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	input := models.MealRecord{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	meal, err := handler.deps.Meals.EditMeal(userID, c.Params("id"), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(meal)
}

func (handler *Handler) DeleteMeal(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := handler.deps.Meals.DeleteMeal(userID, c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) MealCalories(c *fiber.Ctx) error {
	userID, err := handler.targetUserID(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	estimate, err := handler.deps.Meals.MealCalories(userID, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(estimate)
}
