package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListVideos(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"videos": handler.deps.Videos.Search(c.Query("q"), c.Query("category"))})
}

func (handler *Handler) VideoCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": handler.deps.Videos.Categories()})
}
