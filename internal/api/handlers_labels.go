package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetLabels returns display labels for the stored enum values in the request
// language, grouped by kind (meal_type, protein, ...). ?group= narrows it to
// one kind.
func (handler *Handler) GetLabels(c *fiber.Ctx) error {
	manager := handler.deps.I18n
	if manager == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "labels unavailable")
	}
	language, _ := c.Locals(contextLanguageKey).(string)
	if language == "" {
		language = manager.DefaultLanguage()
	}

	groups := manager.Groups()
	if requested := strings.TrimSpace(c.Query("group")); requested != "" {
		groups = []string{requested}
	}
	labels := make(map[string]map[string]string, len(groups))
	for _, group := range groups {
		values := manager.Labels(language, group)
		if len(values) == 0 {
			continue
		}
		labels[group] = values
	}
	if len(labels) == 0 {
		return apiError(c, fiber.StatusNotFound, "unknown label group")
	}
	return c.JSON(fiber.Map{
		"language":  language,
		"languages": manager.SupportedLanguages(),
		"labels":    labels,
	})
}
