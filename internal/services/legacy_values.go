package services

import "github.com/wangtaito/workout-project/internal/models"

// LabelResolver maps a display label of an enumeration group back to its
// canonical value.
type LabelResolver interface {
	Canonical(group string, label string) (string, bool)
}

// LegacyNormalizer rewrites records saved with localised enum labels (for
// example "少量" or "跑步") to canonical values. It is meant to run as a
// store after-load hook; unknown values are kept as they are.
type LegacyNormalizer struct {
	labels LabelResolver
}

func NewLegacyNormalizer(labels LabelResolver) *LegacyNormalizer {
	return &LegacyNormalizer{labels: labels}
}

func (normalizer *LegacyNormalizer) NormalizeMeal(record *models.MealRecord) {
	record.MealType = models.MealType(normalizer.canonical("meal_type", string(record.MealType)))
	for index := range record.Vegetables {
		normalizer.normalizeComponent(&record.Vegetables[index], "vegetable")
	}
	normalizer.normalizeComponent(&record.Protein, "protein")
	normalizer.normalizeComponent(&record.Starch, "starch")
	record.Beverage.Type = models.BeverageType(normalizer.canonical("beverage", string(record.Beverage.Type)))
	record.SatietyLevel = models.SatietyLevel(normalizer.canonical("satiety", string(record.SatietyLevel)))
}

func (normalizer *LegacyNormalizer) NormalizeWorkoutEvent(event *models.WorkoutEvent) {
	event.Type = models.WorkoutType(normalizer.canonical("workout_type", string(event.Type)))
}

func (normalizer *LegacyNormalizer) normalizeComponent(component *models.MealComponent, group string) {
	component.FoodType = models.FoodType(normalizer.canonical(group, string(component.FoodType)))
	component.CookingMethod = models.CookingMethod(normalizer.canonical("cooking_method", string(component.CookingMethod)))
	component.Portion = models.Portion(normalizer.canonical("portion", string(component.Portion)))
}

func (normalizer *LegacyNormalizer) canonical(group string, value string) string {
	if normalizer == nil || normalizer.labels == nil || value == "" {
		return value
	}
	if canonical, ok := normalizer.labels.Canonical(group, value); ok {
		return canonical
	}
	return value
}
