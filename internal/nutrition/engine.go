package nutrition

import (
	"fmt"
	"log"

	"github.com/wangtaito/workout-project/internal/models"
)

var portionMultipliers = map[models.Portion]float64{
	models.PortionSmall:    0.5,
	models.PortionModerate: 1,
	models.PortionLarge:    1.5,
}

var proteinKeys = map[models.FoodType]string{
	models.ProteinChicken: "chicken",
	models.ProteinFish:    "fish",
	models.ProteinTofu:    "tofu",
	models.ProteinEgg:     "egg",
	models.ProteinBeef:    "beef",
	models.ProteinPork:    "pork",
}

var starchKeys = map[models.FoodType]string{
	models.StarchRice:            "rice",
	models.StarchNoodles:         "noodles",
	models.StarchPotato:          "potato",
	models.StarchSweetPotato:     "sweetPotato",
	models.StarchWholeWheatBread: "bread",
}

// Estimate is the calorie breakdown of one meal.
type Estimate struct {
	VegetablesCalories float64 `json:"vegetablesCalories"`
	ProteinCalories    float64 `json:"proteinCalories"`
	StarchCalories     float64 `json:"starchCalories"`
	TotalCalories      float64 `json:"totalCalories"`
}

type Engine struct {
	table  Table
	logger *log.Logger
}

func NewEngine(table Table, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{table: table, logger: logger}
}

// PortionMultiplier returns the scale factor for a portion. Unrecognised
// portions count as moderate.
func PortionMultiplier(portion models.Portion) float64 {
	if multiplier, ok := portionMultipliers[portion]; ok {
		return multiplier
	}
	return 1
}

// Estimate never fails: a fault while computing yields an all-zero result,
// which is logged.
func (engine *Engine) Estimate(vegetables [2]models.MealComponent, protein models.MealComponent, starch models.MealComponent) (result Estimate) {
	defer func() {
		if recovered := recover(); recovered != nil {
			engine.logf("calorie estimate failed: %v", recovered)
			result = Estimate{}
		}
	}()

	estimate, err := engine.estimate(vegetables, protein, starch)
	if err != nil {
		engine.logf("calorie estimate failed: %v", err)
		return Estimate{}
	}
	return estimate
}

func (engine *Engine) logf(format string, args ...any) {
	if engine == nil || engine.logger == nil {
		log.Printf(format, args...)
		return
	}
	engine.logger.Printf(format, args...)
}

func (engine *Engine) EstimateMeal(record models.MealRecord) Estimate {
	return engine.Estimate(record.Vegetables, record.Protein, record.Starch)
}

func (engine *Engine) estimate(vegetables [2]models.MealComponent, protein models.MealComponent, starch models.MealComponent) (Estimate, error) {
	if engine == nil || engine.table == nil {
		return Estimate{}, ErrEmptyNutritionData
	}

	var vegetablesCalories float64
	for _, vegetable := range vegetables {
		calories, err := engine.vegetableCalories(vegetable)
		if err != nil {
			return Estimate{}, err
		}
		vegetablesCalories += calories
	}

	proteinCalories, err := engine.componentCalories(CategoryProteins, protein, proteinKeys, fallbackProteinKey)
	if err != nil {
		return Estimate{}, err
	}
	starchCalories, err := engine.componentCalories(CategoryStarches, starch, starchKeys, fallbackStarchKey)
	if err != nil {
		return Estimate{}, err
	}

	return Estimate{
		VegetablesCalories: vegetablesCalories,
		ProteinCalories:    proteinCalories,
		StarchCalories:     starchCalories,
		TotalCalories:      vegetablesCalories + proteinCalories + starchCalories,
	}, nil
}

// Vegetable subtypes share the generic "other" entry.
func (engine *Engine) vegetableCalories(vegetable models.MealComponent) (float64, error) {
	if vegetable.IsNone() {
		return 0, nil
	}
	info, ok := engine.table.Lookup(CategoryVegetables, fallbackVegetableKey)
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrMissingReference, CategoryVegetables, fallbackVegetableKey)
	}
	return info.Calories * PortionMultiplier(vegetable.Portion), nil
}

func (engine *Engine) componentCalories(category string, component models.MealComponent, keys map[models.FoodType]string, fallbackKey string) (float64, error) {
	if component.IsNone() {
		return 0, nil
	}

	info, ok := engine.resolve(category, component.FoodType, keys)
	if !ok {
		info, ok = engine.table.Lookup(category, fallbackKey)
		if !ok {
			return 0, fmt.Errorf("%w: %s.%s", ErrMissingReference, category, fallbackKey)
		}
	}
	return info.Calories * PortionMultiplier(component.Portion), nil
}

func (engine *Engine) resolve(category string, foodType models.FoodType, keys map[models.FoodType]string) (CalorieInfo, bool) {
	if key, ok := keys[foodType]; ok {
		if info, found := engine.table.Lookup(category, key); found {
			return info, true
		}
	}
	return engine.table.Lookup(category, string(foodType))
}
