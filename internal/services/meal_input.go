package services

import (
	"errors"
	"strings"

	"github.com/wangtaito/workout-project/internal/models"
)

var (
	ErrInvalidMealDate         = errors.New("invalid meal date")
	ErrInvalidMealTime         = errors.New("invalid meal time")
	ErrInvalidMealType         = errors.New("invalid meal type")
	ErrInvalidMealComponent    = errors.New("invalid meal component")
	ErrInvalidBeverage         = errors.New("invalid beverage")
	ErrInvalidSatietyLevel     = errors.New("invalid satiety level")
	ErrInvalidMealSatisfaction = errors.New("invalid meal satisfaction")
)

const maxMealTextLength = 500

var (
	knownMealTypes = map[models.MealType]bool{
		models.MealBreakfast: true, models.MealLunch: true, models.MealDinner: true, models.MealSnack: true,
	}
	knownPortions = map[models.Portion]bool{
		models.PortionSmall: true, models.PortionModerate: true, models.PortionLarge: true,
	}
	knownCookingMethods = map[models.CookingMethod]bool{
		models.CookingStirFry: true, models.CookingSteamed: true, models.CookingRaw: true,
		models.CookingStewed: true, models.CookingBaked: true, models.CookingFried: true,
	}
	knownVegetables = map[models.FoodType]bool{
		models.VegetableSpinach: true, models.VegetableBroccoli: true, models.VegetableCarrot: true,
		models.VegetableLettuce: true, models.VegetableGreenPepper: true, models.VegetableEggplant: true,
		models.VegetableOther: true,
	}
	knownProteins = map[models.FoodType]bool{
		models.ProteinChicken: true, models.ProteinFish: true, models.ProteinTofu: true, models.ProteinEgg: true,
		models.ProteinBeef: true, models.ProteinPork: true, models.ProteinOther: true,
	}
	knownStarches = map[models.FoodType]bool{
		models.StarchRice: true, models.StarchNoodles: true, models.StarchPotato: true,
		models.StarchSweetPotato: true, models.StarchWholeWheatBread: true, models.StarchOther: true,
	}
	knownBeverages = map[models.BeverageType]bool{
		models.BeverageWater: true, models.BeverageTea: true, models.BeverageCoffee: true,
		models.BeverageJuice: true, models.BeverageDairy: true, models.BeverageOther: true,
	}
	knownSatietyLevels = map[models.SatietyLevel]bool{
		models.SatietyVeryFull: true, models.SatietyModerate: true, models.SatietyStillHungry: true,
	}
)

// NormalizeMealComponent resets the cooking method and portion of an empty
// component so stored "none" entries always look the same.
func NormalizeMealComponent(component models.MealComponent) models.MealComponent {
	if component.IsNone() {
		return models.MealComponent{
			FoodType:      models.FoodNone,
			CookingMethod: models.DefaultCookingMethod,
			Portion:       models.DefaultPortion,
		}
	}
	return component
}

// ValidateMealRecord checks every enumerated field and returns the record with
// text trimmed and empty components normalised. The id is left untouched.
func ValidateMealRecord(record models.MealRecord) (models.MealRecord, error) {
	record.Date = strings.TrimSpace(record.Date)
	if _, err := ParseDay(record.Date, nil); err != nil {
		return models.MealRecord{}, ErrInvalidMealDate
	}
	record.Time = strings.TrimSpace(record.Time)
	if !isValidClock(record.Time) {
		return models.MealRecord{}, ErrInvalidMealTime
	}
	if !knownMealTypes[record.MealType] {
		return models.MealRecord{}, ErrInvalidMealType
	}

	for index := range record.Vegetables {
		component, err := validateComponent(record.Vegetables[index], knownVegetables)
		if err != nil {
			return models.MealRecord{}, err
		}
		record.Vegetables[index] = component
	}
	protein, err := validateComponent(record.Protein, knownProteins)
	if err != nil {
		return models.MealRecord{}, err
	}
	record.Protein = protein
	starch, err := validateComponent(record.Starch, knownStarches)
	if err != nil {
		return models.MealRecord{}, err
	}
	record.Starch = starch

	if !knownBeverages[record.Beverage.Type] {
		return models.MealRecord{}, ErrInvalidBeverage
	}
	record.Beverage.Amount = limitText(record.Beverage.Amount)
	if !knownSatietyLevels[record.SatietyLevel] {
		return models.MealRecord{}, ErrInvalidSatietyLevel
	}
	if record.Satisfaction < models.MinSatisfaction || record.Satisfaction > models.MaxSatisfaction {
		return models.MealRecord{}, ErrInvalidMealSatisfaction
	}

	record.Additionals = limitText(record.Additionals)
	record.Notes = limitText(record.Notes)
	return record, nil
}

func validateComponent(component models.MealComponent, allowed map[models.FoodType]bool) (models.MealComponent, error) {
	if component.IsNone() {
		return NormalizeMealComponent(component), nil
	}
	if !allowed[component.FoodType] {
		return models.MealComponent{}, ErrInvalidMealComponent
	}
	if !knownCookingMethods[component.CookingMethod] || !knownPortions[component.Portion] {
		return models.MealComponent{}, ErrInvalidMealComponent
	}
	return component, nil
}

func limitText(raw string) string {
	value := strings.TrimSpace(raw)
	if len([]rune(value)) > maxMealTextLength {
		value = string([]rune(value)[:maxMealTextLength])
	}
	return value
}
