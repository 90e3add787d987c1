package models

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

type Portion string

const (
	PortionSmall    Portion = "small"
	PortionModerate Portion = "moderate"
	PortionLarge    Portion = "large"
)

type CookingMethod string

const (
	CookingStirFry CookingMethod = "stir_fry"
	CookingSteamed CookingMethod = "steamed"
	CookingRaw     CookingMethod = "raw"
	CookingStewed  CookingMethod = "stewed"
	CookingBaked   CookingMethod = "baked"
	CookingFried   CookingMethod = "fried"
)

// FoodType identifies a vegetable, protein or starch choice. FoodNone is shared
// by all three component kinds and always contributes zero calories.
type FoodType string

const FoodNone FoodType = "none"

const (
	VegetableSpinach     FoodType = "spinach"
	VegetableBroccoli    FoodType = "broccoli"
	VegetableCarrot      FoodType = "carrot"
	VegetableLettuce     FoodType = "lettuce"
	VegetableGreenPepper FoodType = "green_pepper"
	VegetableEggplant    FoodType = "eggplant"
	VegetableOther       FoodType = "other"
)

const (
	ProteinChicken FoodType = "chicken"
	ProteinFish    FoodType = "fish"
	ProteinTofu    FoodType = "tofu"
	ProteinEgg     FoodType = "egg"
	ProteinBeef    FoodType = "beef"
	ProteinPork    FoodType = "pork"
	ProteinOther   FoodType = "other"
)

const (
	StarchRice            FoodType = "rice"
	StarchNoodles         FoodType = "noodles"
	StarchPotato          FoodType = "potato"
	StarchSweetPotato     FoodType = "sweet_potato"
	StarchWholeWheatBread FoodType = "whole_wheat_bread"
	StarchOther           FoodType = "other"
)

type BeverageType string

const (
	BeverageWater  BeverageType = "water"
	BeverageTea    BeverageType = "tea"
	BeverageCoffee BeverageType = "coffee"
	BeverageJuice  BeverageType = "juice"
	BeverageDairy  BeverageType = "dairy"
	BeverageOther  BeverageType = "other"
)

type SatietyLevel string

const (
	SatietyVeryFull    SatietyLevel = "very_full"
	SatietyModerate    SatietyLevel = "moderate"
	SatietyStillHungry SatietyLevel = "still_hungry"
)

const (
	DefaultCookingMethod = CookingStirFry
	DefaultPortion       = PortionModerate
	MinSatisfaction      = 1
	MaxSatisfaction      = 5
)

type MealComponent struct {
	FoodType      FoodType      `json:"type"`
	CookingMethod CookingMethod `json:"cookingMethod"`
	Portion       Portion       `json:"portion"`
}

func (component MealComponent) IsNone() bool {
	return component.FoodType == FoodNone || component.FoodType == ""
}

type Beverage struct {
	Type   BeverageType `json:"type"`
	Amount string       `json:"amount"`
}

// MealRecord keeps the JSON layout written by the original browser client so
// previously exported slots decode without conversion.
type MealRecord struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	Time         string           `json:"time"`
	MealType     MealType         `json:"mealType"`
	Vegetables   [2]MealComponent `json:"vegetables"`
	Protein      MealComponent    `json:"protein"`
	Starch       MealComponent    `json:"starch"`
	Additionals  string           `json:"additionals"`
	Beverage     Beverage         `json:"beverage"`
	SatietyLevel SatietyLevel     `json:"satietyLevel"`
	Satisfaction int              `json:"satisfaction"`
	Notes        string           `json:"notes"`
}

func (record MealRecord) RecordID() string {
	return record.ID
}
