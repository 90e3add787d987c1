package services

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/nutrition"
	"github.com/wangtaito/workout-project/internal/store"
)

var ErrMealNotFound = errors.New("meal not found")

type MealRecordStores interface {
	For(userID string) *store.RecordStore[models.MealRecord]
}

type MealCalorieEstimator interface {
	EstimateMeal(record models.MealRecord) nutrition.Estimate
}

type MealWithCalories struct {
	Meal     models.MealRecord  `json:"meal"`
	Calories nutrition.Estimate `json:"calories"`
}

type MealDay struct {
	Date          string             `json:"date"`
	Meals         []MealWithCalories `json:"meals"`
	TotalCalories float64            `json:"totalCalories"`
}

type MealService struct {
	meals     MealRecordStores
	estimator MealCalorieEstimator
	newID     func() string
}

func NewMealService(meals MealRecordStores, estimator MealCalorieEstimator) *MealService {
	return &MealService{
		meals:     meals,
		estimator: estimator,
		newID:     uuid.NewString,
	}
}

func (service *MealService) AddMeal(userID string, input models.MealRecord) (models.MealRecord, error) {
	record, err := ValidateMealRecord(input)
	if err != nil {
		return models.MealRecord{}, err
	}
	record.ID = service.newID()
	service.meals.For(userID).Add(record)
	return record, nil
}

// EditMeal replaces the stored record wholesale, keeping its id.
func (service *MealService) EditMeal(userID string, mealID string, input models.MealRecord) (models.MealRecord, error) {
	record, err := ValidateMealRecord(input)
	if err != nil {
		return models.MealRecord{}, err
	}
	record.ID = mealID
	if !service.meals.For(userID).Replace(mealID, record) {
		return models.MealRecord{}, ErrMealNotFound
	}
	return record, nil
}

func (service *MealService) DeleteMeal(userID string, mealID string) error {
	if !service.meals.For(userID).Delete(mealID) {
		return ErrMealNotFound
	}
	return nil
}

func (service *MealService) FindMeal(userID string, mealID string) (models.MealRecord, error) {
	record, ok := service.meals.For(userID).Find(mealID)
	if !ok {
		return models.MealRecord{}, ErrMealNotFound
	}
	return record, nil
}

// ListMeals returns the user's meals newest first by date, then time.
func (service *MealService) ListMeals(userID string) []models.MealRecord {
	records := service.meals.For(userID).All()
	slices.SortStableFunc(records, compareMealsNewestFirst)
	return records
}

func (service *MealService) MealCalories(userID string, mealID string) (nutrition.Estimate, error) {
	record, err := service.FindMeal(userID, mealID)
	if err != nil {
		return nutrition.Estimate{}, err
	}
	return service.estimator.EstimateMeal(record), nil
}

// Summary groups the user's meals by date, newest day first, with the
// estimate of every meal and the total of each day.
func (service *MealService) Summary(userID string) []MealDay {
	days := make([]MealDay, 0)
	for _, record := range service.ListMeals(userID) {
		estimate := service.estimator.EstimateMeal(record)
		if len(days) == 0 || days[len(days)-1].Date != record.Date {
			days = append(days, MealDay{Date: record.Date, Meals: []MealWithCalories{}})
		}
		current := &days[len(days)-1]
		current.Meals = append(current.Meals, MealWithCalories{Meal: record, Calories: estimate})
		current.TotalCalories += estimate.TotalCalories
	}
	return days
}

func compareMealsNewestFirst(left, right models.MealRecord) int {
	if byDate := strings.Compare(right.Date, left.Date); byDate != 0 {
		return byDate
	}
	return strings.Compare(right.Time, left.Time)
}
