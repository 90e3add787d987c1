package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/nutrition"
	"github.com/wangtaito/workout-project/internal/services"
)

func component(foodType models.FoodType, portion models.Portion) models.MealComponent {
	return models.MealComponent{FoodType: foodType, CookingMethod: models.CookingSteamed, Portion: portion}
}

func testMeal(date string, clock string) models.MealRecord {
	return models.MealRecord{
		Date:     date,
		Time:     clock,
		MealType: models.MealDinner,
		Vegetables: [2]models.MealComponent{
			component(models.VegetableSpinach, models.PortionModerate),
			{FoodType: models.FoodNone},
		},
		Protein:      component(models.ProteinChicken, models.PortionLarge),
		Starch:       component(models.StarchRice, models.PortionSmall),
		Beverage:     models.Beverage{Type: models.BeverageTea, Amount: "one cup"},
		SatietyLevel: models.SatietyVeryFull,
		Satisfaction: 5,
	}
}

func TestEstimateCaloriesEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	token := loginToken(t, app, "user", "user")

	response := doJSON(t, app, http.MethodPost, "/api/calories/estimate", token, caloriePayload{
		Vegetables: [2]models.MealComponent{component(models.VegetableSpinach, models.PortionModerate)},
		Protein:    component(models.ProteinChicken, models.PortionLarge),
		Starch:     component(models.StarchRice, models.PortionSmall),
	})
	expectStatus(t, response, fiber.StatusOK)

	got := decodeJSON[nutrition.Estimate](t, response)
	want := nutrition.Estimate{VegetablesCalories: 50, ProteinCalories: 300, StarchCalories: 65, TotalCalories: 415}
	if got != want {
		t.Fatalf("estimate = %+v, want %+v", got, want)
	}
}

func TestMealEndpointsLifecycle(t *testing.T) {
	app := newTestApp(t, nil)
	token := loginToken(t, app, "user", "user")

	createResponse := doJSON(t, app, http.MethodPost, "/api/meals", token, testMeal("2025-03-10", "12:30"))
	expectStatus(t, createResponse, fiber.StatusCreated)
	meal := decodeJSON[models.MealRecord](t, createResponse)
	if meal.ID == "" {
		t.Fatal("expected a generated meal id")
	}
	if meal.Vegetables[1].CookingMethod != models.CookingStirFry || meal.Vegetables[1].Portion != models.PortionModerate {
		t.Fatalf("expected none vegetable to be normalised, got %+v", meal.Vegetables[1])
	}
	expectStatus(t, doJSON(t, app, http.MethodPost, "/api/meals", token, testMeal("2025-03-10", "19:00")), fiber.StatusCreated)

	listed := decodeJSON[struct {
		Meals []models.MealRecord `json:"meals"`
	}](t, doJSON(t, app, http.MethodGet, "/api/meals", token, nil))
	if len(listed.Meals) != 2 || listed.Meals[0].Time != "19:00" {
		t.Fatalf("expected newest meal first, got %+v", listed.Meals)
	}

	caloriesResponse := doJSON(t, app, http.MethodGet, "/api/meals/"+meal.ID+"/calories", token, nil)
	expectStatus(t, caloriesResponse, fiber.StatusOK)
	if total := decodeJSON[nutrition.Estimate](t, caloriesResponse).TotalCalories; total != 415 {
		t.Fatalf("expected 415 kcal, got %v", total)
	}

	summary := decodeJSON[struct {
		Days []services.MealDay `json:"days"`
	}](t, doJSON(t, app, http.MethodGet, "/api/meals/summary", token, nil))
	if len(summary.Days) != 1 || summary.Days[0].TotalCalories != 830 || len(summary.Days[0].Meals) != 2 {
		t.Fatalf("unexpected summary: %+v", summary.Days)
	}

	edited := testMeal("2025-03-11", "08:00")
	edited.MealType = models.MealBreakfast
	updateResponse := doJSON(t, app, http.MethodPut, "/api/meals/"+meal.ID, token, edited)
	expectStatus(t, updateResponse, fiber.StatusOK)
	if got := decodeJSON[models.MealRecord](t, updateResponse); got.ID != meal.ID || got.MealType != models.MealBreakfast {
		t.Fatalf("unexpected edited meal: %+v", got)
	}

	expectStatus(t, doJSON(t, app, http.MethodDelete, "/api/meals/"+meal.ID, token, nil), fiber.StatusNoContent)
	expectStatus(t, doJSON(t, app, http.MethodDelete, "/api/meals/"+meal.ID, token, nil), fiber.StatusNotFound)
	expectStatus(t, doJSON(t, app, http.MethodGet, "/api/meals/"+meal.ID+"/calories", token, nil), fiber.StatusNotFound)
}

func TestCreateMealRejectsInvalidInput(t *testing.T) {
	app := newTestApp(t, nil)
	token := loginToken(t, app, "user", "user")

	invalid := testMeal("2025-03-10", "12:30")
	invalid.Satisfaction = 9
	response := doJSON(t, app, http.MethodPost, "/api/meals", token, invalid)
	expectStatus(t, response, fiber.StatusBadRequest)
	if message := readAPIError(t, response); message != services.ErrInvalidMealSatisfaction.Error() {
		t.Fatalf("unexpected error %q", message)
	}
}
