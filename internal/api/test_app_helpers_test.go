package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wangtaito/workout-project/internal/coach"
	"github.com/wangtaito/workout-project/internal/i18n"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/nutrition"
	"github.com/wangtaito/workout-project/internal/services"
	"github.com/wangtaito/workout-project/internal/store"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type stubDrafter struct {
	draft    string
	err      error
	memberID string
	activity coach.Activity
}

func (stub *stubDrafter) Draft(_ context.Context, userID string, activity coach.Activity) (string, error) {
	stub.memberID = userID
	stub.activity = activity
	return stub.draft, stub.err
}

func newTestApp(t *testing.T, drafter MessageDrafter) *fiber.App {
	t.Helper()

	quiet := log.New(io.Discard, "", 0)
	slot := store.NewMemorySlot()

	table, err := nutrition.BundledTable()
	if err != nil {
		t.Fatalf("load calorie table: %v", err)
	}
	engine := nutrition.NewEngine(table, quiet)

	manager, err := i18n.NewBundledManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}

	workouts := store.NewRegistry(slot, "workoutEvents_%s", store.WithLogger[models.WorkoutEvent](quiet))
	meals := store.NewRegistry(slot, "mealRecords_%s", store.WithLogger[models.MealRecord](quiet))
	messages := store.NewRegistry(slot, "messages_%s", store.WithLogger[models.CoachMessage](quiet))
	videos := store.New(slot, "exerciseVideos",
		store.WithLogger[models.ExerciseVideo](quiet),
		store.WithSeed(services.BundledVideos),
	)

	userService := services.NewUserService(services.NewMemoryUserRepository())
	if err := userService.EnsureDefaultUsers(); err != nil {
		t.Fatalf("seed users: %v", err)
	}

	deps := Dependencies{
		Auth:     services.NewAuthService(services.NewMockCredentials()),
		Users:    userService,
		Workouts: services.NewWorkoutService(workouts, time.UTC),
		Meals:    services.NewMealService(meals, engine),
		Messages: services.NewMessageService(messages),
		Videos:   services.NewVideoService(videos),
		Calories: engine,
		I18n:     manager,
		Logger:   quiet,
	}
	if drafter != nil {
		deps.Drafter = drafter
	}

	app := fiber.New()
	RegisterRoutes(app, NewHandler(testSecretKey, time.UTC, false, deps))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, string(body))
	}
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()
	defer response.Body.Close()

	var value T
	if err := json.NewDecoder(response.Body).Decode(&value); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return value
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	return decodeJSON[map[string]string](t, response)["error"]
}

func loginToken(t *testing.T, app *fiber.App, username string, role string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", credentialsInput{
		Username: username,
		Password: "123",
		Role:     role,
	})
	expectStatus(t, response, fiber.StatusOK)
	payload := decodeJSON[struct {
		Token string `json:"token"`
	}](t, response)
	if payload.Token == "" {
		t.Fatalf("login as %s returned no token", username)
	}
	return payload.Token
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
