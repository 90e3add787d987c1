package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wangtaito/workout-project/internal/models"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.LanguageMiddleware)
	api.Get("/labels", handler.GetLabels)

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	staff := handler.RoleRequired(models.RoleTrainer, models.RoleAdmin)

	workouts := api.Group("/workouts", handler.AuthRequired)
	workouts.Get("", handler.ListWorkouts)
	workouts.Post("", handler.CreateWorkout)
	workouts.Get("/calendar", handler.WorkoutCalendar)
	workouts.Get("/stats", handler.WorkoutStats)
	workouts.Post("/:id/toggle", handler.ToggleWorkout)
	workouts.Delete("/:id", handler.DeleteWorkout)
	workouts.Get("/:id/record", handler.GetWorkoutRecord)
	workouts.Post("/:id/record", handler.AddWorkoutRecord)

	calories := api.Group("/calories", handler.AuthRequired)
	calories.Post("/estimate", handler.EstimateCalories)

	meals := api.Group("/meals", handler.AuthRequired)
	meals.Get("", handler.ListMeals)
	meals.Post("", handler.CreateMeal)
	meals.Get("/summary", handler.MealSummary)
	meals.Put("/:id", handler.UpdateMeal)
	meals.Delete("/:id", handler.DeleteMeal)
	meals.Get("/:id/calories", handler.MealCalories)

	messages := api.Group("/messages", handler.AuthRequired)
	messages.Get("", handler.ListMessages)
	messages.Post("", staff, handler.CreateMessage)
	messages.Post("/draft", staff, handler.DraftMessage)
	messages.Put("/:id", staff, handler.UpdateMessage)
	messages.Delete("/:id", staff, handler.DeleteMessage)
	messages.Post("/:id/read", handler.MarkMessageRead)

	videos := api.Group("/videos", handler.AuthRequired)
	videos.Get("", handler.ListVideos)
	videos.Get("/categories", handler.VideoCategories)

	users := api.Group("/users", handler.AuthRequired, handler.RoleRequired(models.RoleAdmin))
	users.Get("", handler.ListUsers)
	users.Post("", handler.CreateUser)
	users.Delete("/:id", handler.DeleteUser)
}
