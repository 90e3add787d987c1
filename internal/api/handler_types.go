package api

import (
	"context"
	"log"
	"time"

	"github.com/wangtaito/workout-project/internal/coach"
	"github.com/wangtaito/workout-project/internal/i18n"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/nutrition"
	"github.com/wangtaito/workout-project/internal/services"
)

const (
	authCookieName      = "coach_auth"
	contextUserKey      = "current_user"
	contextLanguageKey  = "language"
	defaultAuthTokenTTL = 7 * 24 * time.Hour

	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

// CalorieEstimator prices a meal from its three component groups.
type CalorieEstimator interface {
	Estimate(vegetables [2]models.MealComponent, protein models.MealComponent, starch models.MealComponent) nutrition.Estimate
}

// MessageDrafter writes a suggested coach message from a member's activity.
type MessageDrafter interface {
	Draft(ctx context.Context, userID string, activity coach.Activity) (string, error)
}

// Dependencies groups the services the API is built from. Drafter may be nil,
// in which case drafting answers 503.
type Dependencies struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Workouts *services.WorkoutService
	Meals    *services.MealService
	Messages *services.MessageService
	Videos   *services.VideoService
	Calories CalorieEstimator
	Drafter  MessageDrafter
	I18n     *i18n.Manager
	Logger   *log.Logger
}

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	deps         Dependencies
	loginLimiter *attemptLimiter
	now          func() time.Time
}

func NewHandler(secretKey string, location *time.Location, cookieSecure bool, deps Dependencies) *Handler {
	if location == nil {
		location = time.UTC
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Handler{
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
		deps:         deps,
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:          time.Now,
	}
}

type credentialsInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type workoutEventPayload struct {
	Date     string             `json:"date"`
	Type     models.WorkoutType `json:"type"`
	Duration int                `json:"duration"`
	Notes    string             `json:"notes"`
}

type workoutRecordPayload struct {
	Weight    float64          `json:"weight"`
	Duration  int              `json:"duration"`
	HeartRate models.HeartRate `json:"heartRate"`
	Notes     string           `json:"notes"`
	PhotoURLs []string         `json:"photoUrls"`
}

type caloriePayload struct {
	Vegetables [2]models.MealComponent `json:"vegetables"`
	Protein    models.MealComponent    `json:"protein"`
	Starch     models.MealComponent    `json:"starch"`
}

type messagePayload struct {
	Content string `json:"content"`
}

type draftPayload struct {
	UserID string `json:"userId"`
}

type userPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
