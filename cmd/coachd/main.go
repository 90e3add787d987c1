package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/wangtaito/workout-project/internal/api"
	"github.com/wangtaito/workout-project/internal/app"
	"github.com/wangtaito/workout-project/internal/coach"
	"github.com/wangtaito/workout-project/internal/config"
	"github.com/wangtaito/workout-project/internal/filestore"
)

const (
	csrfCookieName = "coach_csrf"
	csrfHeaderName = "X-CSRF-Token"
)

func main() {
	if err := config.LoadEnvFiles(); err != nil {
		log.Fatalf("env file: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	secretKey, err := config.ResolveSecretKey()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	time.Local = cfg.Location

	drafter, err := newDrafter(cfg)
	if err != nil {
		log.Fatalf("coach drafter init failed: %v", err)
	}

	runtime, err := app.Open(cfg, log.Default())
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	server := newServer(cfg, secretKey, runtime, drafter)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	if cfg.WatchSlots {
		startSlotWatcher(lifecycleCtx, runtime)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("coachd listening on http://0.0.0.0:%s (storage: %s, auth: %s, tz: %s)", cfg.Port, cfg.StorageBackend, cfg.AuthMode, cfg.Location.String())
	if err := serve(server, runtime, ":"+cfg.Port); err != nil {
		log.Printf("server exited: %v", err)
		os.Exit(1)
	}
}

// serve blocks until the server stops, then releases storage whether or not
// listening succeeded.
func serve(server *fiber.App, runtime *app.Runtime, address string) error {
	listenErr := server.Listen(address)
	if err := runtime.Close(); err != nil {
		log.Printf("storage close failed: %v", err)
	}
	return listenErr
}

func newServer(cfg config.Config, secretKey string, runtime *app.Runtime, drafter api.MessageDrafter) *fiber.App {
	services := runtime.Services
	handler := api.NewHandler(secretKey, cfg.Location, cfg.CookieSecure, api.Dependencies{
		Auth:     services.Auth,
		Users:    services.Users,
		Workouts: services.Workouts,
		Meals:    services.Meals,
		Messages: services.Messages,
		Videos:   services.Videos,
		Calories: services.Calories,
		Drafter:  drafter,
		I18n:     runtime.I18n,
		Logger:   runtime.Logger,
	})

	server := fiber.New(fiber.Config{
		AppName:               "coachd",
		DisableStartupMessage: true,
	})
	server.Use(recover.New())
	server.Use(logger.New())
	server.Use(compress.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + csrfHeaderName,
	}))
	server.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))

	api.RegisterRoutes(server, handler)
	return server
}

// csrfMiddlewareConfig guards cookie-authenticated requests with a
// double-submit token read from the X-CSRF-Token header.
func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:" + csrfHeaderName,
		CookieName:     csrfCookieName,
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		Next: func(c *fiber.Ctx) bool {
			return !api.RequestUsesCookieSession(c)
		},
	}
}

// newDrafter returns nil when no model key is configured; drafting then
// answers 503.
func newDrafter(cfg config.Config) (api.MessageDrafter, error) {
	if !cfg.DraftingEnabled() {
		return nil, nil
	}
	model, err := coach.NewOpenAIModel(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	if err != nil {
		return nil, err
	}
	return coach.NewDrafter(model), nil
}

func startSlotWatcher(ctx context.Context, runtime *app.Runtime) {
	if runtime.Storage.Dir == nil {
		log.Printf("WATCH_SLOTS ignored: storage backend %s has no slot directory", runtime.Config.StorageBackend)
		return
	}
	watcher, err := filestore.NewWatcher(runtime.Storage.Dir, func(key string) {
		runtime.Stores.Reload(key)
	}, runtime.Logger)
	if err != nil {
		log.Printf("slot watcher disabled: %v", err)
		return
	}
	go watcher.Watch(ctx)
}
