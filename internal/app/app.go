// Package app assembles storage, record stores and services from a Config.
// The server and the operator CLI share it.
package app

import (
	"fmt"
	"log"

	"github.com/wangtaito/workout-project/internal/config"
	"github.com/wangtaito/workout-project/internal/db"
	"github.com/wangtaito/workout-project/internal/filestore"
	"github.com/wangtaito/workout-project/internal/i18n"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/nutrition"
	"github.com/wangtaito/workout-project/internal/services"
	"github.com/wangtaito/workout-project/internal/store"
)

const (
	WorkoutKeyTemplate = "workoutEvents_%s"
	MealKeyTemplate    = "mealRecords_%s"
	MessageKeyTemplate = "messages_%s"
	VideoKey           = "exerciseVideos"

	// Shared keys written by the single-user client. A user whose own key is
	// still empty starts from these.
	LegacyWorkoutKey = "workoutEvents"
	LegacyMealKey    = "mealRecords"
	LegacyMessageKey = "coachMessages"
)

// Storage is the durable slot backend plus the user directory that goes
// with it. Dir is set only for the file backend.
type Storage struct {
	Slot  store.Slot
	Users services.UserRepository
	Dir   *filestore.Dir
	close func() error
}

func OpenStorage(cfg config.Config) (*Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageSQLite:
		database, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		repos := db.NewRepositories(database)
		return &Storage{
			Slot:  repos.Slots,
			Users: repos.Users,
			close: func() error { return db.Close(database) },
		}, nil
	case config.StorageFile:
		dir, err := filestore.OpenDir(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return &Storage{Slot: dir, Users: services.NewMemoryUserRepository(), Dir: dir}, nil
	case config.StorageMemory:
		return &Storage{Slot: store.NewMemorySlot(), Users: services.NewMemoryUserRepository()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidStorage, cfg.StorageBackend)
	}
}

func (storage *Storage) Close() error {
	if storage == nil || storage.close == nil {
		return nil
	}
	return storage.close()
}

type Stores struct {
	Workouts *store.Registry[models.WorkoutEvent]
	Meals    *store.Registry[models.MealRecord]
	Messages *store.Registry[models.CoachMessage]
	Videos   *store.RecordStore[models.ExerciseVideo]
}

// NewStores opens the record collections on slot. Legacy localised enum
// values are rewritten through labels as records load.
func NewStores(slot store.Slot, labels services.LabelResolver, logger *log.Logger) *Stores {
	normalizer := services.NewLegacyNormalizer(labels)
	return &Stores{
		Workouts: store.NewRegistry(slot, WorkoutKeyTemplate,
			store.WithLogger[models.WorkoutEvent](logger),
			store.WithFallbackKey[models.WorkoutEvent](LegacyWorkoutKey),
			store.WithAfterLoad(normalizer.NormalizeWorkoutEvent),
		),
		Meals: store.NewRegistry(slot, MealKeyTemplate,
			store.WithLogger[models.MealRecord](logger),
			store.WithFallbackKey[models.MealRecord](LegacyMealKey),
			store.WithAfterLoad(normalizer.NormalizeMeal),
		),
		Messages: store.NewRegistry(slot, MessageKeyTemplate,
			store.WithLogger[models.CoachMessage](logger),
			store.WithFallbackKey[models.CoachMessage](LegacyMessageKey),
		),
		Videos: store.New(slot, VideoKey,
			store.WithLogger[models.ExerciseVideo](logger),
			store.WithSeed(services.BundledVideos),
		),
	}
}

// Reload refreshes whichever open store is bound to key.
func (stores *Stores) Reload(key string) bool {
	if key == stores.Videos.Key() {
		stores.Videos.Reload()
		return true
	}
	return stores.Workouts.ReloadKey(key) ||
		stores.Meals.ReloadKey(key) ||
		stores.Messages.ReloadKey(key)
}

type Services struct {
	Calories *nutrition.Engine
	Auth     *services.AuthService
	Session  *services.SessionService
	Users    *services.UserService
	Workouts *services.WorkoutService
	Meals    *services.MealService
	Messages *services.MessageService
	Videos   *services.VideoService
}

// Runtime is everything a process needs once configuration is loaded.
type Runtime struct {
	Config   config.Config
	Storage  *Storage
	Stores   *Stores
	I18n     *i18n.Manager
	Services *Services
	Logger   *log.Logger
}

func Open(cfg config.Config, logger *log.Logger) (*Runtime, error) {
	if logger == nil {
		logger = log.Default()
	}

	manager, err := i18n.NewBundledManager(cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}
	table, err := nutrition.BundledTable()
	if err != nil {
		return nil, fmt.Errorf("calorie table init failed: %w", err)
	}

	storage, err := OpenStorage(cfg)
	if err != nil {
		return nil, err
	}
	users := services.NewUserService(storage.Users)
	if err := users.EnsureDefaultUsers(); err != nil {
		_ = storage.Close()
		return nil, err
	}

	var credentials services.CredentialChecker = services.NewMockCredentials()
	if cfg.AuthMode == config.AuthModeDirectory {
		credentials = services.NewDirectoryCredentials(storage.Users)
	}
	auth := services.NewAuthService(credentials)

	stores := NewStores(storage.Slot, manager, logger)
	engine := nutrition.NewEngine(table, logger)

	return &Runtime{
		Config:  cfg,
		Storage: storage,
		Stores:  stores,
		I18n:    manager,
		Logger:  logger,
		Services: &Services{
			Calories: engine,
			Auth:     auth,
			Session:  services.NewSessionService(auth, storage.Slot),
			Users:    users,
			Workouts: services.NewWorkoutService(stores.Workouts, cfg.Location),
			Meals:    services.NewMealService(stores.Meals, engine),
			Messages: services.NewMessageService(stores.Messages),
			Videos:   services.NewVideoService(stores.Videos),
		},
	}, nil
}

func (runtime *Runtime) Close() error {
	return runtime.Storage.Close()
}
