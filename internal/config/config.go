package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
	StorageMemory = "memory"

	AuthModeMock      = "mock"
	AuthModeDirectory = "directory"

	insecureSecretPlaceholder = "change_me_in_production"
	exampleSecretPlaceholder  = "replace_with_at_least_32_random_characters"
	minSecretKeyLength        = 32
)

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY must not use the placeholder value")
	ErrSecretKeyTooShort    = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	ErrInvalidStorage       = errors.New("invalid STORAGE_BACKEND")
	ErrInvalidAuthMode      = errors.New("invalid AUTH_MODE")
	ErrInvalidPort          = errors.New("invalid PORT")
)

type Config struct {
	Port            string
	Location        *time.Location
	StorageBackend  string
	DBPath          string
	DataDir         string
	WatchSlots      bool
	AuthMode        string
	DefaultLanguage string
	CookieSecure    bool
	CORSOrigins     string
	LLMBaseURL      string
	LLMModel        string
	LLMAPIKey       string
}

// LoadEnvFiles applies KEY=value pairs from the given files (".env" when
// none are named) without overriding variables already set. Missing files are
// skipped.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads the process environment. The secret key is resolved separately
// because only the server needs it.
func Load() (Config, error) {
	cfg := Config{
		Location:        LoadLocation(GetEnv("TZ", "UTC")),
		StorageBackend:  strings.ToLower(GetEnv("STORAGE_BACKEND", StorageSQLite)),
		DBPath:          GetEnv("DB_PATH", filepath.Join("data", "coach.db")),
		DataDir:         GetEnv("DATA_DIR", filepath.Join("data", "slots")),
		WatchSlots:      GetBool("WATCH_SLOTS", false),
		AuthMode:        strings.ToLower(GetEnv("AUTH_MODE", AuthModeMock)),
		DefaultLanguage: GetEnv("DEFAULT_LANGUAGE", "en"),
		CookieSecure:    GetBool("COOKIE_SECURE", false),
		CORSOrigins:     GetEnv("CORS_ALLOW_ORIGINS", "*"),
		LLMBaseURL:      GetEnv("LLM_BASE_URL", ""),
		LLMModel:        GetEnv("LLM_MODEL", ""),
		LLMAPIKey:       GetEnv("LLM_API_KEY", ""),
	}

	port, err := ResolvePort()
	if err != nil {
		return Config{}, err
	}
	cfg.Port = port

	switch cfg.StorageBackend {
	case StorageSQLite, StorageFile, StorageMemory:
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidStorage, cfg.StorageBackend)
	}
	switch cfg.AuthMode {
	case AuthModeMock, AuthModeDirectory:
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidAuthMode, cfg.AuthMode)
	}
	return cfg, nil
}

func (cfg Config) DraftingEnabled() bool {
	return strings.TrimSpace(cfg.LLMAPIKey) != ""
}

func ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	switch {
	case secret == "":
		return "", ErrSecretKeyMissing
	case secret == insecureSecretPlaceholder, secret == exampleSecretPlaceholder:
		return "", ErrSecretKeyPlaceholder
	case len(secret) < minSecretKeyLength:
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

func ResolvePort() (string, error) {
	raw := strings.TrimSpace(GetEnv("PORT", "8080"))
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPort, raw)
	}
	return strconv.Itoa(port), nil
}

func LoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func GetEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func GetBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}
