package main

import (
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wangtaito/workout-project/internal/app"
	"github.com/wangtaito/workout-project/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestCSRFMiddlewareConfigUsesCookieSecureFlag(t *testing.T) {
	secureConfig := csrfMiddlewareConfig(true)
	if !secureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be enabled")
	}
	if secureConfig.CookieName != "coach_csrf" {
		t.Fatalf("expected csrf cookie name coach_csrf, got %q", secureConfig.CookieName)
	}
	if secureConfig.KeyLookup != "header:X-CSRF-Token" {
		t.Fatalf("expected csrf key lookup header:X-CSRF-Token, got %q", secureConfig.KeyLookup)
	}

	insecureConfig := csrfMiddlewareConfig(false)
	if insecureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be disabled")
	}
}

func TestNewDrafterDisabledWithoutKey(t *testing.T) {
	drafter, err := newDrafter(config.Config{})
	if err != nil || drafter != nil {
		t.Fatalf("newDrafter() = (%v, %v), want nil drafter", drafter, err)
	}
}

func testServerConfig() config.Config {
	return config.Config{
		Location:        time.UTC,
		StorageBackend:  config.StorageMemory,
		AuthMode:        config.AuthModeMock,
		DefaultLanguage: "en",
		CORSOrigins:     "*",
	}
}

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	cfg := testServerConfig()
	runtime, err := app.Open(cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("app.Open() error: %v", err)
	}
	t.Cleanup(func() { _ = runtime.Close() })
	return newServer(cfg, testSecret, runtime, nil)
}

func TestServerRequiresCSRFTokenForCookieSessions(t *testing.T) {
	server := newTestServer(t)

	loginBody := `{"username":"user","password":"123","role":"user"}`
	loginRequest := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(loginBody))
	loginRequest.Header.Set("Content-Type", "application/json")
	loginResponse, err := server.Test(loginRequest, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if loginResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected login without a session to pass csrf, got %d", loginResponse.StatusCode)
	}
	payload := struct {
		Token string `json:"token"`
	}{}
	if err := json.NewDecoder(loginResponse.Body).Decode(&payload); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	loginResponse.Body.Close()

	workout := `{"date":"2025-03-10","type":"running","duration":30}`

	cookieRequest := httptest.NewRequest(http.MethodPost, "/api/workouts", strings.NewReader(workout))
	cookieRequest.Header.Set("Content-Type", "application/json")
	cookieRequest.Header.Set("Cookie", "coach_auth="+payload.Token)
	cookieResponse, err := server.Test(cookieRequest, -1)
	if err != nil {
		t.Fatalf("cookie request failed: %v", err)
	}
	if cookieResponse.StatusCode != http.StatusForbidden {
		t.Fatalf("expected cookie session without csrf token to be rejected, got %d", cookieResponse.StatusCode)
	}

	bearerRequest := httptest.NewRequest(http.MethodPost, "/api/workouts", strings.NewReader(workout))
	bearerRequest.Header.Set("Content-Type", "application/json")
	bearerRequest.Header.Set("Authorization", "Bearer "+payload.Token)
	bearerResponse, err := server.Test(bearerRequest, -1)
	if err != nil {
		t.Fatalf("bearer request failed: %v", err)
	}
	if bearerResponse.StatusCode != http.StatusCreated {
		t.Fatalf("expected bearer request to succeed, got %d", bearerResponse.StatusCode)
	}
}

func TestServerHealthz(t *testing.T) {
	server := newTestServer(t)

	response, err := server.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
}

func TestServeClosesStorageWhenListenFails(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	defer occupied.Close()

	cfg := testServerConfig()
	cfg.StorageBackend = config.StorageSQLite
	cfg.DBPath = filepath.Join(t.TempDir(), "coach.db")
	runtime, err := app.Open(cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("app.Open() error: %v", err)
	}

	if err := serve(newServer(cfg, testSecret, runtime, nil), runtime, occupied.Addr().String()); err == nil {
		t.Fatal("expected listening on an occupied port to fail")
	}
	if _, _, err := runtime.Storage.Slot.Get("exerciseVideos"); err == nil {
		t.Fatal("expected storage to be closed after serve returned")
	}
}
