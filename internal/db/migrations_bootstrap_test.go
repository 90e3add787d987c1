package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/wangtaito/workout-project/internal/models"
	embeddedmigrations "github.com/wangtaito/workout-project/migrations"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T, path string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(database)
	})
	return database
}

func TestOpenSQLiteAppliesEmbeddedMigrations(t *testing.T) {
	database := openTestDatabase(t, filepath.Join(t.TempDir(), "nested", "coach.db"))

	expected, err := readMigrations(embeddedmigrations.Files)
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(expected) == 0 {
		t.Fatal("expected at least one embedded migration")
	}

	var applied int64
	if err := database.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied).Error; err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if applied != int64(len(expected)) {
		t.Fatalf("applied migrations = %d, want %d", applied, len(expected))
	}

	for _, table := range []string{"storage_slots", "users"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}
}

func TestOpenSQLiteIsIdempotentAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coach.db")

	first := openTestDatabase(t, path)
	if err := NewSlotRepository(first).Set("workoutEvents_user-id", `[]`); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := Close(first); err != nil {
		t.Fatalf("close first handle: %v", err)
	}

	second := openTestDatabase(t, path)
	value, found, err := NewSlotRepository(second).Get("workoutEvents_user-id")
	if err != nil || !found || value != `[]` {
		t.Fatalf("Get() after reopen = (%q, %v, %v)", value, found, err)
	}
}

func TestSplitStatementsSkipsBlanks(t *testing.T) {
	got := splitStatements("CREATE TABLE a (id INT);\n\n ;CREATE INDEX b ON a(id);  ")
	if len(got) != 2 {
		t.Fatalf("splitStatements() = %#v, want 2 statements", got)
	}
}

func TestSlotRepositoryUpsertsValues(t *testing.T) {
	slots := NewSlotRepository(openTestDatabase(t, filepath.Join(t.TempDir(), "coach.db")))

	if _, found, err := slots.Get("mealRecords"); err != nil || found {
		t.Fatalf("expected missing slot, found=%v err=%v", found, err)
	}
	if err := slots.Set("mealRecords", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := slots.Set("mealRecords", `[{"id":"2"}]`); err != nil {
		t.Fatalf("Set() overwrite error: %v", err)
	}
	if err := slots.Set("exerciseVideos", `[]`); err != nil {
		t.Fatalf("Set() second key error: %v", err)
	}

	value, found, err := slots.Get("mealRecords")
	if err != nil || !found || value != `[{"id":"2"}]` {
		t.Fatalf("Get() = (%q, %v, %v), want overwritten value", value, found, err)
	}

	var count int64
	if err := slots.database.Model(&storageSlot{}).Count(&count).Error; err != nil {
		t.Fatalf("count slots: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected one row per key, got %d", count)
	}
}

func TestUserRepositoryLifecycle(t *testing.T) {
	users := NewUserRepository(openTestDatabase(t, filepath.Join(t.TempDir(), "coach.db")))
	now := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)

	user := models.User{ID: "user-1", Username: "runner", PasswordHash: "hash", Role: models.RoleUser, CreatedAt: now, UpdatedAt: now}
	if err := users.Create(&user); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	duplicate := user
	duplicate.ID = "user-2"
	if err := users.Create(&duplicate); err == nil {
		t.Fatal("expected unique username violation")
	}

	found, err := users.FindByUsername("runner")
	if err != nil || found.ID != "user-1" {
		t.Fatalf("FindByUsername() = (%+v, %v)", found, err)
	}
	if _, err := users.FindByUsername("nobody"); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	deleted, err := users.Delete("user-1")
	if err != nil || !deleted {
		t.Fatalf("Delete() = (%v, %v), want true", deleted, err)
	}
	deleted, err = users.Delete("user-1")
	if err != nil || deleted {
		t.Fatalf("second Delete() = (%v, %v), want false", deleted, err)
	}

	count, err := users.Count()
	if err != nil || count != 0 {
		t.Fatalf("Count() = (%d, %v), want 0", count, err)
	}
}
