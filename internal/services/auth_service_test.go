package services

import (
	"errors"
	"testing"
	"time"

	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/store"
)

func TestMockCredentialsAcceptOnlyMatchingTriples(t *testing.T) {
	auth := NewAuthService(NewMockCredentials())

	tests := []struct {
		name     string
		username string
		password string
		role     string
		wantID   string
		wantErr  error
	}{
		{name: "admin", username: "admin", password: "123", role: "admin", wantID: "admin-id"},
		{name: "trainer", username: " trainer ", password: "123", role: "TRAINER", wantID: "trainer-id"},
		{name: "user", username: "user", password: "123", role: "user", wantID: "user-id"},
		{name: "wrong role", username: "user", password: "123", role: "admin", wantErr: ErrAuthCredentialsInvalid},
		{name: "wrong password", username: "admin", password: "1234", role: "admin", wantErr: ErrAuthCredentialsInvalid},
		{name: "unknown role", username: "admin", password: "123", role: "owner", wantErr: ErrAuthRoleInvalid},
		{name: "blank username", username: " ", password: "123", role: "user", wantErr: ErrAuthCredentialsInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user, err := auth.Login(tc.username, tc.password, tc.role)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() unexpected error: %v", err)
			}
			if user.ID != tc.wantID || user.PasswordHash != "" {
				t.Fatalf("Login() = %+v", user)
			}
		})
	}
}

func TestDirectoryCredentialsCheckHashAndRole(t *testing.T) {
	users := NewMemoryUserRepository()
	service := NewUserService(users)
	if _, err := service.CreateUser("coach", "s3cret", models.RoleTrainer); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	auth := NewAuthService(NewDirectoryCredentials(users))

	user, err := auth.Login("coach", "s3cret", models.RoleTrainer)
	if err != nil || user.Username != "coach" {
		t.Fatalf("Login() = (%+v, %v)", user, err)
	}
	if _, err := auth.Login("coach", "wrong", models.RoleTrainer); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for bad password, got %v", err)
	}
	if _, err := auth.Login("coach", "s3cret", models.RoleAdmin); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for role mismatch, got %v", err)
	}
	if _, err := auth.Login("ghost", "s3cret", models.RoleUser); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for unknown user, got %v", err)
	}
}

func TestSessionServiceRemembersLogin(t *testing.T) {
	slot := store.NewMemorySlot()
	sessions := NewSessionService(NewAuthService(NewMockCredentials()), slot)

	if _, err := sessions.Current(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession before login, got %v", err)
	}
	if _, err := sessions.Login("user", "nope", "user"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected failed login, got %v", err)
	}
	if _, found, _ := slot.Get(SessionSlotKey); found {
		t.Fatal("failed login must not write a session")
	}

	if _, err := sessions.Login("trainer", "123", "trainer"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	current, err := NewSessionService(nil, slot).Current()
	if err != nil || current.ID != "trainer-id" || current.Role != models.RoleTrainer {
		t.Fatalf("Current() = (%+v, %v)", current, err)
	}

	if err := sessions.Logout(); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if _, err := sessions.Current(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}
}

func TestUserServiceManagement(t *testing.T) {
	service := NewUserService(NewMemoryUserRepository())
	service.now = func() time.Time { return time.UnixMilli(1700000000000) }

	if err := service.EnsureDefaultUsers(); err != nil {
		t.Fatalf("EnsureDefaultUsers() error: %v", err)
	}
	if err := service.EnsureDefaultUsers(); err != nil {
		t.Fatalf("second EnsureDefaultUsers() error: %v", err)
	}

	views, err := service.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers() error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("ListUsers() returned %d users, want 3", len(views))
	}
	for _, view := range views {
		if view.Password != models.MaskedPassword {
			t.Fatalf("expected masked password, got %+v", view)
		}
	}

	first, err := service.CreateUser("alice", "pw", models.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	second, err := service.CreateUser("bob", "pw", models.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	if first.ID != "user-1700000000000" || second.ID != "user-1700000000001" {
		t.Fatalf("generated ids = %s, %s", first.ID, second.ID)
	}
	if first.Password != models.MaskedPassword {
		t.Fatalf("CreateUser() leaked password: %+v", first)
	}

	if _, err := service.CreateUser("alice", "pw", models.RoleUser); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := service.CreateUser("carol", "pw", "owner"); !errors.Is(err, ErrInvalidUserRole) {
		t.Fatalf("expected ErrInvalidUserRole, got %v", err)
	}
	if _, err := service.CreateUser("carol", "", models.RoleUser); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}

	if err := service.ResetPassword("alice", "new-password"); err != nil {
		t.Fatalf("ResetPassword() error: %v", err)
	}
	if err := service.ResetPassword("nobody", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	deleted, err := service.DeleteUser(first.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteUser() = (%v, %v), want true", deleted, err)
	}
	deleted, err = service.DeleteUser(first.ID)
	if err != nil || deleted {
		t.Fatalf("second DeleteUser() = (%v, %v), want false", deleted, err)
	}
	if exists, err := service.Exists(first.ID); err != nil || exists {
		t.Fatalf("Exists(deleted) = (%v, %v), want false", exists, err)
	}
	if exists, err := service.Exists(second.ID); err != nil || !exists {
		t.Fatalf("Exists(%s) = (%v, %v), want true", second.ID, exists, err)
	}
}
