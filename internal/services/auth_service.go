package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/store"
)

// SessionSlotKey is the slot holding the signed-in user of a local client.
const SessionSlotKey = "user"

var ErrNoSession = errors.New("no active session")

// CredentialChecker decides whether a (username, password, role) triple may
// sign in and returns the matching user.
type CredentialChecker interface {
	Authenticate(username string, password string, role string) (models.User, error)
}

type mockAccount struct {
	id       string
	username string
	password string
	role     string
}

var mockAccounts = []mockAccount{
	{id: "admin-id", username: "admin", password: "123", role: models.RoleAdmin},
	{id: "trainer-id", username: "trainer", password: "123", role: models.RoleTrainer},
	{id: "user-id", username: "user", password: "123", role: models.RoleUser},
}

// MockCredentials accepts the three built-in demo accounts. It is not a
// security boundary.
type MockCredentials struct {
	now func() time.Time
}

func NewMockCredentials() *MockCredentials {
	return &MockCredentials{now: time.Now}
}

func (checker *MockCredentials) Authenticate(username string, password string, role string) (models.User, error) {
	for _, account := range mockAccounts {
		if account.username != username || account.password != password || account.role != role {
			continue
		}
		now := checker.now().UTC()
		return models.User{
			ID:        account.id,
			Username:  account.username,
			Role:      account.role,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	return models.User{}, ErrAuthCredentialsInvalid
}

type CredentialUserReader interface {
	FindByUsername(username string) (models.User, error)
}

// DirectoryCredentials checks bcrypt hashes stored in a user repository. The
// requested role must equal the stored one.
type DirectoryCredentials struct {
	users CredentialUserReader
}

func NewDirectoryCredentials(users CredentialUserReader) *DirectoryCredentials {
	return &DirectoryCredentials{users: users}
}

func (checker *DirectoryCredentials) Authenticate(username string, password string, role string) (models.User, error) {
	user, err := checker.users.FindByUsername(username)
	if err != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if !PasswordMatches(user.PasswordHash, password) || user.Role != role {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

// AuthService signs users in through a CredentialChecker.
type AuthService struct {
	credentials CredentialChecker
}

func NewAuthService(credentials CredentialChecker) *AuthService {
	return &AuthService{credentials: credentials}
}

func (service *AuthService) Login(username string, password string, role string) (models.User, error) {
	username, password, role, err := NormalizeCredentialsInput(username, password, role)
	if err != nil {
		return models.User{}, err
	}
	return service.credentials.Authenticate(username, password, role)
}

// SessionService remembers the signed-in user in a slot, the way a local
// client keeps its login between runs.
type SessionService struct {
	auth *AuthService
	slot store.Slot
}

func NewSessionService(auth *AuthService, slot store.Slot) *SessionService {
	return &SessionService{auth: auth, slot: slot}
}

func (service *SessionService) Login(username string, password string, role string) (models.User, error) {
	user, err := service.auth.Login(username, password, role)
	if err != nil {
		return models.User{}, err
	}
	encoded, err := json.Marshal(user)
	if err != nil {
		return models.User{}, fmt.Errorf("encode session: %w", err)
	}
	if err := service.slot.Set(SessionSlotKey, string(encoded)); err != nil {
		return models.User{}, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

func (service *SessionService) Logout() error {
	if err := service.slot.Set(SessionSlotKey, ""); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (service *SessionService) Current() (models.User, error) {
	raw, found, err := service.slot.Get(SessionSlotKey)
	if err != nil {
		return models.User{}, fmt.Errorf("read session: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if !found || raw == "" || raw == "null" {
		return models.User{}, ErrNoSession
	}

	user := models.User{}
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		return models.User{}, ErrNoSession
	}
	return user, nil
}
