package services

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/wangtaito/workout-project/internal/models"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrInvalidUsername  = errors.New("invalid username")
	ErrInvalidUserRole  = errors.New("invalid user role")
	ErrCreateUserFailed = errors.New("create user failed")
	ErrDeleteUserFailed = errors.New("delete user failed")
	ErrUpdateUserFailed = errors.New("update user failed")
	ErrListUsersFailed  = errors.New("list users failed")
	ErrSeedUsersFailed  = errors.New("seed users failed")
)

type UserRepository interface {
	List() ([]models.User, error)
	FindByUsername(username string) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
	Delete(userID string) (bool, error)
}

// UserView is a user as shown to administrators, password masked.
type UserView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserView(user models.User) UserView {
	return UserView{
		ID:        user.ID,
		Username:  user.Username,
		Password:  models.MaskedPassword,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type UserService struct {
	users UserRepository
	now   func() time.Time

	idMu   sync.Mutex
	lastID int64
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users, now: time.Now}
}

func (service *UserService) ListUsers() ([]UserView, error) {
	users, err := service.users.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListUsersFailed, err)
	}
	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, NewUserView(user))
	}
	return views, nil
}

func (service *UserService) CreateUser(username string, password string, role string) (UserView, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return UserView{}, ErrInvalidUsername
	}
	if !models.IsKnownRole(role) {
		return UserView{}, ErrInvalidUserRole
	}
	hash, err := HashPassword(password)
	if err != nil {
		return UserView{}, err
	}
	if _, err := service.users.FindByUsername(username); err == nil {
		return UserView{}, ErrUsernameTaken
	}

	now := service.now().UTC()
	user := models.User{
		ID:           service.nextUserID(now),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := service.users.Create(&user); err != nil {
		return UserView{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
	}
	return NewUserView(user), nil
}

// Exists reports whether userID names a user in the directory.
func (service *UserService) Exists(userID string) (bool, error) {
	users, err := service.users.List()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrListUsersFailed, err)
	}
	for _, user := range users {
		if user.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

// DeleteUser reports whether a user with userID existed.
func (service *UserService) DeleteUser(userID string) (bool, error) {
	deleted, err := service.users.Delete(userID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDeleteUserFailed, err)
	}
	return deleted, nil
}

func (service *UserService) ResetPassword(username string, password string) error {
	user, err := service.users.FindByUsername(NormalizeUsername(username))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUserNotFound, err)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = service.now().UTC()
	if err := service.users.Save(&user); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateUserFailed, err)
	}
	return nil
}

// EnsureDefaultUsers creates the admin, trainer and user demo accounts when
// the directory is empty.
func (service *UserService) EnsureDefaultUsers() error {
	existing, err := service.users.List()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSeedUsersFailed, err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := service.now().UTC()
	for _, account := range mockAccounts {
		hash, err := HashPassword(account.password)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSeedUsersFailed, err)
		}
		user := models.User{
			ID:           account.id,
			Username:     account.username,
			PasswordHash: hash,
			Role:         account.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := service.users.Create(&user); err != nil {
			return fmt.Errorf("%w: %v", ErrSeedUsersFailed, err)
		}
	}
	return nil
}

// nextUserID issues user-<unix ms>, bumped past the previous id when two
// users are created within the same millisecond.
func (service *UserService) nextUserID(now time.Time) string {
	service.idMu.Lock()
	defer service.idMu.Unlock()

	stamp := now.UnixMilli()
	if stamp <= service.lastID {
		stamp = service.lastID + 1
	}
	service.lastID = stamp
	return fmt.Sprintf("user-%d", stamp)
}

// MemoryUserRepository keeps users in process memory. It backs the memory
// storage mode and tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryUserRepository(users ...models.User) *MemoryUserRepository {
	return &MemoryUserRepository{users: slices.Clone(users)}
}

func (repo *MemoryUserRepository) List() ([]models.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return slices.Clone(repo.users), nil
}

func (repo *MemoryUserRepository) FindByUsername(username string) (models.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	for _, user := range repo.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (repo *MemoryUserRepository) Create(user *models.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, existing := range repo.users {
		if existing.ID == user.ID || existing.Username == user.Username {
			return ErrUsernameTaken
		}
	}
	repo.users = append(repo.users, *user)
	return nil
}

func (repo *MemoryUserRepository) Save(user *models.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for index := range repo.users {
		if repo.users[index].ID == user.ID {
			repo.users[index] = *user
			return nil
		}
	}
	return ErrUserNotFound
}

func (repo *MemoryUserRepository) Delete(userID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	before := len(repo.users)
	repo.users = slices.DeleteFunc(repo.users, func(user models.User) bool {
		return user.ID == userID
	})
	return len(repo.users) != before, nil
}
