package services

import (
	"errors"
	"strings"

	"github.com/wangtaito/workout-project/internal/models"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrAuthRoleInvalid        = errors.New("auth role invalid")
)

const maxUsernameLength = 64

func NormalizeUsername(raw string) string {
	username := strings.TrimSpace(raw)
	if username == "" || len([]rune(username)) > maxUsernameLength {
		return ""
	}
	return username
}

// NormalizeCredentialsInput trims the login triple and rejects blanks and
// unknown roles before any credential lookup happens.
func NormalizeCredentialsInput(usernameRaw string, passwordRaw string, roleRaw string) (string, string, string, error) {
	username := NormalizeUsername(usernameRaw)
	password := strings.TrimSpace(passwordRaw)
	if username == "" || password == "" {
		return "", "", "", ErrAuthCredentialsInvalid
	}
	role := strings.ToLower(strings.TrimSpace(roleRaw))
	if !models.IsKnownRole(role) {
		return "", "", "", ErrAuthRoleInvalid
	}
	return username, password, role, nil
}
