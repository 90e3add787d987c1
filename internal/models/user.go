package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
	RoleUser    = "user"
)

const MaskedPassword = "******"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}

func IsKnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTrainer, RoleUser:
		return true
	default:
		return false
	}
}
