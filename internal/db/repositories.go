package db

import "gorm.io/gorm"

type Repositories struct {
	Slots *SlotRepository
	Users *UserRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Slots: NewSlotRepository(database),
		Users: NewUserRepository(database),
	}
}
