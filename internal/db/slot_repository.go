package db

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type storageSlot struct {
	Key       string `gorm:"column:slot_key;primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (storageSlot) TableName() string {
	return "storage_slots"
}

// SlotRepository stores serialized record collections in SQLite, one row per
// slot key.
type SlotRepository struct {
	database *gorm.DB
}

func NewSlotRepository(database *gorm.DB) *SlotRepository {
	return &SlotRepository{database: database}
}

func (repo *SlotRepository) Get(key string) (string, bool, error) {
	rows := make([]storageSlot, 0, 1)
	if err := repo.database.Where("slot_key = ?", key).Limit(1).Find(&rows).Error; err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].Value, true, nil
}

func (repo *SlotRepository) Set(key string, value string) error {
	row := storageSlot{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
