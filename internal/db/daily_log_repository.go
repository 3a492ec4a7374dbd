package db

import (
	"github.com/oxbowlabs/taper/internal/models"
	"gorm.io/gorm"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) ListByUser(userID uint) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("day ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListByUserRange returns daily logs whose day falls in [fromDay, toDay],
// inclusive on both ends. Days are canonical YYYY-MM-DD strings, so the
// comparison is lexicographic.
func (repo *DailyLogRepository) ListByUserRange(userID uint, fromDay string, toDay string) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.
		Where("user_id = ? AND day >= ? AND day <= ?", userID, fromDay, toDay).
		Order("day ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) FindByUserAndDay(userID uint, day string) (models.DailyLog, bool, error) {
	var entry models.DailyLog
	result := repo.database.Where("user_id = ? AND day = ?", userID, day).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

// Upsert writes the aggregate keyed by (user, day): the existing row is
// updated in place, otherwise a new one is created. Nil ID slices are
// normalized to empty ones; the serializer writes SQL NULL for nil, which
// the NOT NULL columns reject.
func (repo *DailyLogRepository) Upsert(entry *models.DailyLog) error {
	if entry.MealIDs == nil {
		entry.MealIDs = []uint{}
	}
	if entry.SideEffectIDs == nil {
		entry.SideEffectIDs = []uint{}
	}
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var existing models.DailyLog
		result := tx.Where("user_id = ? AND day = ?", entry.UserID, entry.Day).Limit(1).Find(&existing)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			entry.ID = existing.ID
			entry.CreatedAt = existing.CreatedAt
			return tx.Save(entry).Error
		}
		return tx.Create(entry).Error
	})
}

func (repo *DailyLogRepository) DeleteByUserAndDay(userID uint, day string) error {
	return repo.database.Where("user_id = ? AND day = ?", userID, day).Delete(&models.DailyLog{}).Error
}
