package db

import (
	"github.com/oxbowlabs/taper/internal/models"
	"gorm.io/gorm"
)

type StreakRepository struct {
	database *gorm.DB
}

func NewStreakRepository(database *gorm.DB) *StreakRepository {
	return &StreakRepository{database: database}
}

// FindOrCreateByUser loads the single streaks row for a user, creating the
// zeroed row on first touch.
func (repo *StreakRepository) FindOrCreateByUser(userID uint) (models.Streak, error) {
	var streak models.Streak
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&streak)
	if result.Error != nil {
		return models.Streak{}, result.Error
	}
	if result.RowsAffected > 0 {
		return streak, nil
	}

	streak = models.Streak{UserID: userID}
	if err := repo.database.Create(&streak).Error; err != nil {
		return models.Streak{}, err
	}
	return streak, nil
}

// UpdateCounter writes one metric's count and last-day columns without
// touching the other counters on the row.
func (repo *StreakRepository) UpdateCounter(userID uint, countColumn string, count int, dayColumn string, day string) error {
	return repo.database.Model(&models.Streak{}).Where("user_id = ?", userID).Updates(map[string]any{
		countColumn: count,
		dayColumn:   day,
	}).Error
}
