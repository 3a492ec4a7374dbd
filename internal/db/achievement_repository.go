package db

import (
	"time"

	"github.com/oxbowlabs/taper/internal/models"
	"gorm.io/gorm"
)

type AchievementRepository struct {
	database *gorm.DB
}

func NewAchievementRepository(database *gorm.DB) *AchievementRepository {
	return &AchievementRepository{database: database}
}

func (repo *AchievementRepository) ListByUser(userID uint) ([]models.Achievement, error) {
	achievements := make([]models.Achievement, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("id ASC").Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func (repo *AchievementRepository) FindByUserAndCode(userID uint, code string) (models.Achievement, bool, error) {
	var achievement models.Achievement
	result := repo.database.Where("user_id = ? AND code = ?", userID, code).Limit(1).Find(&achievement)
	if result.Error != nil {
		return models.Achievement{}, false, result.Error
	}
	return achievement, result.RowsAffected > 0, nil
}

// MarkUnlocked flips the unlock row for (user, code) and reports how many
// rows were touched. Zero means the row was never instantiated; callers
// insert one seeded from the static definition in that case. Rows already
// unlocked are not matched, which keeps the transition terminal.
func (repo *AchievementRepository) MarkUnlocked(userID uint, code string, unlockedAt time.Time) (int64, error) {
	result := repo.database.Model(&models.Achievement{}).
		Where("user_id = ? AND code = ? AND is_unlocked = ?", userID, code, false).
		Updates(map[string]any{
			"is_unlocked": true,
			"unlocked_at": unlockedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (repo *AchievementRepository) Create(achievement *models.Achievement) error {
	return repo.database.Create(achievement).Error
}
