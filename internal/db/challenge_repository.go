package db

import (
	"github.com/oxbowlabs/taper/internal/models"
	"gorm.io/gorm"
)

type ChallengeRepository struct {
	database *gorm.DB
}

func NewChallengeRepository(database *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{database: database}
}

func (repo *ChallengeRepository) ListByUser(userID uint) ([]models.Challenge, error) {
	challenges := make([]models.Challenge, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("start_day DESC, id ASC").Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (repo *ChallengeRepository) ListByUserAndMetric(userID uint, metric models.MetricType) ([]models.Challenge, error) {
	challenges := make([]models.Challenge, 0)
	if err := repo.database.
		Where("user_id = ? AND metric = ?", userID, string(metric)).
		Order("start_day DESC, id ASC").
		Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (repo *ChallengeRepository) ExistsByUserAndKey(userID uint, key string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Challenge{}).
		Where("user_id = ? AND key = ?", userID, key).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *ChallengeRepository) Create(challenge *models.Challenge) error {
	return repo.database.Create(challenge).Error
}

// UpdateProgress persists a progress move; completion is set in the same
// write so the terminal flag and the 100 value land together.
func (repo *ChallengeRepository) UpdateProgress(id uint, progress int, isCompleted bool) error {
	return repo.database.Model(&models.Challenge{}).Where("id = ?", id).Updates(map[string]any{
		"progress":     progress,
		"is_completed": isCompleted,
	}).Error
}
