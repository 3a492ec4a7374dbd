package db

import (
	"github.com/oxbowlabs/taper/internal/models"
	"gorm.io/gorm"
)

type PointsRepository struct {
	database *gorm.DB
}

func NewPointsRepository(database *gorm.DB) *PointsRepository {
	return &PointsRepository{database: database}
}

func (repo *PointsRepository) FindOrCreateByUser(userID uint) (models.PointsLedger, error) {
	var ledger models.PointsLedger
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&ledger)
	if result.Error != nil {
		return models.PointsLedger{}, result.Error
	}
	if result.RowsAffected > 0 {
		return ledger, nil
	}

	ledger = models.PointsLedger{UserID: userID}
	if err := repo.database.Create(&ledger).Error; err != nil {
		return models.PointsLedger{}, err
	}
	return ledger, nil
}

// AddPoints increments the cumulative total in the store rather than writing
// a read value back, so two near-simultaneous awards cannot erase each other
// at the row level.
func (repo *PointsRepository) AddPoints(userID uint, points int) error {
	return repo.database.Model(&models.PointsLedger{}).
		Where("user_id = ?", userID).
		Update("points", gorm.Expr("points + ?", points)).Error
}
