package db

import (
	"github.com/oxbowlabs/taper/internal/models"
	"gorm.io/gorm"
)

type JourneyRepository struct {
	database *gorm.DB
}

func NewJourneyRepository(database *gorm.DB) *JourneyRepository {
	return &JourneyRepository{database: database}
}

func (repo *JourneyRepository) ListStagesByUser(userID uint) ([]models.JourneyStage, error) {
	stages := make([]models.JourneyStage, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("position ASC").Find(&stages).Error; err != nil {
		return nil, err
	}
	return stages, nil
}

func (repo *JourneyRepository) CreateStage(stage *models.JourneyStage) error {
	return repo.database.Create(stage).Error
}

func (repo *JourneyRepository) FindStageByUserAndCode(userID uint, code string) (models.JourneyStage, bool, error) {
	var stage models.JourneyStage
	result := repo.database.Where("user_id = ? AND code = ?", userID, code).Limit(1).Find(&stage)
	if result.Error != nil {
		return models.JourneyStage{}, false, result.Error
	}
	return stage, result.RowsAffected > 0, nil
}

func (repo *JourneyRepository) MarkStageCompleted(userID uint, code string) error {
	return repo.database.Model(&models.JourneyStage{}).
		Where("user_id = ? AND code = ?", userID, code).
		Update("is_completed", true).Error
}

func (repo *JourneyRepository) CountCompletedStages(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.JourneyStage{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *JourneyRepository) ListGoalsByUser(userID uint) ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("id ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *JourneyRepository) FindGoalByIDAndUser(id uint, userID uint) (models.Goal, bool, error) {
	var goal models.Goal
	result := repo.database.Where("id = ? AND user_id = ?", id, userID).Limit(1).Find(&goal)
	if result.Error != nil {
		return models.Goal{}, false, result.Error
	}
	return goal, result.RowsAffected > 0, nil
}

func (repo *JourneyRepository) CreateGoal(goal *models.Goal) error {
	return repo.database.Create(goal).Error
}

func (repo *JourneyRepository) SaveGoal(goal *models.Goal) error {
	return repo.database.Save(goal).Error
}

func (repo *JourneyRepository) DeleteGoalByIDAndUser(id uint, userID uint) error {
	return repo.database.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{}).Error
}

func (repo *JourneyRepository) CountCompletedGoals(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Goal{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
