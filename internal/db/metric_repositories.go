package db

import (
	"github.com/oxbowlabs/taper/internal/models"
	"gorm.io/gorm"
)

// One repository per raw metric collection. They share the same surface:
// list by user (optionally by day), create, save, delete by id within the
// owning user's scope.

type MealRepository struct {
	database *gorm.DB
}

func NewMealRepository(database *gorm.DB) *MealRepository {
	return &MealRepository{database: database}
}

func (repo *MealRepository) ListByUser(userID uint) ([]models.Meal, error) {
	meals := make([]models.Meal, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("day ASC, id ASC").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (repo *MealRepository) ListByUserDay(userID uint, day string) ([]models.Meal, error) {
	meals := make([]models.Meal, 0)
	if err := repo.database.Where("user_id = ? AND day = ?", userID, day).Order("id ASC").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// ListDistinctDays returns every day that has at least one meal entry.
func (repo *MealRepository) ListDistinctDays(userID uint) ([]string, error) {
	days := make([]string, 0)
	if err := repo.database.Model(&models.Meal{}).
		Where("user_id = ?", userID).
		Distinct("day").
		Order("day ASC").
		Pluck("day", &days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *MealRepository) FindByIDAndUser(id uint, userID uint) (models.Meal, bool, error) {
	var meal models.Meal
	result := repo.database.Where("id = ? AND user_id = ?", id, userID).Limit(1).Find(&meal)
	if result.Error != nil {
		return models.Meal{}, false, result.Error
	}
	return meal, result.RowsAffected > 0, nil
}

func (repo *MealRepository) Create(meal *models.Meal) error {
	return repo.database.Create(meal).Error
}

func (repo *MealRepository) Save(meal *models.Meal) error {
	return repo.database.Save(meal).Error
}

func (repo *MealRepository) DeleteByIDAndUser(id uint, userID uint) error {
	return repo.database.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Meal{}).Error
}

type WeightLogRepository struct {
	database *gorm.DB
}

func NewWeightLogRepository(database *gorm.DB) *WeightLogRepository {
	return &WeightLogRepository{database: database}
}

func (repo *WeightLogRepository) ListByUser(userID uint) ([]models.WeightLog, error) {
	logs := make([]models.WeightLog, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("day ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *WeightLogRepository) ListByUserDay(userID uint, day string) ([]models.WeightLog, error) {
	logs := make([]models.WeightLog, 0)
	if err := repo.database.Where("user_id = ? AND day = ?", userID, day).Order("id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *WeightLogRepository) FindByIDAndUser(id uint, userID uint) (models.WeightLog, bool, error) {
	var entry models.WeightLog
	result := repo.database.Where("id = ? AND user_id = ?", id, userID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.WeightLog{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *WeightLogRepository) Create(entry *models.WeightLog) error {
	return repo.database.Create(entry).Error
}

func (repo *WeightLogRepository) Save(entry *models.WeightLog) error {
	return repo.database.Save(entry).Error
}

func (repo *WeightLogRepository) DeleteByIDAndUser(id uint, userID uint) error {
	return repo.database.Where("id = ? AND user_id = ?", id, userID).Delete(&models.WeightLog{}).Error
}

type StepLogRepository struct {
	database *gorm.DB
}

func NewStepLogRepository(database *gorm.DB) *StepLogRepository {
	return &StepLogRepository{database: database}
}

func (repo *StepLogRepository) ListByUser(userID uint) ([]models.StepLog, error) {
	logs := make([]models.StepLog, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("day ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *StepLogRepository) ListByUserDay(userID uint, day string) ([]models.StepLog, error) {
	logs := make([]models.StepLog, 0)
	if err := repo.database.Where("user_id = ? AND day = ?", userID, day).Order("id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *StepLogRepository) FindByIDAndUser(id uint, userID uint) (models.StepLog, bool, error) {
	var entry models.StepLog
	result := repo.database.Where("id = ? AND user_id = ?", id, userID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.StepLog{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *StepLogRepository) Create(entry *models.StepLog) error {
	return repo.database.Create(entry).Error
}

func (repo *StepLogRepository) Save(entry *models.StepLog) error {
	return repo.database.Save(entry).Error
}

func (repo *StepLogRepository) DeleteByIDAndUser(id uint, userID uint) error {
	return repo.database.Where("id = ? AND user_id = ?", id, userID).Delete(&models.StepLog{}).Error
}

type WaterLogRepository struct {
	database *gorm.DB
}

func NewWaterLogRepository(database *gorm.DB) *WaterLogRepository {
	return &WaterLogRepository{database: database}
}

func (repo *WaterLogRepository) ListByUser(userID uint) ([]models.WaterLog, error) {
	logs := make([]models.WaterLog, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("day ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *WaterLogRepository) ListByUserDay(userID uint, day string) ([]models.WaterLog, error) {
	logs := make([]models.WaterLog, 0)
	if err := repo.database.Where("user_id = ? AND day = ?", userID, day).Order("id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *WaterLogRepository) FindByIDAndUser(id uint, userID uint) (models.WaterLog, bool, error) {
	var entry models.WaterLog
	result := repo.database.Where("id = ? AND user_id = ?", id, userID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.WaterLog{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *WaterLogRepository) Create(entry *models.WaterLog) error {
	return repo.database.Create(entry).Error
}

func (repo *WaterLogRepository) Save(entry *models.WaterLog) error {
	return repo.database.Save(entry).Error
}

func (repo *WaterLogRepository) DeleteByIDAndUser(id uint, userID uint) error {
	return repo.database.Where("id = ? AND user_id = ?", id, userID).Delete(&models.WaterLog{}).Error
}

type ShotRepository struct {
	database *gorm.DB
}

func NewShotRepository(database *gorm.DB) *ShotRepository {
	return &ShotRepository{database: database}
}

func (repo *ShotRepository) ListByUser(userID uint) ([]models.Shot, error) {
	shots := make([]models.Shot, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("day ASC, id ASC").Find(&shots).Error; err != nil {
		return nil, err
	}
	return shots, nil
}

func (repo *ShotRepository) ListByUserDay(userID uint, day string) ([]models.Shot, error) {
	shots := make([]models.Shot, 0)
	if err := repo.database.Where("user_id = ? AND day = ?", userID, day).Order("id ASC").Find(&shots).Error; err != nil {
		return nil, err
	}
	return shots, nil
}

func (repo *ShotRepository) FindByIDAndUser(id uint, userID uint) (models.Shot, bool, error) {
	var shot models.Shot
	result := repo.database.Where("id = ? AND user_id = ?", id, userID).Limit(1).Find(&shot)
	if result.Error != nil {
		return models.Shot{}, false, result.Error
	}
	return shot, result.RowsAffected > 0, nil
}

func (repo *ShotRepository) Create(shot *models.Shot) error {
	return repo.database.Create(shot).Error
}

func (repo *ShotRepository) Save(shot *models.Shot) error {
	return repo.database.Save(shot).Error
}

func (repo *ShotRepository) DeleteByIDAndUser(id uint, userID uint) error {
	return repo.database.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Shot{}).Error
}

type SideEffectRepository struct {
	database *gorm.DB
}

func NewSideEffectRepository(database *gorm.DB) *SideEffectRepository {
	return &SideEffectRepository{database: database}
}

func (repo *SideEffectRepository) ListByUser(userID uint) ([]models.SideEffect, error) {
	effects := make([]models.SideEffect, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("day ASC, id ASC").Find(&effects).Error; err != nil {
		return nil, err
	}
	return effects, nil
}

func (repo *SideEffectRepository) ListByUserDay(userID uint, day string) ([]models.SideEffect, error) {
	effects := make([]models.SideEffect, 0)
	if err := repo.database.Where("user_id = ? AND day = ?", userID, day).Order("id ASC").Find(&effects).Error; err != nil {
		return nil, err
	}
	return effects, nil
}

func (repo *SideEffectRepository) FindByIDAndUser(id uint, userID uint) (models.SideEffect, bool, error) {
	var effect models.SideEffect
	result := repo.database.Where("id = ? AND user_id = ?", id, userID).Limit(1).Find(&effect)
	if result.Error != nil {
		return models.SideEffect{}, false, result.Error
	}
	return effect, result.RowsAffected > 0, nil
}

func (repo *SideEffectRepository) Create(effect *models.SideEffect) error {
	return repo.database.Create(effect).Error
}

func (repo *SideEffectRepository) Save(effect *models.SideEffect) error {
	return repo.database.Save(effect).Error
}

func (repo *SideEffectRepository) DeleteByIDAndUser(id uint, userID uint) error {
	return repo.database.Where("id = ? AND user_id = ?", id, userID).Delete(&models.SideEffect{}).Error
}
