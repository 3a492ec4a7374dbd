package services

import (
	"errors"
	"fmt"

	"github.com/oxbowlabs/taper/internal/cache"
	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

var (
	ErrEntryNotFound     = errors.New("metric entry not found")
	ErrRemoteWriteFailed = errors.New("remote write failed")
)

type MealStore interface {
	FindByIDAndUser(id uint, userID uint) (models.Meal, bool, error)
	Create(meal *models.Meal) error
	Save(meal *models.Meal) error
	DeleteByIDAndUser(id uint, userID uint) error
}

type WeightLogStore interface {
	FindByIDAndUser(id uint, userID uint) (models.WeightLog, bool, error)
	Create(entry *models.WeightLog) error
	Save(entry *models.WeightLog) error
	DeleteByIDAndUser(id uint, userID uint) error
}

type StepLogStore interface {
	FindByIDAndUser(id uint, userID uint) (models.StepLog, bool, error)
	Create(entry *models.StepLog) error
	Save(entry *models.StepLog) error
	DeleteByIDAndUser(id uint, userID uint) error
}

type WaterLogStore interface {
	FindByIDAndUser(id uint, userID uint) (models.WaterLog, bool, error)
	Create(entry *models.WaterLog) error
	Save(entry *models.WaterLog) error
	DeleteByIDAndUser(id uint, userID uint) error
}

type ShotStore interface {
	FindByIDAndUser(id uint, userID uint) (models.Shot, bool, error)
	Create(shot *models.Shot) error
	Save(shot *models.Shot) error
	DeleteByIDAndUser(id uint, userID uint) error
}

type SideEffectStore interface {
	FindByIDAndUser(id uint, userID uint) (models.SideEffect, bool, error)
	Create(effect *models.SideEffect) error
	Save(effect *models.SideEffect) error
	DeleteByIDAndUser(id uint, userID uint) error
}

type DayRecomputer interface {
	RecomputeDailyLog(userID uint, day string) (models.DailyLog, error)
}

type StreakToucher interface {
	Touch(userID uint, metric models.MetricType, day string) (int, error)
}

type MetricPublisher interface {
	Publish(event MetricEvent)
}

// MetricService is the single write path for raw entries. Every mutation
// follows the same order: remote store first, then the local mirror, then a
// recompute of the affected day, then streak and event side effects. A remote
// failure aborts before the mirror changes, so the mirror never holds an
// entry the store rejected.
type MetricService struct {
	meals       MealStore
	weights     WeightLogStore
	steps       StepLogStore
	water       WaterLogStore
	shots       ShotStore
	sideEffects SideEffectStore
	mirror      *cache.Store
	aggregator  DayRecomputer
	streaks     StreakToucher
	publisher   MetricPublisher
	logger      *zap.Logger
}

func NewMetricService(
	meals MealStore,
	weights WeightLogStore,
	steps StepLogStore,
	water WaterLogStore,
	shots ShotStore,
	sideEffects SideEffectStore,
	mirror *cache.Store,
	aggregator DayRecomputer,
	streaks StreakToucher,
	publisher MetricPublisher,
	logger *zap.Logger,
) *MetricService {
	return &MetricService{
		meals:       meals,
		weights:     weights,
		steps:       steps,
		water:       water,
		shots:       shots,
		sideEffects: sideEffects,
		mirror:      mirror,
		aggregator:  aggregator,
		streaks:     streaks,
		publisher:   publisher,
		logger:      logger,
	}
}

// --- meals ---

func (service *MetricService) AddMeal(userID uint, meal models.Meal) (models.Meal, error) {
	if userID == 0 {
		return models.Meal{}, nil
	}
	if _, err := ParseDay(meal.Day); err != nil {
		return models.Meal{}, err
	}
	meal.ID = 0
	meal.UserID = userID

	if err := service.meals.Create(&meal); err != nil {
		return models.Meal{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertMeal(meal)
	service.recompute(userID, meal.Day)
	service.touchStreak(userID, models.MetricMeals, meal.Day)
	service.publish(MetricEvent{Type: models.MetricMeals, Value: 1, UserID: userID, Day: meal.Day})
	return meal, nil
}

func (service *MetricService) UpdateMeal(userID uint, meal models.Meal) (models.Meal, error) {
	if userID == 0 {
		return models.Meal{}, nil
	}
	if _, err := ParseDay(meal.Day); err != nil {
		return models.Meal{}, err
	}
	existing, found, err := service.meals.FindByIDAndUser(meal.ID, userID)
	if err != nil {
		return models.Meal{}, err
	}
	if !found {
		return models.Meal{}, ErrEntryNotFound
	}

	meal.UserID = userID
	meal.CreatedAt = existing.CreatedAt
	if err := service.meals.Save(&meal); err != nil {
		return models.Meal{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertMeal(meal)
	service.recompute(userID, meal.Day)
	if existing.Day != meal.Day {
		service.recompute(userID, existing.Day)
	}
	return meal, nil
}

func (service *MetricService) DeleteMeal(userID uint, id uint) error {
	if userID == 0 {
		return nil
	}
	existing, found, err := service.meals.FindByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrEntryNotFound
	}
	if err := service.meals.DeleteByIDAndUser(id, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.DeleteMeal(userID, id)
	service.recompute(userID, existing.Day)
	return nil
}

// --- weight logs ---

func (service *MetricService) AddWeightLog(userID uint, entry models.WeightLog) (models.WeightLog, error) {
	if userID == 0 {
		return models.WeightLog{}, nil
	}
	if _, err := ParseDay(entry.Day); err != nil {
		return models.WeightLog{}, err
	}
	entry.ID = 0
	entry.UserID = userID

	if err := service.weights.Create(&entry); err != nil {
		return models.WeightLog{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertWeightLog(entry)
	service.recompute(userID, entry.Day)
	service.touchStreak(userID, models.MetricWeight, entry.Day)
	service.publish(MetricEvent{Type: models.MetricWeight, Value: entry.Weight, UserID: userID, Day: entry.Day})
	return entry, nil
}

func (service *MetricService) UpdateWeightLog(userID uint, entry models.WeightLog) (models.WeightLog, error) {
	if userID == 0 {
		return models.WeightLog{}, nil
	}
	if _, err := ParseDay(entry.Day); err != nil {
		return models.WeightLog{}, err
	}
	existing, found, err := service.weights.FindByIDAndUser(entry.ID, userID)
	if err != nil {
		return models.WeightLog{}, err
	}
	if !found {
		return models.WeightLog{}, ErrEntryNotFound
	}

	entry.UserID = userID
	entry.CreatedAt = existing.CreatedAt
	if err := service.weights.Save(&entry); err != nil {
		return models.WeightLog{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertWeightLog(entry)
	service.recompute(userID, entry.Day)
	if existing.Day != entry.Day {
		service.recompute(userID, existing.Day)
	}
	service.publish(MetricEvent{Type: models.MetricWeight, Value: entry.Weight, UserID: userID, Day: entry.Day})
	return entry, nil
}

func (service *MetricService) DeleteWeightLog(userID uint, id uint) error {
	if userID == 0 {
		return nil
	}
	existing, found, err := service.weights.FindByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrEntryNotFound
	}
	if err := service.weights.DeleteByIDAndUser(id, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.DeleteWeightLog(userID, id)
	service.recompute(userID, existing.Day)
	return nil
}

// --- step logs ---

func (service *MetricService) AddStepLog(userID uint, entry models.StepLog) (models.StepLog, error) {
	if userID == 0 {
		return models.StepLog{}, nil
	}
	if _, err := ParseDay(entry.Day); err != nil {
		return models.StepLog{}, err
	}
	entry.ID = 0
	entry.UserID = userID

	if err := service.steps.Create(&entry); err != nil {
		return models.StepLog{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertStepLog(entry)
	service.recompute(userID, entry.Day)
	service.touchStreak(userID, models.MetricSteps, entry.Day)
	return entry, nil
}

func (service *MetricService) UpdateStepLog(userID uint, entry models.StepLog) (models.StepLog, error) {
	if userID == 0 {
		return models.StepLog{}, nil
	}
	if _, err := ParseDay(entry.Day); err != nil {
		return models.StepLog{}, err
	}
	existing, found, err := service.steps.FindByIDAndUser(entry.ID, userID)
	if err != nil {
		return models.StepLog{}, err
	}
	if !found {
		return models.StepLog{}, ErrEntryNotFound
	}

	entry.UserID = userID
	entry.CreatedAt = existing.CreatedAt
	if err := service.steps.Save(&entry); err != nil {
		return models.StepLog{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertStepLog(entry)
	service.recompute(userID, entry.Day)
	if existing.Day != entry.Day {
		service.recompute(userID, existing.Day)
	}
	return entry, nil
}

func (service *MetricService) DeleteStepLog(userID uint, id uint) error {
	if userID == 0 {
		return nil
	}
	existing, found, err := service.steps.FindByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrEntryNotFound
	}
	if err := service.steps.DeleteByIDAndUser(id, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.DeleteStepLog(userID, id)
	service.recompute(userID, existing.Day)
	return nil
}

// --- water logs ---

func (service *MetricService) AddWaterLog(userID uint, entry models.WaterLog) (models.WaterLog, error) {
	if userID == 0 {
		return models.WaterLog{}, nil
	}
	if _, err := ParseDay(entry.Day); err != nil {
		return models.WaterLog{}, err
	}
	entry.ID = 0
	entry.UserID = userID

	if err := service.water.Create(&entry); err != nil {
		return models.WaterLog{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertWaterLog(entry)
	service.recompute(userID, entry.Day)
	service.touchStreak(userID, models.MetricWater, entry.Day)
	return entry, nil
}

func (service *MetricService) UpdateWaterLog(userID uint, entry models.WaterLog) (models.WaterLog, error) {
	if userID == 0 {
		return models.WaterLog{}, nil
	}
	if _, err := ParseDay(entry.Day); err != nil {
		return models.WaterLog{}, err
	}
	existing, found, err := service.water.FindByIDAndUser(entry.ID, userID)
	if err != nil {
		return models.WaterLog{}, err
	}
	if !found {
		return models.WaterLog{}, ErrEntryNotFound
	}

	entry.UserID = userID
	entry.CreatedAt = existing.CreatedAt
	if err := service.water.Save(&entry); err != nil {
		return models.WaterLog{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertWaterLog(entry)
	service.recompute(userID, entry.Day)
	if existing.Day != entry.Day {
		service.recompute(userID, existing.Day)
	}
	return entry, nil
}

func (service *MetricService) DeleteWaterLog(userID uint, id uint) error {
	if userID == 0 {
		return nil
	}
	existing, found, err := service.water.FindByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrEntryNotFound
	}
	if err := service.water.DeleteByIDAndUser(id, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.DeleteWaterLog(userID, id)
	service.recompute(userID, existing.Day)
	return nil
}

// --- shots ---

func (service *MetricService) AddShot(userID uint, shot models.Shot) (models.Shot, error) {
	if userID == 0 {
		return models.Shot{}, nil
	}
	if _, err := ParseDay(shot.Day); err != nil {
		return models.Shot{}, err
	}
	shot.ID = 0
	shot.UserID = userID

	if err := service.shots.Create(&shot); err != nil {
		return models.Shot{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertShot(shot)
	service.recompute(userID, shot.Day)
	service.touchStreak(userID, models.MetricShots, shot.Day)
	service.publish(MetricEvent{Type: models.MetricShots, Value: 1, UserID: userID, Day: shot.Day})
	return shot, nil
}

func (service *MetricService) UpdateShot(userID uint, shot models.Shot) (models.Shot, error) {
	if userID == 0 {
		return models.Shot{}, nil
	}
	if _, err := ParseDay(shot.Day); err != nil {
		return models.Shot{}, err
	}
	existing, found, err := service.shots.FindByIDAndUser(shot.ID, userID)
	if err != nil {
		return models.Shot{}, err
	}
	if !found {
		return models.Shot{}, ErrEntryNotFound
	}

	shot.UserID = userID
	shot.CreatedAt = existing.CreatedAt
	if err := service.shots.Save(&shot); err != nil {
		return models.Shot{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertShot(shot)
	service.recompute(userID, shot.Day)
	if existing.Day != shot.Day {
		service.recompute(userID, existing.Day)
	}
	return shot, nil
}

func (service *MetricService) DeleteShot(userID uint, id uint) error {
	if userID == 0 {
		return nil
	}
	existing, found, err := service.shots.FindByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrEntryNotFound
	}
	if err := service.shots.DeleteByIDAndUser(id, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.DeleteShot(userID, id)
	service.recompute(userID, existing.Day)
	return nil
}

// --- side effects ---

func (service *MetricService) AddSideEffect(userID uint, effect models.SideEffect) (models.SideEffect, error) {
	if userID == 0 {
		return models.SideEffect{}, nil
	}
	if _, err := ParseDay(effect.Day); err != nil {
		return models.SideEffect{}, err
	}
	effect.ID = 0
	effect.UserID = userID

	if err := service.sideEffects.Create(&effect); err != nil {
		return models.SideEffect{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertSideEffect(effect)
	service.recompute(userID, effect.Day)
	return effect, nil
}

func (service *MetricService) UpdateSideEffect(userID uint, effect models.SideEffect) (models.SideEffect, error) {
	if userID == 0 {
		return models.SideEffect{}, nil
	}
	if _, err := ParseDay(effect.Day); err != nil {
		return models.SideEffect{}, err
	}
	existing, found, err := service.sideEffects.FindByIDAndUser(effect.ID, userID)
	if err != nil {
		return models.SideEffect{}, err
	}
	if !found {
		return models.SideEffect{}, ErrEntryNotFound
	}

	effect.UserID = userID
	effect.CreatedAt = existing.CreatedAt
	if err := service.sideEffects.Save(&effect); err != nil {
		return models.SideEffect{}, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.UpsertSideEffect(effect)
	service.recompute(userID, effect.Day)
	if existing.Day != effect.Day {
		service.recompute(userID, existing.Day)
	}
	return effect, nil
}

func (service *MetricService) DeleteSideEffect(userID uint, id uint) error {
	if userID == 0 {
		return nil
	}
	existing, found, err := service.sideEffects.FindByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrEntryNotFound
	}
	if err := service.sideEffects.DeleteByIDAndUser(id, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	service.mirror.DeleteSideEffect(userID, id)
	service.recompute(userID, existing.Day)
	return nil
}

// recompute re-derives the day's aggregate. The raw entry already landed in
// the remote store by the time this runs, so an aggregation failure is
// recoverable and only logged.
func (service *MetricService) recompute(userID uint, day string) {
	if _, err := service.aggregator.RecomputeDailyLog(userID, day); err != nil {
		service.logger.Warn("day recompute failed",
			zap.Uint("user_id", userID), zap.String("day", day), zap.Error(err))
	}
}

func (service *MetricService) touchStreak(userID uint, metric models.MetricType, day string) {
	if service.streaks == nil {
		return
	}
	if _, err := service.streaks.Touch(userID, metric, day); err != nil {
		service.logger.Warn("streak touch failed",
			zap.Uint("user_id", userID), zap.String("metric", string(metric)), zap.Error(err))
	}
}

func (service *MetricService) publish(event MetricEvent) {
	if service.publisher != nil {
		service.publisher.Publish(event)
	}
}
