package services

import (
	"errors"

	"github.com/oxbowlabs/taper/internal/cache"
	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

var (
	ErrMetricReadFailed    = errors.New("read metric entries failed")
	ErrDailyLogWriteFailed = errors.New("write daily log failed")
)

type AggregatorMealReader interface {
	ListByUserDay(userID uint, day string) ([]models.Meal, error)
	ListDistinctDays(userID uint) ([]string, error)
}

type AggregatorWeightReader interface {
	ListByUserDay(userID uint, day string) ([]models.WeightLog, error)
}

type AggregatorStepReader interface {
	ListByUserDay(userID uint, day string) ([]models.StepLog, error)
}

type AggregatorWaterReader interface {
	ListByUserDay(userID uint, day string) ([]models.WaterLog, error)
}

type AggregatorShotReader interface {
	ListByUserDay(userID uint, day string) ([]models.Shot, error)
}

type AggregatorSideEffectReader interface {
	ListByUserDay(userID uint, day string) ([]models.SideEffect, error)
}

type AggregatorDailyLogStore interface {
	Upsert(entry *models.DailyLog) error
	ListByUser(userID uint) ([]models.DailyLog, error)
}

type AggregatorPublisher interface {
	Publish(event MetricEvent)
}

// Aggregator rebuilds the canonical per-day record from that day's raw
// entries. Recomputing is a full-sum rebuild, never a delta apply, so
// running it twice over unchanged inputs yields identical output and
// last-write-wins upserts stay safe.
type Aggregator struct {
	meals       AggregatorMealReader
	weights     AggregatorWeightReader
	steps       AggregatorStepReader
	water       AggregatorWaterReader
	shots       AggregatorShotReader
	sideEffects AggregatorSideEffectReader
	dailyLogs   AggregatorDailyLogStore
	mirror      *cache.Store
	publisher   AggregatorPublisher
	logger      *zap.Logger
}

func NewAggregator(
	meals AggregatorMealReader,
	weights AggregatorWeightReader,
	steps AggregatorStepReader,
	water AggregatorWaterReader,
	shots AggregatorShotReader,
	sideEffects AggregatorSideEffectReader,
	dailyLogs AggregatorDailyLogStore,
	mirror *cache.Store,
	publisher AggregatorPublisher,
	logger *zap.Logger,
) *Aggregator {
	return &Aggregator{
		meals:       meals,
		weights:     weights,
		steps:       steps,
		water:       water,
		shots:       shots,
		sideEffects: sideEffects,
		dailyLogs:   dailyLogs,
		mirror:      mirror,
		publisher:   publisher,
		logger:      logger,
	}
}

// RecomputeDailyLog rebuilds the aggregate for one day, upserts it remotely,
// reflects it into the local mirror, and signals each changed numeric field.
// A failed remote write is logged and reported, but the mirror still takes
// the recomputed value so the UI can proceed optimistically.
func (aggregator *Aggregator) RecomputeDailyLog(userID uint, day string) (models.DailyLog, error) {
	if userID == 0 {
		return models.DailyLog{}, nil
	}
	if _, err := ParseDay(day); err != nil {
		return models.DailyLog{}, err
	}

	entry, err := aggregator.buildDailyLog(userID, day)
	if err != nil {
		return models.DailyLog{}, err
	}

	previous, hadPrevious := aggregator.mirror.DailyLog(userID, day)

	writeErr := aggregator.dailyLogs.Upsert(&entry)
	if writeErr != nil {
		aggregator.logger.Warn("daily log upsert failed",
			zap.Uint("user_id", userID), zap.String("day", day), zap.Error(writeErr))
	}

	aggregator.mirror.SetDailyLog(entry)

	if writeErr != nil {
		return entry, ErrDailyLogWriteFailed
	}

	aggregator.signalChangedFields(entry, previous, hadPrevious)
	return entry, nil
}

// RefreshAllFromMetrics recomputes every day that has at least one meal
// entry, then replaces the mirror's daily logs with the canonical remote
// set. Used after a bulk fetch to eliminate drift between cached and stored
// aggregates.
func (aggregator *Aggregator) RefreshAllFromMetrics(userID uint) error {
	if userID == 0 {
		return nil
	}

	days, err := aggregator.meals.ListDistinctDays(userID)
	if err != nil {
		return ErrMetricReadFailed
	}

	for _, day := range days {
		if _, err := aggregator.RecomputeDailyLog(userID, day); err != nil {
			aggregator.logger.Warn("daily log refresh failed",
				zap.Uint("user_id", userID), zap.String("day", day), zap.Error(err))
		}
	}

	canonical, err := aggregator.dailyLogs.ListByUser(userID)
	if err != nil {
		return ErrMetricReadFailed
	}
	aggregator.mirror.ReplaceDailyLogs(userID, canonical)
	return nil
}

func (aggregator *Aggregator) buildDailyLog(userID uint, day string) (models.DailyLog, error) {
	meals, err := aggregator.meals.ListByUserDay(userID, day)
	if err != nil {
		return models.DailyLog{}, ErrMetricReadFailed
	}
	weightLogs, err := aggregator.weights.ListByUserDay(userID, day)
	if err != nil {
		return models.DailyLog{}, ErrMetricReadFailed
	}
	stepLogs, err := aggregator.steps.ListByUserDay(userID, day)
	if err != nil {
		return models.DailyLog{}, ErrMetricReadFailed
	}
	waterLogs, err := aggregator.water.ListByUserDay(userID, day)
	if err != nil {
		return models.DailyLog{}, ErrMetricReadFailed
	}
	shots, err := aggregator.shots.ListByUserDay(userID, day)
	if err != nil {
		return models.DailyLog{}, ErrMetricReadFailed
	}
	sideEffects, err := aggregator.sideEffects.ListByUserDay(userID, day)
	if err != nil {
		return models.DailyLog{}, ErrMetricReadFailed
	}

	entry := models.DailyLog{
		UserID:        userID,
		Day:           day,
		MealIDs:       make([]uint, 0, len(meals)),
		SideEffectIDs: make([]uint, 0, len(sideEffects)),
	}

	for _, meal := range meals {
		entry.FruitsVeggies += meal.FruitsVeggies
		entry.ProteinGrams += meal.ProteinGrams
		entry.MealIDs = append(entry.MealIDs, meal.ID)
	}
	for _, log := range waterLogs {
		entry.WaterOz += log.AmountOz
	}
	for _, log := range stepLogs {
		entry.Steps += log.Count
	}
	for _, effect := range sideEffects {
		entry.SideEffectIDs = append(entry.SideEffectIDs, effect.ID)
	}
	if len(weightLogs) > 0 {
		latest := weightLogs[len(weightLogs)-1].Weight
		entry.Weight = &latest
	}
	entry.ShotTaken = len(shots) > 0

	return entry, nil
}

// signalChangedFields publishes one event per numeric field whose recomputed
// total differs from the mirrored value, carrying the new day total.
func (aggregator *Aggregator) signalChangedFields(entry models.DailyLog, previous models.DailyLog, hadPrevious bool) {
	if aggregator.publisher == nil {
		return
	}

	changed := func(current float64, prior float64) bool {
		return !hadPrevious || current != prior
	}

	if changed(entry.ProteinGrams, previous.ProteinGrams) {
		aggregator.publisher.Publish(MetricEvent{Type: models.MetricProtein, Value: entry.ProteinGrams, UserID: entry.UserID, Day: entry.Day})
	}
	if changed(entry.FruitsVeggies, previous.FruitsVeggies) {
		aggregator.publisher.Publish(MetricEvent{Type: models.MetricFruitsVeggies, Value: entry.FruitsVeggies, UserID: entry.UserID, Day: entry.Day})
	}
	if changed(float64(entry.Steps), float64(previous.Steps)) {
		aggregator.publisher.Publish(MetricEvent{Type: models.MetricSteps, Value: float64(entry.Steps), UserID: entry.UserID, Day: entry.Day})
	}
	if changed(entry.WaterOz, previous.WaterOz) {
		aggregator.publisher.Publish(MetricEvent{Type: models.MetricWater, Value: entry.WaterOz, UserID: entry.UserID, Day: entry.Day})
	}
}
