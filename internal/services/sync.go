package services

import (
	"errors"
	"sync"

	"github.com/oxbowlabs/taper/internal/cache"
	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

var ErrSyncFetchFailed = errors.New("collection fetch failed")

type SyncMealReader interface {
	ListByUser(userID uint) ([]models.Meal, error)
}

type SyncWeightReader interface {
	ListByUser(userID uint) ([]models.WeightLog, error)
}

type SyncStepReader interface {
	ListByUser(userID uint) ([]models.StepLog, error)
}

type SyncWaterReader interface {
	ListByUser(userID uint) ([]models.WaterLog, error)
}

type SyncShotReader interface {
	ListByUser(userID uint) ([]models.Shot, error)
}

type SyncSideEffectReader interface {
	ListByUser(userID uint) ([]models.SideEffect, error)
}

type SyncDailyLogReader interface {
	ListByUser(userID uint) ([]models.DailyLog, error)
}

type SyncReconciler interface {
	RefreshAllFromMetrics(userID uint) error
}

type SyncUnlockRefresher interface {
	RefreshUnlockState(userID uint)
}

type SyncChallengeSeeder interface {
	EnsureWeeklyChallenges(userID uint, today string) error
}

// SyncService hydrates the local mirror from the remote store on login and
// then re-derives every aggregate so the session starts from canonical data.
// The seven collection fetches run concurrently; a failed fetch leaves that
// collection's previous mirror state in place rather than clearing it.
type SyncService struct {
	meals        SyncMealReader
	weights      SyncWeightReader
	steps        SyncStepReader
	water        SyncWaterReader
	shots        SyncShotReader
	sideEffects  SyncSideEffectReader
	dailyLogs    SyncDailyLogReader
	mirror       *cache.Store
	reconciler   SyncReconciler
	achievements SyncUnlockRefresher
	challenges   SyncChallengeSeeder
	logger       *zap.Logger
}

func NewSyncService(
	meals SyncMealReader,
	weights SyncWeightReader,
	steps SyncStepReader,
	water SyncWaterReader,
	shots SyncShotReader,
	sideEffects SyncSideEffectReader,
	dailyLogs SyncDailyLogReader,
	mirror *cache.Store,
	reconciler SyncReconciler,
	achievements SyncUnlockRefresher,
	challenges SyncChallengeSeeder,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		meals:        meals,
		weights:      weights,
		steps:        steps,
		water:        water,
		shots:        shots,
		sideEffects:  sideEffects,
		dailyLogs:    dailyLogs,
		mirror:       mirror,
		reconciler:   reconciler,
		achievements: achievements,
		challenges:   challenges,
		logger:       logger,
	}
}

// Hydrate pulls every collection for the user, seeds the mirror, re-derives
// daily aggregates, refreshes gamification state, and instantiates the
// current week's challenges. Partial fetch failures are logged and reported
// but do not abort the remaining steps.
func (service *SyncService) Hydrate(userID uint, today string) error {
	if userID == 0 {
		return nil
	}

	var group sync.WaitGroup
	var failedMu sync.Mutex
	failed := 0

	fail := func(collection string, err error) {
		failedMu.Lock()
		failed++
		failedMu.Unlock()
		service.logger.Warn("collection fetch failed",
			zap.Uint("user_id", userID), zap.String("collection", collection), zap.Error(err))
	}

	group.Add(7)
	go func() {
		defer group.Done()
		entries, err := service.meals.ListByUser(userID)
		if err != nil {
			fail("meals", err)
			return
		}
		service.mirror.ReplaceMeals(userID, entries)
	}()
	go func() {
		defer group.Done()
		entries, err := service.weights.ListByUser(userID)
		if err != nil {
			fail("weight_logs", err)
			return
		}
		service.mirror.ReplaceWeightLogs(userID, entries)
	}()
	go func() {
		defer group.Done()
		entries, err := service.steps.ListByUser(userID)
		if err != nil {
			fail("step_logs", err)
			return
		}
		service.mirror.ReplaceStepLogs(userID, entries)
	}()
	go func() {
		defer group.Done()
		entries, err := service.water.ListByUser(userID)
		if err != nil {
			fail("water_logs", err)
			return
		}
		service.mirror.ReplaceWaterLogs(userID, entries)
	}()
	go func() {
		defer group.Done()
		entries, err := service.shots.ListByUser(userID)
		if err != nil {
			fail("shots", err)
			return
		}
		service.mirror.ReplaceShots(userID, entries)
	}()
	go func() {
		defer group.Done()
		entries, err := service.sideEffects.ListByUser(userID)
		if err != nil {
			fail("side_effects", err)
			return
		}
		service.mirror.ReplaceSideEffects(userID, entries)
	}()
	go func() {
		defer group.Done()
		entries, err := service.dailyLogs.ListByUser(userID)
		if err != nil {
			fail("daily_logs", err)
			return
		}
		service.mirror.ReplaceDailyLogs(userID, entries)
	}()
	group.Wait()

	if err := service.reconciler.RefreshAllFromMetrics(userID); err != nil {
		service.logger.Warn("aggregate refresh failed",
			zap.Uint("user_id", userID), zap.Error(err))
	}

	service.achievements.RefreshUnlockState(userID)

	if err := service.challenges.EnsureWeeklyChallenges(userID, today); err != nil {
		service.logger.Warn("weekly challenge seed failed",
			zap.Uint("user_id", userID), zap.Error(err))
	}

	if failed > 0 {
		return ErrSyncFetchFailed
	}
	return nil
}
