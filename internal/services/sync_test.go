package services

import (
	"errors"
	"testing"

	"github.com/oxbowlabs/taper/internal/cache"
	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

type stubCollectionReader struct {
	meals       []models.Meal
	mealsErr    error
	weights     []models.WeightLog
	steps       []models.StepLog
	water       []models.WaterLog
	shots       []models.Shot
	sideEffects []models.SideEffect
	dailyLogs   []models.DailyLog
}

type stubSyncMeals struct{ data *stubCollectionReader }

func (stub *stubSyncMeals) ListByUser(uint) ([]models.Meal, error) {
	return stub.data.meals, stub.data.mealsErr
}

type stubSyncWeights struct{ data *stubCollectionReader }

func (stub *stubSyncWeights) ListByUser(uint) ([]models.WeightLog, error) {
	return stub.data.weights, nil
}

type stubSyncSteps struct{ data *stubCollectionReader }

func (stub *stubSyncSteps) ListByUser(uint) ([]models.StepLog, error) {
	return stub.data.steps, nil
}

type stubSyncWater struct{ data *stubCollectionReader }

func (stub *stubSyncWater) ListByUser(uint) ([]models.WaterLog, error) {
	return stub.data.water, nil
}

type stubSyncShots struct{ data *stubCollectionReader }

func (stub *stubSyncShots) ListByUser(uint) ([]models.Shot, error) {
	return stub.data.shots, nil
}

type stubSyncSideEffects struct{ data *stubCollectionReader }

func (stub *stubSyncSideEffects) ListByUser(uint) ([]models.SideEffect, error) {
	return stub.data.sideEffects, nil
}

type stubSyncDailyLogs struct{ data *stubCollectionReader }

func (stub *stubSyncDailyLogs) ListByUser(uint) ([]models.DailyLog, error) {
	return stub.data.dailyLogs, nil
}

type stubReconciler struct {
	refreshed []uint
}

func (stub *stubReconciler) RefreshAllFromMetrics(userID uint) error {
	stub.refreshed = append(stub.refreshed, userID)
	return nil
}

type stubUnlockRefresher struct {
	refreshed []uint
}

func (stub *stubUnlockRefresher) RefreshUnlockState(userID uint) {
	stub.refreshed = append(stub.refreshed, userID)
}

type stubChallengeSeeder struct {
	seeded []string
}

func (stub *stubChallengeSeeder) EnsureWeeklyChallenges(_ uint, today string) error {
	stub.seeded = append(stub.seeded, today)
	return nil
}

func newSyncFixture(data *stubCollectionReader) (*SyncService, *cache.Store, *stubReconciler, *stubUnlockRefresher, *stubChallengeSeeder) {
	mirror := cache.New()
	reconciler := &stubReconciler{}
	refresher := &stubUnlockRefresher{}
	seeder := &stubChallengeSeeder{}
	service := NewSyncService(
		&stubSyncMeals{data: data},
		&stubSyncWeights{data: data},
		&stubSyncSteps{data: data},
		&stubSyncWater{data: data},
		&stubSyncShots{data: data},
		&stubSyncSideEffects{data: data},
		&stubSyncDailyLogs{data: data},
		mirror,
		reconciler,
		refresher,
		seeder,
		zap.NewNop(),
	)
	return service, mirror, reconciler, refresher, seeder
}

func TestHydrateSeedsMirrorAndRunsFollowups(t *testing.T) {
	data := &stubCollectionReader{
		meals:     []models.Meal{{ID: 1, UserID: 6, Day: "2026-01-05", Name: "Lunch"}},
		weights:   []models.WeightLog{{ID: 1, UserID: 6, Day: "2026-01-05", Weight: 200}},
		dailyLogs: []models.DailyLog{{ID: 1, UserID: 6, Day: "2026-01-05", ProteinGrams: 30}},
	}
	service, mirror, reconciler, refresher, seeder := newSyncFixture(data)

	if err := service.Hydrate(6, "2026-01-07"); err != nil {
		t.Fatalf("Hydrate() unexpected error: %v", err)
	}

	if len(mirror.Meals(6)) != 1 || len(mirror.WeightLogs(6)) != 1 {
		t.Fatal("Hydrate() did not seed raw collections")
	}
	if _, found := mirror.DailyLog(6, "2026-01-05"); !found {
		t.Fatal("Hydrate() did not seed daily logs")
	}
	if len(reconciler.refreshed) != 1 || reconciler.refreshed[0] != 6 {
		t.Fatalf("Hydrate() refreshed %v, want [6]", reconciler.refreshed)
	}
	if len(refresher.refreshed) != 1 {
		t.Fatal("Hydrate() did not refresh achievement state")
	}
	if len(seeder.seeded) != 1 || seeder.seeded[0] != "2026-01-07" {
		t.Fatalf("Hydrate() seeded challenges for %v, want [2026-01-07]", seeder.seeded)
	}
}

func TestHydratePartialFailureStillRunsFollowups(t *testing.T) {
	data := &stubCollectionReader{
		mealsErr: errors.New("store down"),
		weights:  []models.WeightLog{{ID: 1, UserID: 6, Day: "2026-01-05", Weight: 200}},
	}
	service, mirror, reconciler, _, seeder := newSyncFixture(data)

	if err := service.Hydrate(6, "2026-01-07"); !errors.Is(err, ErrSyncFetchFailed) {
		t.Fatalf("expected ErrSyncFetchFailed, got %v", err)
	}

	// The healthy collections still land, and the followup steps still run.
	if len(mirror.WeightLogs(6)) != 1 {
		t.Fatal("healthy collection not seeded after partial failure")
	}
	if len(reconciler.refreshed) != 1 || len(seeder.seeded) != 1 {
		t.Fatal("followup steps skipped after partial failure")
	}
}

func TestHydrateZeroUserIsNoop(t *testing.T) {
	data := &stubCollectionReader{}
	service, _, reconciler, _, _ := newSyncFixture(data)

	if err := service.Hydrate(0, "2026-01-07"); err != nil {
		t.Fatalf("Hydrate() zero user unexpected error: %v", err)
	}
	if len(reconciler.refreshed) != 0 {
		t.Fatal("Hydrate() zero user ran followups")
	}
}
