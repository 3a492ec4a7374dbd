package services

import (
	"errors"
	"testing"

	"github.com/oxbowlabs/taper/internal/cache"
	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

type stubMetricData struct {
	meals       []models.Meal
	weights     []models.WeightLog
	steps       []models.StepLog
	water       []models.WaterLog
	shots       []models.Shot
	sideEffects []models.SideEffect
}

func (stub *stubMetricData) days() []string {
	seen := make(map[string]bool)
	days := make([]string, 0)
	for _, meal := range stub.meals {
		if !seen[meal.Day] {
			seen[meal.Day] = true
			days = append(days, meal.Day)
		}
	}
	return days
}

type stubMealReader struct{ data *stubMetricData }

func (stub *stubMealReader) ListByUserDay(_ uint, day string) ([]models.Meal, error) {
	matched := make([]models.Meal, 0)
	for _, meal := range stub.data.meals {
		if meal.Day == day {
			matched = append(matched, meal)
		}
	}
	return matched, nil
}

func (stub *stubMealReader) ListDistinctDays(uint) ([]string, error) {
	return stub.data.days(), nil
}

type stubWeightReader struct{ data *stubMetricData }

func (stub *stubWeightReader) ListByUserDay(_ uint, day string) ([]models.WeightLog, error) {
	matched := make([]models.WeightLog, 0)
	for _, entry := range stub.data.weights {
		if entry.Day == day {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

type stubStepReader struct{ data *stubMetricData }

func (stub *stubStepReader) ListByUserDay(_ uint, day string) ([]models.StepLog, error) {
	matched := make([]models.StepLog, 0)
	for _, entry := range stub.data.steps {
		if entry.Day == day {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

type stubWaterReader struct{ data *stubMetricData }

func (stub *stubWaterReader) ListByUserDay(_ uint, day string) ([]models.WaterLog, error) {
	matched := make([]models.WaterLog, 0)
	for _, entry := range stub.data.water {
		if entry.Day == day {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

type stubShotReader struct{ data *stubMetricData }

func (stub *stubShotReader) ListByUserDay(_ uint, day string) ([]models.Shot, error) {
	matched := make([]models.Shot, 0)
	for _, entry := range stub.data.shots {
		if entry.Day == day {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

type stubSideEffectReader struct{ data *stubMetricData }

func (stub *stubSideEffectReader) ListByUserDay(_ uint, day string) ([]models.SideEffect, error) {
	matched := make([]models.SideEffect, 0)
	for _, entry := range stub.data.sideEffects {
		if entry.Day == day {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

type stubDailyLogStore struct {
	upserts   []models.DailyLog
	upsertErr error
}

func (stub *stubDailyLogStore) Upsert(entry *models.DailyLog) error {
	if stub.upsertErr != nil {
		return stub.upsertErr
	}
	stub.upserts = append(stub.upserts, *entry)
	return nil
}

func (stub *stubDailyLogStore) ListByUser(uint) ([]models.DailyLog, error) {
	byDay := make(map[string]models.DailyLog)
	for _, entry := range stub.upserts {
		byDay[entry.Day] = entry
	}
	logs := make([]models.DailyLog, 0, len(byDay))
	for _, entry := range byDay {
		logs = append(logs, entry)
	}
	return logs, nil
}

func newAggregatorFixture(data *stubMetricData, store *stubDailyLogStore, publisher AggregatorPublisher) (*Aggregator, *cache.Store) {
	mirror := cache.New()
	aggregator := NewAggregator(
		&stubMealReader{data: data},
		&stubWeightReader{data: data},
		&stubStepReader{data: data},
		&stubWaterReader{data: data},
		&stubShotReader{data: data},
		&stubSideEffectReader{data: data},
		store,
		mirror,
		publisher,
		zap.NewNop(),
	)
	return aggregator, mirror
}

func TestRecomputeDailyLogSumsCategories(t *testing.T) {
	data := &stubMetricData{
		meals: []models.Meal{
			{ID: 1, UserID: 2, Day: "2026-01-05", ProteinGrams: 20, FruitsVeggies: 2},
			{ID: 2, UserID: 2, Day: "2026-01-05", ProteinGrams: 15, FruitsVeggies: 1},
			{ID: 3, UserID: 2, Day: "2026-01-05", ProteinGrams: 20, FruitsVeggies: 3},
			{ID: 4, UserID: 2, Day: "2026-01-06", ProteinGrams: 40},
		},
		weights:     []models.WeightLog{{ID: 1, UserID: 2, Day: "2026-01-05", Weight: 201.5}, {ID: 2, UserID: 2, Day: "2026-01-05", Weight: 200.5}},
		steps:       []models.StepLog{{ID: 1, UserID: 2, Day: "2026-01-05", Count: 4000}, {ID: 2, UserID: 2, Day: "2026-01-05", Count: 3000}},
		water:       []models.WaterLog{{ID: 1, UserID: 2, Day: "2026-01-05", AmountOz: 16}, {ID: 2, UserID: 2, Day: "2026-01-05", AmountOz: 8}},
		shots:       []models.Shot{{ID: 1, UserID: 2, Day: "2026-01-05"}},
		sideEffects: []models.SideEffect{{ID: 9, UserID: 2, Day: "2026-01-05", Type: "nausea", Severity: models.SeverityMild}},
	}
	store := &stubDailyLogStore{}
	aggregator, mirror := newAggregatorFixture(data, store, nil)

	entry, err := aggregator.RecomputeDailyLog(2, "2026-01-05")
	if err != nil {
		t.Fatalf("RecomputeDailyLog() unexpected error: %v", err)
	}

	if entry.ProteinGrams != 55 {
		t.Fatalf("protein = %v, want 55", entry.ProteinGrams)
	}
	if entry.FruitsVeggies != 6 {
		t.Fatalf("fruits/veggies = %v, want 6", entry.FruitsVeggies)
	}
	if entry.Steps != 7000 {
		t.Fatalf("steps = %d, want 7000", entry.Steps)
	}
	if entry.WaterOz != 24 {
		t.Fatalf("water = %v, want 24", entry.WaterOz)
	}
	if entry.Weight == nil || *entry.Weight != 200.5 {
		t.Fatalf("weight = %v, want latest same-day value 200.5", entry.Weight)
	}
	if !entry.ShotTaken {
		t.Fatal("shot taken should be true")
	}
	if len(entry.MealIDs) != 3 || len(entry.SideEffectIDs) != 1 {
		t.Fatalf("linked IDs = %v / %v, want 3 meals and 1 side effect", entry.MealIDs, entry.SideEffectIDs)
	}

	cached, found := mirror.DailyLog(2, "2026-01-05")
	if !found || cached.ProteinGrams != 55 {
		t.Fatalf("mirror entry = %+v (found %v), want recomputed aggregate", cached, found)
	}
}

func TestRecomputeDailyLogIsIdempotent(t *testing.T) {
	data := &stubMetricData{
		meals: []models.Meal{{ID: 1, UserID: 2, Day: "2026-01-05", ProteinGrams: 30}},
	}
	store := &stubDailyLogStore{}
	aggregator, _ := newAggregatorFixture(data, store, nil)

	first, err := aggregator.RecomputeDailyLog(2, "2026-01-05")
	if err != nil {
		t.Fatalf("RecomputeDailyLog() unexpected error: %v", err)
	}
	second, err := aggregator.RecomputeDailyLog(2, "2026-01-05")
	if err != nil {
		t.Fatalf("RecomputeDailyLog() repeat unexpected error: %v", err)
	}

	if first.ProteinGrams != second.ProteinGrams || first.Steps != second.Steps || first.WaterOz != second.WaterOz {
		t.Fatalf("repeat recompute diverged: %+v vs %+v", first, second)
	}
}

func TestRecomputeDailyLogSignalsOnlyChangedFields(t *testing.T) {
	data := &stubMetricData{
		meals: []models.Meal{{ID: 1, UserID: 2, Day: "2026-01-05", ProteinGrams: 30, FruitsVeggies: 2}},
	}
	store := &stubDailyLogStore{}
	publisher := &recordingPublisher{}
	aggregator, _ := newAggregatorFixture(data, store, publisher)

	if _, err := aggregator.RecomputeDailyLog(2, "2026-01-05"); err != nil {
		t.Fatalf("RecomputeDailyLog() unexpected error: %v", err)
	}
	firstRound := len(publisher.events)
	if firstRound == 0 {
		t.Fatal("first recompute should signal changed fields")
	}

	// Nothing changed; the repeat must stay silent.
	if _, err := aggregator.RecomputeDailyLog(2, "2026-01-05"); err != nil {
		t.Fatalf("RecomputeDailyLog() repeat unexpected error: %v", err)
	}
	if len(publisher.events) != firstRound {
		t.Fatalf("unchanged recompute emitted %d extra events", len(publisher.events)-firstRound)
	}

	// A new meal moves protein and fruits/veggies only.
	data.meals = append(data.meals, models.Meal{ID: 2, UserID: 2, Day: "2026-01-05", ProteinGrams: 25})
	if _, err := aggregator.RecomputeDailyLog(2, "2026-01-05"); err != nil {
		t.Fatalf("RecomputeDailyLog() unexpected error: %v", err)
	}
	extra := publisher.events[firstRound:]
	if len(extra) != 1 || extra[0].Type != models.MetricProtein || extra[0].Value != 55 {
		t.Fatalf("expected single protein event with value 55, got %+v", extra)
	}
}

func TestRecomputeDailyLogKeepsMirrorOnWriteFailure(t *testing.T) {
	data := &stubMetricData{
		meals: []models.Meal{{ID: 1, UserID: 2, Day: "2026-01-05", ProteinGrams: 30}},
	}
	store := &stubDailyLogStore{upsertErr: errors.New("store down")}
	publisher := &recordingPublisher{}
	aggregator, mirror := newAggregatorFixture(data, store, publisher)

	_, err := aggregator.RecomputeDailyLog(2, "2026-01-05")
	if !errors.Is(err, ErrDailyLogWriteFailed) {
		t.Fatalf("expected ErrDailyLogWriteFailed, got %v", err)
	}

	cached, found := mirror.DailyLog(2, "2026-01-05")
	if !found || cached.ProteinGrams != 30 {
		t.Fatalf("mirror should hold recomputed value despite write failure, got %+v (found %v)", cached, found)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("failed write should not signal, got %+v", publisher.events)
	}
}

func TestRefreshAllFromMetricsRebuildsEveryDay(t *testing.T) {
	data := &stubMetricData{
		meals: []models.Meal{
			{ID: 1, UserID: 2, Day: "2026-01-05", ProteinGrams: 30},
			{ID: 2, UserID: 2, Day: "2026-01-06", ProteinGrams: 45},
		},
	}
	store := &stubDailyLogStore{}
	aggregator, mirror := newAggregatorFixture(data, store, nil)

	if err := aggregator.RefreshAllFromMetrics(2); err != nil {
		t.Fatalf("RefreshAllFromMetrics() unexpected error: %v", err)
	}

	logs := mirror.DailyLogsInRange(2, "2026-01-01", "2026-01-31")
	if len(logs) != 2 {
		t.Fatalf("mirror holds %d daily logs, want 2", len(logs))
	}
	if logs[0].Day != "2026-01-05" || logs[1].Day != "2026-01-06" {
		t.Fatalf("mirror days = %s, %s, want ordered 2026-01-05, 2026-01-06", logs[0].Day, logs[1].Day)
	}
}
