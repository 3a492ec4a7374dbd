// Package cache holds the in-process mirror of the remote collections. The
// engine writes remote first, then reflects the change here; reads served
// from the mirror stay fast and survive transient store failures.
package cache

import (
	"sort"
	"sync"

	"github.com/oxbowlabs/taper/internal/models"
)

type Store struct {
	mu          sync.RWMutex
	meals       map[uint][]models.Meal
	weightLogs  map[uint][]models.WeightLog
	stepLogs    map[uint][]models.StepLog
	waterLogs   map[uint][]models.WaterLog
	shots       map[uint][]models.Shot
	sideEffects map[uint][]models.SideEffect
	dailyLogs   map[uint]map[string]models.DailyLog
}

func New() *Store {
	return &Store{
		meals:       make(map[uint][]models.Meal),
		weightLogs:  make(map[uint][]models.WeightLog),
		stepLogs:    make(map[uint][]models.StepLog),
		waterLogs:   make(map[uint][]models.WaterLog),
		shots:       make(map[uint][]models.Shot),
		sideEffects: make(map[uint][]models.SideEffect),
		dailyLogs:   make(map[uint]map[string]models.DailyLog),
	}
}

// --- meals ---

func (store *Store) ReplaceMeals(userID uint, meals []models.Meal) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.meals[userID] = append([]models.Meal(nil), meals...)
}

func (store *Store) UpsertMeal(meal models.Meal) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.meals[meal.UserID]
	for index := range entries {
		if entries[index].ID == meal.ID {
			entries[index] = meal
			return
		}
	}
	store.meals[meal.UserID] = append(entries, meal)
}

func (store *Store) DeleteMeal(userID uint, id uint) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.meals[userID]
	filtered := entries[:0]
	for _, entry := range entries {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	store.meals[userID] = filtered
}

func (store *Store) Meals(userID uint) []models.Meal {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return append([]models.Meal(nil), store.meals[userID]...)
}

func (store *Store) MealsByDay(userID uint, day string) []models.Meal {
	store.mu.RLock()
	defer store.mu.RUnlock()
	matched := make([]models.Meal, 0)
	for _, entry := range store.meals[userID] {
		if entry.Day == day {
			matched = append(matched, entry)
		}
	}
	return matched
}

// --- weight logs ---

func (store *Store) ReplaceWeightLogs(userID uint, logs []models.WeightLog) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.weightLogs[userID] = append([]models.WeightLog(nil), logs...)
}

func (store *Store) UpsertWeightLog(entry models.WeightLog) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.weightLogs[entry.UserID]
	for index := range entries {
		if entries[index].ID == entry.ID {
			entries[index] = entry
			return
		}
	}
	store.weightLogs[entry.UserID] = append(entries, entry)
}

func (store *Store) DeleteWeightLog(userID uint, id uint) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.weightLogs[userID]
	filtered := entries[:0]
	for _, entry := range entries {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	store.weightLogs[userID] = filtered
}

func (store *Store) WeightLogs(userID uint) []models.WeightLog {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return append([]models.WeightLog(nil), store.weightLogs[userID]...)
}

// --- step logs ---

func (store *Store) ReplaceStepLogs(userID uint, logs []models.StepLog) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.stepLogs[userID] = append([]models.StepLog(nil), logs...)
}

func (store *Store) UpsertStepLog(entry models.StepLog) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.stepLogs[entry.UserID]
	for index := range entries {
		if entries[index].ID == entry.ID {
			entries[index] = entry
			return
		}
	}
	store.stepLogs[entry.UserID] = append(entries, entry)
}

func (store *Store) DeleteStepLog(userID uint, id uint) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.stepLogs[userID]
	filtered := entries[:0]
	for _, entry := range entries {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	store.stepLogs[userID] = filtered
}

func (store *Store) StepLogs(userID uint) []models.StepLog {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return append([]models.StepLog(nil), store.stepLogs[userID]...)
}

// --- water logs ---

func (store *Store) ReplaceWaterLogs(userID uint, logs []models.WaterLog) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.waterLogs[userID] = append([]models.WaterLog(nil), logs...)
}

func (store *Store) UpsertWaterLog(entry models.WaterLog) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.waterLogs[entry.UserID]
	for index := range entries {
		if entries[index].ID == entry.ID {
			entries[index] = entry
			return
		}
	}
	store.waterLogs[entry.UserID] = append(entries, entry)
}

func (store *Store) DeleteWaterLog(userID uint, id uint) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.waterLogs[userID]
	filtered := entries[:0]
	for _, entry := range entries {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	store.waterLogs[userID] = filtered
}

func (store *Store) WaterLogs(userID uint) []models.WaterLog {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return append([]models.WaterLog(nil), store.waterLogs[userID]...)
}

// --- shots ---

func (store *Store) ReplaceShots(userID uint, shots []models.Shot) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.shots[userID] = append([]models.Shot(nil), shots...)
}

func (store *Store) UpsertShot(shot models.Shot) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.shots[shot.UserID]
	for index := range entries {
		if entries[index].ID == shot.ID {
			entries[index] = shot
			return
		}
	}
	store.shots[shot.UserID] = append(entries, shot)
}

func (store *Store) DeleteShot(userID uint, id uint) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.shots[userID]
	filtered := entries[:0]
	for _, entry := range entries {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	store.shots[userID] = filtered
}

func (store *Store) Shots(userID uint) []models.Shot {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return append([]models.Shot(nil), store.shots[userID]...)
}

// --- side effects ---

func (store *Store) ReplaceSideEffects(userID uint, effects []models.SideEffect) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.sideEffects[userID] = append([]models.SideEffect(nil), effects...)
}

func (store *Store) UpsertSideEffect(effect models.SideEffect) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.sideEffects[effect.UserID]
	for index := range entries {
		if entries[index].ID == effect.ID {
			entries[index] = effect
			return
		}
	}
	store.sideEffects[effect.UserID] = append(entries, effect)
}

func (store *Store) DeleteSideEffect(userID uint, id uint) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := store.sideEffects[userID]
	filtered := entries[:0]
	for _, entry := range entries {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	store.sideEffects[userID] = filtered
}

func (store *Store) SideEffects(userID uint) []models.SideEffect {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return append([]models.SideEffect(nil), store.sideEffects[userID]...)
}

// --- daily logs ---

func (store *Store) ReplaceDailyLogs(userID uint, logs []models.DailyLog) {
	store.mu.Lock()
	defer store.mu.Unlock()
	byDay := make(map[string]models.DailyLog, len(logs))
	for _, entry := range logs {
		byDay[entry.Day] = entry
	}
	store.dailyLogs[userID] = byDay
}

// SetDailyLog inserts or replaces the aggregate for one day. The aggregator
// always writes a full recompute, so a replace cannot lose fields owned by
// other call sites.
func (store *Store) SetDailyLog(entry models.DailyLog) {
	store.mu.Lock()
	defer store.mu.Unlock()
	byDay := store.dailyLogs[entry.UserID]
	if byDay == nil {
		byDay = make(map[string]models.DailyLog)
		store.dailyLogs[entry.UserID] = byDay
	}
	byDay[entry.Day] = entry
}

func (store *Store) DailyLog(userID uint, day string) (models.DailyLog, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	entry, found := store.dailyLogs[userID][day]
	return entry, found
}

func (store *Store) DeleteDailyLog(userID uint, day string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.dailyLogs[userID], day)
}

// DailyLogsInRange returns the aggregates whose day falls in [fromDay,
// toDay], both ends inclusive, ordered by day.
func (store *Store) DailyLogsInRange(userID uint, fromDay string, toDay string) []models.DailyLog {
	store.mu.RLock()
	defer store.mu.RUnlock()
	matched := make([]models.DailyLog, 0)
	for day, entry := range store.dailyLogs[userID] {
		if day >= fromDay && day <= toDay {
			matched = append(matched, entry)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Day < matched[j].Day })
	return matched
}
