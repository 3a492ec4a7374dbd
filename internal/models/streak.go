package models

import "time"

// Streak is the single per-user row holding every consecutive-day counter.
// Counters move only through the tracker's touch rules: +1 on an exactly
// one-day gap, no-op on a same-day repeat, restart at 1 after a longer gap.
type Streak struct {
	ID            uint `gorm:"primaryKey"`
	UserID        uint `gorm:"not null;uniqueIndex"`
	WeightCount   int  `gorm:"not null;default:0"`
	WeightLastDay string
	MealsCount    int `gorm:"not null;default:0"`
	MealsLastDay  string
	StepsCount    int `gorm:"not null;default:0"`
	StepsLastDay  string
	WaterCount    int `gorm:"not null;default:0"`
	WaterLastDay  string
	ShotsCount    int `gorm:"not null;default:0"`
	ShotsLastDay  string
	LoginCount    int `gorm:"not null;default:0"`
	LoginLastDay  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StreakCounter reads the counter and last event day for one metric type.
// Types without a streak return zero values.
func (streak Streak) StreakCounter(metric MetricType) (int, string) {
	switch metric {
	case MetricWeight:
		return streak.WeightCount, streak.WeightLastDay
	case MetricMeals:
		return streak.MealsCount, streak.MealsLastDay
	case MetricSteps:
		return streak.StepsCount, streak.StepsLastDay
	case MetricWater:
		return streak.WaterCount, streak.WaterLastDay
	case MetricShots:
		return streak.ShotsCount, streak.ShotsLastDay
	case MetricLogin:
		return streak.LoginCount, streak.LoginLastDay
	default:
		return 0, ""
	}
}

// StreakColumns maps one metric type to its count and last-day column names
// for partial-field upserts.
func StreakColumns(metric MetricType) (string, string, bool) {
	switch metric {
	case MetricWeight:
		return "weight_count", "weight_last_day", true
	case MetricMeals:
		return "meals_count", "meals_last_day", true
	case MetricSteps:
		return "steps_count", "steps_last_day", true
	case MetricWater:
		return "water_count", "water_last_day", true
	case MetricShots:
		return "shots_count", "shots_last_day", true
	case MetricLogin:
		return "login_count", "login_last_day", true
	default:
		return "", "", false
	}
}
