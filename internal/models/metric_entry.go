package models

import "time"

// MetricType names the signal carried by a logged value. Raw logging
// operations emit the entry-level types; the daily aggregator emits the
// per-field types with that day's recomputed totals; the streak tracker
// emits the streak types with the current counter value.
type MetricType string

const (
	MetricWeight        MetricType = "weight"
	MetricMeals         MetricType = "meals"
	MetricSteps         MetricType = "steps"
	MetricWater         MetricType = "water"
	MetricShots         MetricType = "shots"
	MetricProtein       MetricType = "protein"
	MetricFruitsVeggies MetricType = "fruits_veggies"
	MetricLogin         MetricType = "login"
	MetricWeightStreak  MetricType = "weight_streak"
	MetricLoginStreak   MetricType = "login_streak"
	MetricJourney       MetricType = "journey"
	MetricGoal          MetricType = "goal"
)

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

type Meal struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"not null;index:idx_meals_user_day"`
	Day           string `gorm:"not null;index:idx_meals_user_day"`
	Time          string
	Name          string `gorm:"not null"`
	Description   string
	FruitsVeggies float64 `gorm:"not null;default:0"`
	ProteinGrams  float64 `gorm:"not null;default:0"`
	Calories      float64 `gorm:"not null;default:0"`
	CarbsGrams    float64 `gorm:"not null;default:0"`
	FatGrams      float64 `gorm:"not null;default:0"`
	IsSaved       bool    `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type WeightLog struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"not null;index:idx_weight_logs_user_day"`
	Day       string  `gorm:"not null;index:idx_weight_logs_user_day"`
	Weight    float64 `gorm:"not null"`
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type StepLog struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_step_logs_user_day"`
	Day       string `gorm:"not null;index:idx_step_logs_user_day"`
	Count     int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type WaterLog struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"not null;index:idx_water_logs_user_day"`
	Day       string  `gorm:"not null;index:idx_water_logs_user_day"`
	AmountOz  float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Shot struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index:idx_shots_user_day"`
	Day        string `gorm:"not null;index:idx_shots_user_day"`
	Time       string
	Medication string
	Site       string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type SideEffect struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_side_effects_user_day"`
	Day       string `gorm:"not null;index:idx_side_effects_user_day"`
	Type      string `gorm:"not null"`
	Severity  string `gorm:"not null;default:mild"`
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
