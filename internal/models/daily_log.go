package models

import "time"

// DailyLog is the per-calendar-day aggregate derived from that day's raw
// metric entries. Numeric fields are recomputed sums, never edited by hand;
// Weight holds the latest same-day reading. Day is the canonical YYYY-MM-DD
// form so range comparisons stay lexicographic.
type DailyLog struct {
	ID            uint     `gorm:"primaryKey"`
	UserID        uint     `gorm:"not null;uniqueIndex:uidx_daily_logs_user_day"`
	Day           string   `gorm:"not null;uniqueIndex:uidx_daily_logs_user_day"`
	FruitsVeggies float64  `gorm:"not null;default:0"`
	ProteinGrams  float64  `gorm:"not null;default:0"`
	WaterOz       float64  `gorm:"not null;default:0"`
	Steps         int      `gorm:"not null;default:0"`
	Weight        *float64 `gorm:"default:null"`
	ShotTaken     bool     `gorm:"not null;default:false"`
	MealIDs       []uint   `gorm:"serializer:json"`
	SideEffectIDs []uint   `gorm:"serializer:json"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WeeklyScore is derived on demand from daily logs in a range and never
// persisted. Each field is an integer percentage in [0, 100].
type WeeklyScore struct {
	FruitsVeggies int `json:"fruitsVeggies"`
	Protein       int `json:"protein"`
	Steps         int `json:"steps"`
	Overall       int `json:"overall"`
}
