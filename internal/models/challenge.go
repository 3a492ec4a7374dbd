package models

import "time"

// Challenge is one time-boxed weekly progress tracker. Key is derived from
// the template slug and the week's start day, so re-instantiating a week is
// idempotent. Progress only moves toward 100 while the window is open;
// completion is terminal.
type Challenge struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;uniqueIndex:uidx_challenges_user_key"`
	Key         string `gorm:"not null;uniqueIndex:uidx_challenges_user_key"`
	Title       string `gorm:"not null"`
	Description string
	Category    string     `gorm:"not null"`
	Metric      MetricType `gorm:"not null"`
	StartDay    string     `gorm:"not null"`
	EndDay      string     `gorm:"not null"`
	Progress    int        `gorm:"not null;default:0"`
	IsCompleted bool       `gorm:"not null;default:false"`
	Reward      int        `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChallengeTemplate describes one weekly challenge kind: which metric
// signal advances it, the value that counts as a qualifying day, and how
// much progress one qualifying day is worth.
type ChallengeTemplate struct {
	Slug        string
	Title       string
	Description string
	Category    string
	Metric      MetricType
	Threshold   float64
	Delta       int
	Reward      int
}

// WeeklyChallengeTemplates is the fixed set instantiated at the start of
// each week for every user.
func WeeklyChallengeTemplates() []ChallengeTemplate {
	return []ChallengeTemplate{
		{
			Slug:        "protein-week",
			Title:       "Protein Power",
			Description: "Meet your daily protein goal 5 times this week",
			Category:    CategoryNutrition,
			Metric:      MetricProtein,
			Threshold:   50,
			Delta:       20,
			Reward:      50,
		},
		{
			Slug:        "steps-week",
			Title:       "Step Challenge",
			Description: "Reach 8,000 steps at least 4 days this week",
			Category:    CategoryActivity,
			Metric:      MetricSteps,
			Threshold:   8000,
			Delta:       25,
			Reward:      50,
		},
		{
			Slug:        "fruits-week",
			Title:       "Fruits & Veggies",
			Description: "Log at least 4 servings of fruits and vegetables daily for 5 days",
			Category:    CategoryNutrition,
			Metric:      MetricFruitsVeggies,
			Threshold:   4,
			Delta:       20,
			Reward:      50,
		},
	}
}
