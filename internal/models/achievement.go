package models

import "time"

const (
	CategoryWeight     = "weight"
	CategoryNutrition  = "nutrition"
	CategoryActivity   = "activity"
	CategoryMedication = "medication"
	CategoryStreak     = "streak"
	CategoryJourney    = "journey"
)

// Achievement is the per-user unlock row for one catalog entry. Unlocking is
// terminal: once IsUnlocked is set the row never goes back.
type Achievement struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;uniqueIndex:uidx_achievements_user_code"`
	Code        string `gorm:"not null;uniqueIndex:uidx_achievements_user_code"`
	Title       string `gorm:"not null"`
	Description string
	Icon        string
	Category    string `gorm:"not null"`
	Points      int    `gorm:"not null;default:0"`
	IsUnlocked  bool   `gorm:"not null;default:false"`
	UnlockedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AchievementDefinition is one entry of the fixed build-time catalog.
// Trigger names the metric signal that can satisfy it; Unlocks decides
// whether a given logged value does.
type AchievementDefinition struct {
	Code        string
	Title       string
	Description string
	Icon        string
	Category    string
	Points      int
	Trigger     MetricType
	Unlocks     func(value float64, user User) bool
}

func anyValue(float64, User) bool { return true }

func atLeast(threshold float64) func(float64, User) bool {
	return func(value float64, _ User) bool { return value >= threshold }
}

func weightLossAtLeast(pounds float64) func(float64, User) bool {
	return func(value float64, user User) bool {
		return user.StartWeight > 0 && user.StartWeight-value >= pounds
	}
}

// AchievementCatalog returns the fixed achievement set. Codes are stable
// identifiers; per-user unlock state lives in Achievement rows.
func AchievementCatalog() []AchievementDefinition {
	return []AchievementDefinition{
		{Code: "first-weight-log", Title: "First Step", Description: "Log your weight for the first time", Icon: "scale", Category: CategoryWeight, Points: 10, Trigger: MetricWeight, Unlocks: anyValue},
		{Code: "weight-streak-7", Title: "Weight Watcher", Description: "Log your weight for 7 consecutive days", Icon: "trending-up", Category: CategoryStreak, Points: 25, Trigger: MetricWeightStreak, Unlocks: atLeast(7)},
		{Code: "first-meal-log", Title: "Food Tracker", Description: "Log your first meal", Icon: "utensils", Category: CategoryNutrition, Points: 10, Trigger: MetricMeals, Unlocks: anyValue},
		{Code: "protein-goal-5", Title: "Protein Pro", Description: "Meet your protein goal for the day", Icon: "egg", Category: CategoryNutrition, Points: 20, Trigger: MetricProtein, Unlocks: atLeast(50)},
		{Code: "steps-10k", Title: "Step Master", Description: "Reach 10,000 steps in a day", Icon: "footprints", Category: CategoryActivity, Points: 15, Trigger: MetricSteps, Unlocks: atLeast(10000)},
		{Code: "first-shot", Title: "First Shot", Description: "Log your first medication shot", Icon: "syringe", Category: CategoryMedication, Points: 10, Trigger: MetricShots, Unlocks: anyValue},
		{Code: "complete-stage", Title: "Journey Begins", Description: "Complete your first journey stage", Icon: "mountain", Category: CategoryJourney, Points: 30, Trigger: MetricJourney, Unlocks: atLeast(1)},
		{Code: "complete-all-stages", Title: "Summit Reached", Description: "Complete all journey stages", Icon: "flag", Category: CategoryJourney, Points: 100, Trigger: MetricJourney, Unlocks: atLeast(float64(len(JourneyStageCatalog())))},
		{Code: "login-streak-7", Title: "Dedicated Tracker", Description: "Log in for 7 consecutive days", Icon: "calendar-check", Category: CategoryStreak, Points: 25, Trigger: MetricLoginStreak, Unlocks: atLeast(7)},
		{Code: "first-goal-complete", Title: "Goal Getter", Description: "Complete your first goal", Icon: "target", Category: CategoryWeight, Points: 20, Trigger: MetricGoal, Unlocks: atLeast(1)},
		{Code: "weight-loss-5", Title: "Progress Milestone", Description: "Lose 5 pounds from your starting weight", Icon: "trending-down", Category: CategoryWeight, Points: 50, Trigger: MetricWeight, Unlocks: weightLossAtLeast(5)},
		{Code: "weight-loss-10", Title: "Major Progress", Description: "Lose 10 pounds from your starting weight", Icon: "award", Category: CategoryWeight, Points: 100, Trigger: MetricWeight, Unlocks: weightLossAtLeast(10)},
	}
}

// AchievementDefinitionByCode looks up one catalog entry.
func AchievementDefinitionByCode(code string) (AchievementDefinition, bool) {
	for _, definition := range AchievementCatalog() {
		if definition.Code == code {
			return definition, true
		}
	}
	return AchievementDefinition{}, false
}
