package models

import "time"

// JourneyStage is one per-user row of the fixed education track. Completion
// is terminal.
type JourneyStage struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;uniqueIndex:uidx_journey_stages_user_code"`
	Code        string `gorm:"not null;uniqueIndex:uidx_journey_stages_user_code"`
	Title       string `gorm:"not null"`
	Description string
	Position    int  `gorm:"not null"`
	IsCompleted bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Goal is a free-form user goal with 0-100 progress and terminal completion.
type Goal struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Category    string `gorm:"not null;default:other"`
	TargetDay   string
	Progress    int  `gorm:"not null;default:0"`
	IsCompleted bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type JourneyStageTemplate struct {
	Code        string
	Title       string
	Description string
	Position    int
}

// JourneyStageCatalog returns the fixed five-stage education track.
func JourneyStageCatalog() []JourneyStageTemplate {
	return []JourneyStageTemplate{
		{Code: "stage-1", Title: "GLP-1 Foundations", Description: "Learn the basics of GLP-1 medications and how they work.", Position: 1},
		{Code: "stage-2", Title: "Side Effects", Description: "Understand potential side effects and how to manage them.", Position: 2},
		{Code: "stage-3", Title: "Best Practices", Description: "Discover best practices for diet, exercise, and lifestyle.", Position: 3},
		{Code: "stage-4", Title: "Navigating Obstacles", Description: "Learn strategies for overcoming common challenges.", Position: 4},
		{Code: "stage-5", Title: "Sustainable Success", Description: "Build habits for long-term success and weight maintenance.", Position: 5},
	}
}
