package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	Meals        *MealRepository
	WeightLogs   *WeightLogRepository
	StepLogs     *StepLogRepository
	WaterLogs    *WaterLogRepository
	Shots        *ShotRepository
	SideEffects  *SideEffectRepository
	DailyLogs    *DailyLogRepository
	Achievements *AchievementRepository
	Challenges   *ChallengeRepository
	Streaks      *StreakRepository
	Points       *PointsRepository
	Journey      *JourneyRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		Meals:        NewMealRepository(database),
		WeightLogs:   NewWeightLogRepository(database),
		StepLogs:     NewStepLogRepository(database),
		WaterLogs:    NewWaterLogRepository(database),
		Shots:        NewShotRepository(database),
		SideEffects:  NewSideEffectRepository(database),
		DailyLogs:    NewDailyLogRepository(database),
		Achievements: NewAchievementRepository(database),
		Challenges:   NewChallengeRepository(database),
		Streaks:      NewStreakRepository(database),
		Points:       NewPointsRepository(database),
		Journey:      NewJourneyRepository(database),
	}
}
