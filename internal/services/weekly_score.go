package services

import (
	"math"

	"github.com/oxbowlabs/taper/internal/models"
)

// Daily adherence targets used by the weekly score.
const (
	TargetFruitsVeggiesPerDay = 5
	TargetProteinGramsPerDay  = 100
	TargetStepsPerDay         = 10000
)

type ScoreDayReader interface {
	DailyLogsInRange(userID uint, fromDay string, toDay string) []models.DailyLog
}

// ScoreService derives weekly adherence scores from daily logs. It is
// read-only: nothing it computes is persisted.
type ScoreService struct {
	days ScoreDayReader
}

func NewScoreService(days ScoreDayReader) *ScoreService {
	return &ScoreService{days: days}
}

// WeeklyScore computes the score over the inclusive [fromDay, toDay] range.
func (service *ScoreService) WeeklyScore(userID uint, fromDay string, toDay string) (models.WeeklyScore, error) {
	if _, err := ParseDay(fromDay); err != nil {
		return models.WeeklyScore{}, err
	}
	if _, err := ParseDay(toDay); err != nil {
		return models.WeeklyScore{}, err
	}
	logs := service.days.DailyLogsInRange(userID, fromDay, toDay)
	return ComputeWeeklyScore(logs), nil
}

// ComputeWeeklyScore is the pure scoring rule. Every log in range counts
// toward the denominator, including zero-valued days, so consistency is
// rewarded over single-day peaks. Each category and the overall score are
// integers in [0, 100].
func ComputeWeeklyScore(logs []models.DailyLog) models.WeeklyScore {
	if len(logs) == 0 {
		return models.WeeklyScore{}
	}

	var fruitsVeggies, protein, steps float64
	for _, entry := range logs {
		fruitsVeggies += entry.FruitsVeggies
		protein += entry.ProteinGrams
		steps += float64(entry.Steps)
	}

	count := float64(len(logs))
	fruitsVeggiesScore := categoryScore(fruitsVeggies, TargetFruitsVeggiesPerDay*count)
	proteinScore := categoryScore(protein, TargetProteinGramsPerDay*count)
	stepsScore := categoryScore(steps, TargetStepsPerDay*count)

	return models.WeeklyScore{
		FruitsVeggies: fruitsVeggiesScore,
		Protein:       proteinScore,
		Steps:         stepsScore,
		Overall:       int(math.Round(float64(fruitsVeggiesScore+proteinScore+stepsScore) / 3)),
	}
}

func categoryScore(total float64, target float64) int {
	if target <= 0 {
		return 0
	}
	score := int(math.Round(100 * total / target))
	if score > 100 {
		return 100
	}
	return score
}
