package services

import (
	"errors"
	"testing"

	"github.com/oxbowlabs/taper/internal/models"
)

func TestComputeWeeklyScoreEmptyRangeIsZero(t *testing.T) {
	score := ComputeWeeklyScore(nil)
	if score.FruitsVeggies != 0 || score.Protein != 0 || score.Steps != 0 || score.Overall != 0 {
		t.Fatalf("ComputeWeeklyScore(nil) = %+v, want all zeros", score)
	}
}

func TestComputeWeeklyScorePerfectWeek(t *testing.T) {
	logs := make([]models.DailyLog, 0, 7)
	for i := 0; i < 7; i++ {
		logs = append(logs, models.DailyLog{FruitsVeggies: 5, ProteinGrams: 100, Steps: 10000})
	}

	score := ComputeWeeklyScore(logs)
	if score.FruitsVeggies != 100 || score.Protein != 100 || score.Steps != 100 || score.Overall != 100 {
		t.Fatalf("ComputeWeeklyScore() perfect week = %+v, want all 100", score)
	}
}

func TestComputeWeeklyScoreClampsOverTarget(t *testing.T) {
	score := ComputeWeeklyScore([]models.DailyLog{
		{FruitsVeggies: 20, ProteinGrams: 400, Steps: 50000},
	})
	if score.FruitsVeggies != 100 || score.Protein != 100 || score.Steps != 100 {
		t.Fatalf("ComputeWeeklyScore() over target = %+v, want clamped to 100", score)
	}
}

func TestComputeWeeklyScoreCountsZeroDaysInDenominator(t *testing.T) {
	// One perfect day and one empty day average to 50 per category.
	score := ComputeWeeklyScore([]models.DailyLog{
		{FruitsVeggies: 5, ProteinGrams: 100, Steps: 10000},
		{},
	})
	if score.FruitsVeggies != 50 || score.Protein != 50 || score.Steps != 50 || score.Overall != 50 {
		t.Fatalf("ComputeWeeklyScore() half week = %+v, want all 50", score)
	}
}

func TestComputeWeeklyScoreOverallIsRoundedMean(t *testing.T) {
	// Categories 100, 50, 0 average to 50.
	score := ComputeWeeklyScore([]models.DailyLog{
		{FruitsVeggies: 5, ProteinGrams: 50, Steps: 0},
	})
	if score.FruitsVeggies != 100 || score.Protein != 50 || score.Steps != 0 {
		t.Fatalf("ComputeWeeklyScore() categories = %+v, want 100/50/0", score)
	}
	if score.Overall != 50 {
		t.Fatalf("ComputeWeeklyScore() overall = %d, want 50", score.Overall)
	}
}

type stubScoreDayReader struct {
	logs    []models.DailyLog
	fromDay string
	toDay   string
}

func (stub *stubScoreDayReader) DailyLogsInRange(_ uint, fromDay string, toDay string) []models.DailyLog {
	stub.fromDay = fromDay
	stub.toDay = toDay
	return stub.logs
}

func TestWeeklyScoreValidatesRange(t *testing.T) {
	service := NewScoreService(&stubScoreDayReader{})

	if _, err := service.WeeklyScore(1, "bad", "2026-01-07"); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay for from day, got %v", err)
	}
	if _, err := service.WeeklyScore(1, "2026-01-01", "bad"); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay for to day, got %v", err)
	}
}

func TestWeeklyScoreReadsInclusiveRange(t *testing.T) {
	reader := &stubScoreDayReader{logs: []models.DailyLog{{FruitsVeggies: 5, ProteinGrams: 100, Steps: 10000}}}
	service := NewScoreService(reader)

	score, err := service.WeeklyScore(1, "2026-01-05", "2026-01-11")
	if err != nil {
		t.Fatalf("WeeklyScore() unexpected error: %v", err)
	}
	if reader.fromDay != "2026-01-05" || reader.toDay != "2026-01-11" {
		t.Fatalf("WeeklyScore() queried [%s, %s], want [2026-01-05, 2026-01-11]", reader.fromDay, reader.toDay)
	}
	if score.Overall != 100 {
		t.Fatalf("WeeklyScore() overall = %d, want 100", score.Overall)
	}
}
