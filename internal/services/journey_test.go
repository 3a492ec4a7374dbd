package services

import (
	"errors"
	"testing"

	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

type stubJourneyRepo struct {
	stages []models.JourneyStage
	goals  []models.Goal
	nextID uint
}

func (stub *stubJourneyRepo) ListStagesByUser(uint) ([]models.JourneyStage, error) {
	return append([]models.JourneyStage(nil), stub.stages...), nil
}

func (stub *stubJourneyRepo) CreateStage(stage *models.JourneyStage) error {
	stub.nextID++
	stage.ID = stub.nextID
	stub.stages = append(stub.stages, *stage)
	return nil
}

func (stub *stubJourneyRepo) FindStageByUserAndCode(_ uint, code string) (models.JourneyStage, bool, error) {
	for _, stage := range stub.stages {
		if stage.Code == code {
			return stage, true, nil
		}
	}
	return models.JourneyStage{}, false, nil
}

func (stub *stubJourneyRepo) MarkStageCompleted(_ uint, code string) error {
	for index := range stub.stages {
		if stub.stages[index].Code == code {
			stub.stages[index].IsCompleted = true
		}
	}
	return nil
}

func (stub *stubJourneyRepo) CountCompletedStages(uint) (int64, error) {
	var count int64
	for _, stage := range stub.stages {
		if stage.IsCompleted {
			count++
		}
	}
	return count, nil
}

func (stub *stubJourneyRepo) ListGoalsByUser(uint) ([]models.Goal, error) {
	return append([]models.Goal(nil), stub.goals...), nil
}

func (stub *stubJourneyRepo) FindGoalByIDAndUser(id uint, _ uint) (models.Goal, bool, error) {
	for _, goal := range stub.goals {
		if goal.ID == id {
			return goal, true, nil
		}
	}
	return models.Goal{}, false, nil
}

func (stub *stubJourneyRepo) CreateGoal(goal *models.Goal) error {
	stub.nextID++
	goal.ID = stub.nextID
	stub.goals = append(stub.goals, *goal)
	return nil
}

func (stub *stubJourneyRepo) SaveGoal(goal *models.Goal) error {
	for index := range stub.goals {
		if stub.goals[index].ID == goal.ID {
			stub.goals[index] = *goal
		}
	}
	return nil
}

func (stub *stubJourneyRepo) DeleteGoalByIDAndUser(id uint, _ uint) error {
	filtered := stub.goals[:0]
	for _, goal := range stub.goals {
		if goal.ID != id {
			filtered = append(filtered, goal)
		}
	}
	stub.goals = filtered
	return nil
}

func (stub *stubJourneyRepo) CountCompletedGoals(uint) (int64, error) {
	var count int64
	for _, goal := range stub.goals {
		if goal.IsCompleted {
			count++
		}
	}
	return count, nil
}

func TestSeedStagesIsIdempotent(t *testing.T) {
	repo := &stubJourneyRepo{}
	service := NewJourneyService(repo, nil, zap.NewNop())

	if err := service.SeedStages(8); err != nil {
		t.Fatalf("SeedStages() unexpected error: %v", err)
	}
	if err := service.SeedStages(8); err != nil {
		t.Fatalf("SeedStages() repeat unexpected error: %v", err)
	}

	if len(repo.stages) != len(models.JourneyStageCatalog()) {
		t.Fatalf("stages = %d, want %d", len(repo.stages), len(models.JourneyStageCatalog()))
	}
}

func TestCompleteStageSignalsCompletedCount(t *testing.T) {
	repo := &stubJourneyRepo{}
	publisher := &recordingPublisher{}
	service := NewJourneyService(repo, publisher, zap.NewNop())
	if err := service.SeedStages(8); err != nil {
		t.Fatalf("SeedStages() unexpected error: %v", err)
	}

	if err := service.CompleteStage(8, "stage-1"); err != nil {
		t.Fatalf("CompleteStage() unexpected error: %v", err)
	}
	if err := service.CompleteStage(8, "stage-2"); err != nil {
		t.Fatalf("CompleteStage() unexpected error: %v", err)
	}

	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 journey events, got %d", len(publisher.events))
	}
	last := publisher.events[1]
	if last.Type != models.MetricJourney || last.Value != 2 {
		t.Fatalf("event = %+v, want journey count 2", last)
	}
}

func TestCompleteStageRepeatDoesNotResignal(t *testing.T) {
	repo := &stubJourneyRepo{}
	publisher := &recordingPublisher{}
	service := NewJourneyService(repo, publisher, zap.NewNop())
	if err := service.SeedStages(8); err != nil {
		t.Fatalf("SeedStages() unexpected error: %v", err)
	}

	if err := service.CompleteStage(8, "stage-1"); err != nil {
		t.Fatalf("CompleteStage() unexpected error: %v", err)
	}
	if err := service.CompleteStage(8, "stage-1"); err != nil {
		t.Fatalf("CompleteStage() repeat unexpected error: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("repeat completion re-signalled: %d events", len(publisher.events))
	}
}

func TestCompleteStageUnknownCode(t *testing.T) {
	service := NewJourneyService(&stubJourneyRepo{}, nil, zap.NewNop())

	if err := service.CompleteStage(8, "stage-99"); !errors.Is(err, ErrStageNotFound) {
		t.Fatalf("expected ErrStageNotFound, got %v", err)
	}
}

func TestUpdateGoalProgressCompletionIsTerminal(t *testing.T) {
	repo := &stubJourneyRepo{}
	publisher := &recordingPublisher{}
	service := NewJourneyService(repo, publisher, zap.NewNop())

	goal, err := service.AddGoal(8, models.Goal{Title: "Walk daily"})
	if err != nil {
		t.Fatalf("AddGoal() unexpected error: %v", err)
	}

	updated, err := service.UpdateGoalProgress(8, goal.ID, 100)
	if err != nil {
		t.Fatalf("UpdateGoalProgress() unexpected error: %v", err)
	}
	if !updated.IsCompleted {
		t.Fatal("goal at 100 should be completed")
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != models.MetricGoal || publisher.events[0].Value != 1 {
		t.Fatalf("events = %+v, want single goal event with count 1", publisher.events)
	}

	// Lowering progress afterwards keeps the completed flag and stays silent.
	updated, err = service.UpdateGoalProgress(8, goal.ID, 40)
	if err != nil {
		t.Fatalf("UpdateGoalProgress() lower unexpected error: %v", err)
	}
	if !updated.IsCompleted {
		t.Fatal("completion must be terminal")
	}
	if len(publisher.events) != 1 {
		t.Fatalf("lowering progress re-signalled: %d events", len(publisher.events))
	}
}

func TestUpdateGoalProgressClamps(t *testing.T) {
	repo := &stubJourneyRepo{}
	service := NewJourneyService(repo, nil, zap.NewNop())

	goal, err := service.AddGoal(8, models.Goal{Title: "Hydrate"})
	if err != nil {
		t.Fatalf("AddGoal() unexpected error: %v", err)
	}

	updated, err := service.UpdateGoalProgress(8, goal.ID, 250)
	if err != nil {
		t.Fatalf("UpdateGoalProgress() unexpected error: %v", err)
	}
	if updated.Progress != 100 {
		t.Fatalf("progress = %d, want clamped to 100", updated.Progress)
	}
}
