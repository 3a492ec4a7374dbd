package services

import (
	"errors"

	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

var (
	ErrStageNotFound = errors.New("journey stage not found")
	ErrGoalNotFound  = errors.New("goal not found")
)

type JourneyRepository interface {
	ListStagesByUser(userID uint) ([]models.JourneyStage, error)
	CreateStage(stage *models.JourneyStage) error
	FindStageByUserAndCode(userID uint, code string) (models.JourneyStage, bool, error)
	MarkStageCompleted(userID uint, code string) error
	CountCompletedStages(userID uint) (int64, error)
	ListGoalsByUser(userID uint) ([]models.Goal, error)
	FindGoalByIDAndUser(id uint, userID uint) (models.Goal, bool, error)
	CreateGoal(goal *models.Goal) error
	SaveGoal(goal *models.Goal) error
	DeleteGoalByIDAndUser(id uint, userID uint) error
	CountCompletedGoals(userID uint) (int64, error)
}

type JourneyPublisher interface {
	Publish(event MetricEvent)
}

// JourneyService manages the fixed education track and free-form goals.
// Completing a stage or a goal signals the count of completed items so
// progress achievements evaluate against the running total.
type JourneyService struct {
	journeys  JourneyRepository
	publisher JourneyPublisher
	logger    *zap.Logger
}

func NewJourneyService(journeys JourneyRepository, publisher JourneyPublisher, logger *zap.Logger) *JourneyService {
	return &JourneyService{journeys: journeys, publisher: publisher, logger: logger}
}

// SeedStages instantiates any catalog stages the user does not have yet.
// Existing rows, including completed ones, are left untouched.
func (service *JourneyService) SeedStages(userID uint) error {
	if userID == 0 {
		return nil
	}
	existing, err := service.journeys.ListStagesByUser(userID)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, stage := range existing {
		have[stage.Code] = true
	}

	for _, template := range models.JourneyStageCatalog() {
		if have[template.Code] {
			continue
		}
		stage := models.JourneyStage{
			UserID:      userID,
			Code:        template.Code,
			Title:       template.Title,
			Description: template.Description,
			Position:    template.Position,
		}
		if err := service.journeys.CreateStage(&stage); err != nil {
			return err
		}
	}
	return nil
}

// Stages returns the user's journey rows, seeding them first if needed.
func (service *JourneyService) Stages(userID uint) ([]models.JourneyStage, error) {
	if err := service.SeedStages(userID); err != nil {
		return nil, err
	}
	return service.journeys.ListStagesByUser(userID)
}

// CompleteStage marks one stage done and signals the new completed-stage
// count. Completing an already-completed stage is a no-op.
func (service *JourneyService) CompleteStage(userID uint, code string) error {
	if userID == 0 {
		return nil
	}
	stage, found, err := service.journeys.FindStageByUserAndCode(userID, code)
	if err != nil {
		return err
	}
	if !found {
		return ErrStageNotFound
	}
	if stage.IsCompleted {
		return nil
	}

	if err := service.journeys.MarkStageCompleted(userID, code); err != nil {
		return err
	}

	completed, err := service.journeys.CountCompletedStages(userID)
	if err != nil {
		service.logger.Warn("completed stage count failed",
			zap.Uint("user_id", userID), zap.Error(err))
		return nil
	}
	service.logger.Info("journey stage completed",
		zap.Uint("user_id", userID), zap.String("code", code), zap.Int64("completed", completed))
	if service.publisher != nil {
		service.publisher.Publish(MetricEvent{Type: models.MetricJourney, Value: float64(completed), UserID: userID})
	}
	return nil
}

// Goals returns the user's goals.
func (service *JourneyService) Goals(userID uint) ([]models.Goal, error) {
	return service.journeys.ListGoalsByUser(userID)
}

func (service *JourneyService) AddGoal(userID uint, goal models.Goal) (models.Goal, error) {
	if userID == 0 {
		return models.Goal{}, nil
	}
	if goal.TargetDay != "" {
		if _, err := ParseDay(goal.TargetDay); err != nil {
			return models.Goal{}, err
		}
	}
	goal.ID = 0
	goal.UserID = userID
	goal.Progress = clampProgress(goal.Progress)
	goal.IsCompleted = goal.Progress >= 100
	if err := service.journeys.CreateGoal(&goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// UpdateGoalProgress moves a goal's progress and signals the completed-goal
// count when the goal crosses the finish line. Completion is terminal:
// lowering progress afterwards is rejected by keeping the flag set.
func (service *JourneyService) UpdateGoalProgress(userID uint, id uint, progress int) (models.Goal, error) {
	if userID == 0 {
		return models.Goal{}, nil
	}
	goal, found, err := service.journeys.FindGoalByIDAndUser(id, userID)
	if err != nil {
		return models.Goal{}, err
	}
	if !found {
		return models.Goal{}, ErrGoalNotFound
	}

	wasCompleted := goal.IsCompleted
	goal.Progress = clampProgress(progress)
	if goal.Progress >= 100 {
		goal.IsCompleted = true
	}
	if wasCompleted {
		goal.IsCompleted = true
	}
	if err := service.journeys.SaveGoal(&goal); err != nil {
		return models.Goal{}, err
	}

	if goal.IsCompleted && !wasCompleted {
		completed, err := service.journeys.CountCompletedGoals(userID)
		if err != nil {
			service.logger.Warn("completed goal count failed",
				zap.Uint("user_id", userID), zap.Error(err))
			return goal, nil
		}
		service.logger.Info("goal completed",
			zap.Uint("user_id", userID), zap.Uint("goal_id", goal.ID), zap.Int64("completed", completed))
		if service.publisher != nil {
			service.publisher.Publish(MetricEvent{Type: models.MetricGoal, Value: float64(completed), UserID: userID})
		}
	}
	return goal, nil
}

func (service *JourneyService) DeleteGoal(userID uint, id uint) error {
	if userID == 0 {
		return nil
	}
	_, found, err := service.journeys.FindGoalByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrGoalNotFound
	}
	return service.journeys.DeleteGoalByIDAndUser(id, userID)
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
