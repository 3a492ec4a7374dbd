package services

import (
	"fmt"

	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

type ChallengeRepository interface {
	ListByUser(userID uint) ([]models.Challenge, error)
	ListByUserAndMetric(userID uint, metric models.MetricType) ([]models.Challenge, error)
	ExistsByUserAndKey(userID uint, key string) (bool, error)
	Create(challenge *models.Challenge) error
	UpdateProgress(id uint, progress int, isCompleted bool) error
}

type ChallengePointsAwarder interface {
	Award(userID uint, points int) (int, error)
}

// ChallengeService instantiates the weekly challenge set and advances
// progress when qualifying values are logged. Progress never decreases;
// completion is terminal and awards the reward exactly once. Challenges
// whose window has closed are frozen: no further progress, no late
// completion.
type ChallengeService struct {
	challenges ChallengeRepository
	ledger     ChallengePointsAwarder
	logger     *zap.Logger
}

func NewChallengeService(challenges ChallengeRepository, ledger ChallengePointsAwarder, logger *zap.Logger) *ChallengeService {
	return &ChallengeService{challenges: challenges, ledger: ledger, logger: logger}
}

// ChallengeKey derives the stable per-week identifier for a template.
func ChallengeKey(slug string, weekStart string) string {
	return fmt.Sprintf("%s-%s", slug, weekStart)
}

// EnsureWeeklyChallenges instantiates the current week's challenges for a
// user if they do not exist yet. Keys are derived from template slug + week
// start, so repeated calls are idempotent.
func (service *ChallengeService) EnsureWeeklyChallenges(userID uint, today string) error {
	if userID == 0 {
		return nil
	}
	weekStart, err := WeekStartOf(today)
	if err != nil {
		return err
	}
	weekEnd, err := AddDays(weekStart, 6)
	if err != nil {
		return err
	}

	for _, template := range models.WeeklyChallengeTemplates() {
		key := ChallengeKey(template.Slug, weekStart)
		exists, err := service.challenges.ExistsByUserAndKey(userID, key)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		challenge := models.Challenge{
			UserID:      userID,
			Key:         key,
			Title:       template.Title,
			Description: template.Description,
			Category:    template.Category,
			Metric:      template.Metric,
			StartDay:    weekStart,
			EndDay:      weekEnd,
			Reward:      template.Reward,
		}
		if err := service.challenges.Create(&challenge); err != nil {
			return err
		}
		service.logger.Info("weekly challenge instantiated",
			zap.Uint("user_id", userID), zap.String("key", key))
	}
	return nil
}

// MetricLogged makes the service a dispatcher subscriber.
func (service *ChallengeService) MetricLogged(event MetricEvent) {
	if err := service.Advance(event); err != nil {
		service.logger.Warn("challenge advance failed",
			zap.Uint("user_id", event.UserID),
			zap.String("metric", string(event.Type)),
			zap.Error(err))
	}
}

// Advance applies one logged value to every open challenge tracking the
// event's metric.
func (service *ChallengeService) Advance(event MetricEvent) error {
	if event.UserID == 0 {
		return nil
	}

	template, found := templateForMetric(event.Type)
	if !found || event.Value < template.Threshold {
		return nil
	}

	challenges, err := service.challenges.ListByUserAndMetric(event.UserID, event.Type)
	if err != nil {
		return err
	}

	for _, challenge := range challenges {
		if challenge.IsCompleted {
			continue
		}
		// Frozen once the window closes; the event's day decides, not
		// wall-clock time, so backfilled entries stay consistent.
		if event.Day < challenge.StartDay || event.Day > challenge.EndDay {
			continue
		}

		progress := challenge.Progress + template.Delta
		if progress > 100 {
			progress = 100
		}
		if progress == challenge.Progress {
			continue
		}

		completed := progress >= 100
		if err := service.challenges.UpdateProgress(challenge.ID, progress, completed); err != nil {
			service.logger.Warn("challenge progress update failed",
				zap.Uint("user_id", event.UserID),
				zap.String("key", challenge.Key),
				zap.Error(err))
			continue
		}

		if completed {
			if _, err := service.ledger.Award(event.UserID, challenge.Reward); err != nil {
				service.logger.Warn("challenge reward award failed",
					zap.Uint("user_id", event.UserID),
					zap.String("key", challenge.Key),
					zap.Error(err))
			}
			service.logger.Info("challenge completed",
				zap.Uint("user_id", event.UserID),
				zap.String("key", challenge.Key),
				zap.Int("reward", challenge.Reward))
		}
	}
	return nil
}

// ListForUser returns all challenge rows for presentation.
func (service *ChallengeService) ListForUser(userID uint) ([]models.Challenge, error) {
	return service.challenges.ListByUser(userID)
}

// ActiveForUser returns the not-yet-completed challenges whose window
// contains today.
func (service *ChallengeService) ActiveForUser(userID uint, today string) ([]models.Challenge, error) {
	all, err := service.challenges.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	active := make([]models.Challenge, 0, len(all))
	for _, challenge := range all {
		if challenge.IsCompleted {
			continue
		}
		if today < challenge.StartDay || today > challenge.EndDay {
			continue
		}
		active = append(active, challenge)
	}
	return active, nil
}

func templateForMetric(metric models.MetricType) (models.ChallengeTemplate, bool) {
	for _, template := range models.WeeklyChallengeTemplates() {
		if template.Metric == metric {
			return template, true
		}
	}
	return models.ChallengeTemplate{}, false
}
