package services

import (
	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

type StreakRepository interface {
	FindOrCreateByUser(userID uint) (models.Streak, error)
	UpdateCounter(userID uint, countColumn string, count int, dayColumn string, day string) error
}

// StreakPublisher receives streak milestone signals so achievement checks
// can run without the tracker knowing about them.
type StreakPublisher interface {
	Publish(event MetricEvent)
}

// StreakService maintains the consecutive-day counters. One Touch per
// qualifying event: a same-day repeat is a no-op, an exactly one-day gap
// increments, a longer gap restarts the streak at the touched day.
type StreakService struct {
	streaks   StreakRepository
	publisher StreakPublisher
	logger    *zap.Logger
}

func NewStreakService(streaks StreakRepository, publisher StreakPublisher, logger *zap.Logger) *StreakService {
	return &StreakService{streaks: streaks, publisher: publisher, logger: logger}
}

// Touch records a qualifying event for one metric type on the given day and
// returns the resulting counter.
func (service *StreakService) Touch(userID uint, metric models.MetricType, day string) (int, error) {
	if userID == 0 {
		return 0, nil
	}
	if _, err := ParseDay(day); err != nil {
		return 0, err
	}
	countColumn, dayColumn, tracked := models.StreakColumns(metric)
	if !tracked {
		return 0, nil
	}

	row, err := service.streaks.FindOrCreateByUser(userID)
	if err != nil {
		return 0, err
	}

	count, lastDay := row.StreakCounter(metric)
	next, changed, err := nextStreakCount(count, lastDay, day)
	if err != nil {
		return 0, err
	}
	if !changed {
		return count, nil
	}

	if err := service.streaks.UpdateCounter(userID, countColumn, next, dayColumn, day); err != nil {
		return 0, err
	}
	service.logger.Debug("streak touched",
		zap.Uint("user_id", userID),
		zap.String("metric", string(metric)),
		zap.String("day", day),
		zap.Int("count", next))

	service.publishMilestone(userID, metric, day, next)
	return next, nil
}

// Current reads the whole streak row for a user.
func (service *StreakService) Current(userID uint) (models.Streak, error) {
	return service.streaks.FindOrCreateByUser(userID)
}

// nextStreakCount applies the transition rules. The bool result reports
// whether the row needs a write; same-day repeats and out-of-order days do
// not.
func nextStreakCount(count int, lastDay string, day string) (int, bool, error) {
	if lastDay == "" {
		return 1, true, nil
	}
	if day == lastDay {
		return count, false, nil
	}

	gap, err := DaysBetween(lastDay, day)
	if err != nil {
		return 0, false, err
	}
	switch {
	case gap < 0:
		// Backfilled event from before the streak head; leave the counter be.
		return count, false, nil
	case gap == 1:
		return count + 1, true, nil
	default:
		// Streak broken; the touched day starts the new run.
		return 1, true, nil
	}
}

func (service *StreakService) publishMilestone(userID uint, metric models.MetricType, day string, count int) {
	if service.publisher == nil {
		return
	}
	switch metric {
	case models.MetricWeight:
		service.publisher.Publish(MetricEvent{Type: models.MetricWeightStreak, Value: float64(count), UserID: userID, Day: day})
	case models.MetricLogin:
		service.publisher.Publish(MetricEvent{Type: models.MetricLoginStreak, Value: float64(count), UserID: userID, Day: day})
	}
}
