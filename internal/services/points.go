package services

import (
	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

type PointsRepository interface {
	FindOrCreateByUser(userID uint) (models.PointsLedger, error)
	AddPoints(userID uint, points int) error
}

// PointsLedger is the cumulative points counter and derived level. Awards
// only ever add; callers persist through the repository so cross-session
// totals survive.
type PointsLedger struct {
	points PointsRepository
	logger *zap.Logger
}

func NewPointsLedger(points PointsRepository, logger *zap.Logger) *PointsLedger {
	return &PointsLedger{points: points, logger: logger}
}

// Award adds n points (n < 0 is ignored) and returns the new total.
func (ledger *PointsLedger) Award(userID uint, points int) (int, error) {
	if userID == 0 {
		return 0, nil
	}
	if points <= 0 {
		return ledger.Total(userID)
	}

	if _, err := ledger.points.FindOrCreateByUser(userID); err != nil {
		return 0, err
	}
	if err := ledger.points.AddPoints(userID, points); err != nil {
		return 0, err
	}

	total, err := ledger.Total(userID)
	if err != nil {
		return 0, err
	}
	ledger.logger.Info("points awarded",
		zap.Uint("user_id", userID),
		zap.Int("points", points),
		zap.Int("total", total),
		zap.Int("level", models.LevelForPoints(total)))
	return total, nil
}

// Total reads the cumulative points for a user, creating the zero row on
// first access.
func (ledger *PointsLedger) Total(userID uint) (int, error) {
	row, err := ledger.points.FindOrCreateByUser(userID)
	if err != nil {
		return 0, err
	}
	return row.Points, nil
}

// Level reports the user's derived level.
func (ledger *PointsLedger) Level(userID uint) (int, error) {
	total, err := ledger.Total(userID)
	if err != nil {
		return 0, err
	}
	return models.LevelForPoints(total), nil
}
