package services

import (
	"sync"
	"time"

	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

type AchievementRepository interface {
	ListByUser(userID uint) ([]models.Achievement, error)
	MarkUnlocked(userID uint, code string, unlockedAt time.Time) (int64, error)
	Create(achievement *models.Achievement) error
}

type AchievementUserReader interface {
	FindByID(userID uint) (models.User, error)
}

type AchievementPointsAwarder interface {
	Award(userID uint, points int) (int, error)
}

// AchievementService evaluates the static catalog against logged values and
// flips Locked to Unlocked exactly once per (user, code). Every successful
// unlock re-fetches the authoritative per-user set, so a partial failure in
// the update/insert/award chain heals on the next qualifying event instead
// of double-awarding.
type AchievementService struct {
	achievements AchievementRepository
	users        AchievementUserReader
	ledger       AchievementPointsAwarder
	logger       *zap.Logger

	mu       sync.Mutex
	unlocked map[uint]map[string]bool
	now      func() time.Time
}

func NewAchievementService(achievements AchievementRepository, users AchievementUserReader, ledger AchievementPointsAwarder, logger *zap.Logger) *AchievementService {
	return &AchievementService{
		achievements: achievements,
		users:        users,
		ledger:       ledger,
		logger:       logger,
		unlocked:     make(map[uint]map[string]bool),
		now:          time.Now,
	}
}

// MetricLogged makes the service a dispatcher subscriber.
func (service *AchievementService) MetricLogged(event MetricEvent) {
	service.Evaluate(event)
}

// Evaluate checks every catalog entry triggered by the event's metric type.
// Failures are logged and left for the next qualifying event; nothing here
// is surfaced to the caller.
func (service *AchievementService) Evaluate(event MetricEvent) {
	if event.UserID == 0 {
		return
	}

	user, err := service.users.FindByID(event.UserID)
	if err != nil {
		service.logger.Warn("achievement evaluation: load user failed",
			zap.Uint("user_id", event.UserID), zap.Error(err))
		return
	}

	for _, definition := range models.AchievementCatalog() {
		if definition.Trigger != event.Type {
			continue
		}
		if service.isUnlocked(event.UserID, definition.Code) {
			continue
		}
		if !definition.Unlocks(event.Value, user) {
			continue
		}
		service.unlock(event.UserID, definition)
	}
}

func (service *AchievementService) unlock(userID uint, definition models.AchievementDefinition) {
	unlockedAt := service.now().UTC()

	affected, err := service.achievements.MarkUnlocked(userID, definition.Code, unlockedAt)
	if err != nil {
		service.logger.Warn("achievement unlock update failed",
			zap.Uint("user_id", userID), zap.String("code", definition.Code), zap.Error(err))
		return
	}
	if affected == 0 {
		// Row never instantiated remotely; seed it from the definition.
		row := models.Achievement{
			UserID:      userID,
			Code:        definition.Code,
			Title:       definition.Title,
			Description: definition.Description,
			Icon:        definition.Icon,
			Category:    definition.Category,
			Points:      definition.Points,
			IsUnlocked:  true,
			UnlockedAt:  &unlockedAt,
		}
		if err := service.achievements.Create(&row); err != nil {
			service.logger.Warn("achievement unlock insert failed",
				zap.Uint("user_id", userID), zap.String("code", definition.Code), zap.Error(err))
			service.RefreshUnlockState(userID)
			return
		}
	}

	service.setUnlocked(userID, definition.Code)

	if _, err := service.ledger.Award(userID, definition.Points); err != nil {
		service.logger.Warn("achievement points award failed",
			zap.Uint("user_id", userID), zap.String("code", definition.Code), zap.Error(err))
	}

	// Re-sync from the authoritative store so local state cannot drift
	// after a partial failure above.
	service.RefreshUnlockState(userID)

	service.logger.Info("achievement unlocked",
		zap.Uint("user_id", userID),
		zap.String("code", definition.Code),
		zap.Int("points", definition.Points))
}

// RefreshUnlockState reloads the per-user unlock set from the store.
// Catalog codes absent remotely stay Locked; they are never dropped.
func (service *AchievementService) RefreshUnlockState(userID uint) {
	rows, err := service.achievements.ListByUser(userID)
	if err != nil {
		service.logger.Warn("achievement state refresh failed",
			zap.Uint("user_id", userID), zap.Error(err))
		return
	}

	state := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.IsUnlocked {
			state[row.Code] = true
		}
	}

	service.mu.Lock()
	service.unlocked[userID] = state
	service.mu.Unlock()
}

// ListForUser merges the static catalog with the user's remote unlock rows:
// every catalog entry appears exactly once, locked unless the store says
// otherwise.
func (service *AchievementService) ListForUser(userID uint) ([]models.Achievement, error) {
	rows, err := service.achievements.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]models.Achievement, len(rows))
	for _, row := range rows {
		byCode[row.Code] = row
	}

	merged := make([]models.Achievement, 0, len(models.AchievementCatalog()))
	for _, definition := range models.AchievementCatalog() {
		if row, found := byCode[definition.Code]; found {
			merged = append(merged, row)
			continue
		}
		merged = append(merged, models.Achievement{
			UserID:      userID,
			Code:        definition.Code,
			Title:       definition.Title,
			Description: definition.Description,
			Icon:        definition.Icon,
			Category:    definition.Category,
			Points:      definition.Points,
		})
	}
	return merged, nil
}

func (service *AchievementService) isUnlocked(userID uint, code string) bool {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.unlocked[userID][code]
}

func (service *AchievementService) setUnlocked(userID uint, code string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	state := service.unlocked[userID]
	if state == nil {
		state = make(map[string]bool)
		service.unlocked[userID] = state
	}
	state[code] = true
}
