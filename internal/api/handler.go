// Package api exposes the engine over a JSON HTTP surface. Handlers stay
// thin: decode, validate, call a service, encode. All domain rules live in
// internal/services.
package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oxbowlabs/taper/internal/cache"
	"github.com/oxbowlabs/taper/internal/services"
	"go.uber.org/zap"
)

type Handler struct {
	auth         *services.AuthService
	metrics      *services.MetricService
	scores       *services.ScoreService
	streaks      *services.StreakService
	achievements *services.AchievementService
	challenges   *services.ChallengeService
	ledger       *services.PointsLedger
	journey      *services.JourneyService
	syncer       *services.SyncService
	mirror       *cache.Store

	secretKey    string
	tokenTTL     time.Duration
	validate     *validator.Validate
	loginLimiter *attemptLimiter
	logger       *zap.Logger
	now          func() time.Time
}

type HandlerDeps struct {
	Auth         *services.AuthService
	Metrics      *services.MetricService
	Scores       *services.ScoreService
	Streaks      *services.StreakService
	Achievements *services.AchievementService
	Challenges   *services.ChallengeService
	Ledger       *services.PointsLedger
	Journey      *services.JourneyService
	Syncer       *services.SyncService
	Mirror       *cache.Store
	SecretKey    string
	TokenTTL     time.Duration
	Logger       *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		auth:         deps.Auth,
		metrics:      deps.Metrics,
		scores:       deps.Scores,
		streaks:      deps.Streaks,
		achievements: deps.Achievements,
		challenges:   deps.Challenges,
		ledger:       deps.Ledger,
		journey:      deps.Journey,
		syncer:       deps.Syncer,
		mirror:       deps.Mirror,
		secretKey:    deps.SecretKey,
		tokenTTL:     deps.TokenTTL,
		validate:     validator.New(),
		loginLimiter: newAttemptLimiter(),
		logger:       deps.Logger,
		now:          time.Now,
	}
}

// today returns the server's current calendar day in the canonical format.
func (handler *Handler) today() string {
	return services.DayOf(handler.now(), time.Local)
}
