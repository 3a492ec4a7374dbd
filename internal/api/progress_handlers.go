package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oxbowlabs/taper/internal/models"
	"github.com/oxbowlabs/taper/internal/services"
)

// Read-side handlers for aggregates and gamification state.

// GetDailyLog serves the mirrored aggregate for one day. A day with no
// entries yields an empty aggregate rather than a 404; every calendar day is
// a valid query.
func (handler *Handler) GetDailyLog(c *fiber.Ctx) error {
	day := c.Params("day")
	if _, err := services.ParseDay(day); err != nil {
		return respondServiceError(c, err)
	}
	userID := currentUserID(c)
	entry, found := handler.mirror.DailyLog(userID, day)
	if !found {
		entry = models.DailyLog{UserID: userID, Day: day, MealIDs: []uint{}, SideEffectIDs: []uint{}}
	}
	return c.JSON(entry)
}

// ListDailyLogs serves the mirrored aggregates in an inclusive day range.
func (handler *Handler) ListDailyLogs(c *fiber.Ctx) error {
	fromDay := c.Query("from")
	toDay := c.Query("to")
	if _, err := services.ParseDay(fromDay); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid from day, expected YYYY-MM-DD")
	}
	if _, err := services.ParseDay(toDay); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid to day, expected YYYY-MM-DD")
	}
	return c.JSON(handler.mirror.DailyLogsInRange(currentUserID(c), fromDay, toDay))
}

// GetWeeklyScore computes the adherence score for the week containing the
// requested day, defaulting to today.
func (handler *Handler) GetWeeklyScore(c *fiber.Ctx) error {
	day := c.Query("day", handler.today())
	weekStart, err := services.WeekStartOf(day)
	if err != nil {
		return respondServiceError(c, err)
	}
	weekEnd, err := services.AddDays(weekStart, 6)
	if err != nil {
		return respondServiceError(c, err)
	}

	score, err := handler.scores.WeeklyScore(currentUserID(c), weekStart, weekEnd)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"week_start": weekStart,
		"week_end":   weekEnd,
		"score":      score,
	})
}

func (handler *Handler) GetStreaks(c *fiber.Ctx) error {
	row, err := handler.streaks.Current(currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"weight": fiber.Map{"count": row.WeightCount, "last_day": row.WeightLastDay},
		"meals":  fiber.Map{"count": row.MealsCount, "last_day": row.MealsLastDay},
		"steps":  fiber.Map{"count": row.StepsCount, "last_day": row.StepsLastDay},
		"water":  fiber.Map{"count": row.WaterCount, "last_day": row.WaterLastDay},
		"shots":  fiber.Map{"count": row.ShotsCount, "last_day": row.ShotsLastDay},
		"login":  fiber.Map{"count": row.LoginCount, "last_day": row.LoginLastDay},
	})
}

func (handler *Handler) GetPoints(c *fiber.Ctx) error {
	total, err := handler.ledger.Total(currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"points": total,
		"level":  models.LevelForPoints(total),
	})
}

func (handler *Handler) ListAchievements(c *fiber.Ctx) error {
	achievements, err := handler.achievements.ListForUser(currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(achievements)
}

func (handler *Handler) ListChallenges(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if err := handler.challenges.EnsureWeeklyChallenges(userID, handler.today()); err != nil {
		return respondServiceError(c, err)
	}
	challenges, err := handler.challenges.ListForUser(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(challenges)
}

func (handler *Handler) ListActiveChallenges(c *fiber.Ctx) error {
	userID := currentUserID(c)
	today := handler.today()
	if err := handler.challenges.EnsureWeeklyChallenges(userID, today); err != nil {
		return respondServiceError(c, err)
	}
	challenges, err := handler.challenges.ActiveForUser(userID, today)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(challenges)
}
