package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oxbowlabs/taper/internal/models"
)

type goalRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"max=50"`
	TargetDay   string `json:"target_day"`
	Progress    int    `json:"progress" validate:"gte=0,lte=100"`
}

type goalProgressRequest struct {
	Progress int `json:"progress" validate:"gte=0,lte=100"`
}

func (handler *Handler) ListJourneyStages(c *fiber.Ctx) error {
	stages, err := handler.journey.Stages(currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stages)
}

func (handler *Handler) CompleteJourneyStage(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return respondError(c, fiber.StatusBadRequest, "missing stage code")
	}
	if err := handler.journey.CompleteStage(currentUserID(c), code); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ListGoals(c *fiber.Ctx) error {
	goals, err := handler.journey.Goals(currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(goals)
}

func (handler *Handler) CreateGoal(c *fiber.Ctx) error {
	var request goalRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	category := request.Category
	if category == "" {
		category = "other"
	}
	goal, err := handler.journey.AddGoal(currentUserID(c), models.Goal{
		Title:       request.Title,
		Description: request.Description,
		Category:    category,
		TargetDay:   request.TargetDay,
		Progress:    request.Progress,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (handler *Handler) UpdateGoalProgress(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	var request goalProgressRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	goal, err := handler.journey.UpdateGoalProgress(currentUserID(c), id, request.Progress)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(goal)
}

func (handler *Handler) DeleteGoal(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	if err := handler.journey.DeleteGoal(currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
