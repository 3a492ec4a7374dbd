package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oxbowlabs/taper/internal/models"
)

// Metric entry handlers. Reads are served from the session mirror; writes go
// through MetricService so the remote store, the mirror, the day aggregate,
// and the gamification side effects all move together.

type mealRequest struct {
	Day           string  `json:"day" validate:"required"`
	Time          string  `json:"time"`
	Name          string  `json:"name" validate:"required,max=200"`
	Description   string  `json:"description" validate:"max=1000"`
	FruitsVeggies float64 `json:"fruits_veggies" validate:"gte=0"`
	ProteinGrams  float64 `json:"protein_grams" validate:"gte=0"`
	Calories      float64 `json:"calories" validate:"gte=0"`
	CarbsGrams    float64 `json:"carbs_grams" validate:"gte=0"`
	FatGrams      float64 `json:"fat_grams" validate:"gte=0"`
	IsSaved       bool    `json:"is_saved"`
}

type weightLogRequest struct {
	Day    string  `json:"day" validate:"required"`
	Weight float64 `json:"weight" validate:"required,gt=0"`
	Notes  string  `json:"notes" validate:"max=1000"`
}

type stepLogRequest struct {
	Day   string `json:"day" validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

type waterLogRequest struct {
	Day      string  `json:"day" validate:"required"`
	AmountOz float64 `json:"amount_oz" validate:"gt=0"`
}

type shotRequest struct {
	Day        string `json:"day" validate:"required"`
	Time       string `json:"time"`
	Medication string `json:"medication" validate:"max=200"`
	Site       string `json:"site" validate:"max=100"`
	Notes      string `json:"notes" validate:"max=1000"`
}

type sideEffectRequest struct {
	Day      string `json:"day" validate:"required"`
	Type     string `json:"type" validate:"required,max=100"`
	Severity string `json:"severity" validate:"required,oneof=mild moderate severe"`
	Notes    string `json:"notes" validate:"max=1000"`
}

func entryID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, respondError(c, fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// --- meals ---

func (handler *Handler) ListMeals(c *fiber.Ctx) error {
	return c.JSON(handler.mirror.Meals(currentUserID(c)))
}

func (handler *Handler) CreateMeal(c *fiber.Ctx) error {
	var request mealRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	meal, err := handler.metrics.AddMeal(currentUserID(c), models.Meal{
		Day:           request.Day,
		Time:          request.Time,
		Name:          request.Name,
		Description:   request.Description,
		FruitsVeggies: request.FruitsVeggies,
		ProteinGrams:  request.ProteinGrams,
		Calories:      request.Calories,
		CarbsGrams:    request.CarbsGrams,
		FatGrams:      request.FatGrams,
		IsSaved:       request.IsSaved,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(meal)
}

func (handler *Handler) UpdateMeal(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	var request mealRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	meal, err := handler.metrics.UpdateMeal(currentUserID(c), models.Meal{
		ID:            id,
		Day:           request.Day,
		Time:          request.Time,
		Name:          request.Name,
		Description:   request.Description,
		FruitsVeggies: request.FruitsVeggies,
		ProteinGrams:  request.ProteinGrams,
		Calories:      request.Calories,
		CarbsGrams:    request.CarbsGrams,
		FatGrams:      request.FatGrams,
		IsSaved:       request.IsSaved,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(meal)
}

func (handler *Handler) DeleteMeal(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	if err := handler.metrics.DeleteMeal(currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- weight logs ---

func (handler *Handler) ListWeightLogs(c *fiber.Ctx) error {
	return c.JSON(handler.mirror.WeightLogs(currentUserID(c)))
}

func (handler *Handler) CreateWeightLog(c *fiber.Ctx) error {
	var request weightLogRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	entry, err := handler.metrics.AddWeightLog(currentUserID(c), models.WeightLog{
		Day:    request.Day,
		Weight: request.Weight,
		Notes:  request.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateWeightLog(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	var request weightLogRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	entry, err := handler.metrics.UpdateWeightLog(currentUserID(c), models.WeightLog{
		ID:     id,
		Day:    request.Day,
		Weight: request.Weight,
		Notes:  request.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteWeightLog(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	if err := handler.metrics.DeleteWeightLog(currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- step logs ---

func (handler *Handler) ListStepLogs(c *fiber.Ctx) error {
	return c.JSON(handler.mirror.StepLogs(currentUserID(c)))
}

func (handler *Handler) CreateStepLog(c *fiber.Ctx) error {
	var request stepLogRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	entry, err := handler.metrics.AddStepLog(currentUserID(c), models.StepLog{
		Day:   request.Day,
		Count: request.Count,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateStepLog(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	var request stepLogRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	entry, err := handler.metrics.UpdateStepLog(currentUserID(c), models.StepLog{
		ID:    id,
		Day:   request.Day,
		Count: request.Count,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteStepLog(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	if err := handler.metrics.DeleteStepLog(currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- water logs ---

func (handler *Handler) ListWaterLogs(c *fiber.Ctx) error {
	return c.JSON(handler.mirror.WaterLogs(currentUserID(c)))
}

func (handler *Handler) CreateWaterLog(c *fiber.Ctx) error {
	var request waterLogRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	entry, err := handler.metrics.AddWaterLog(currentUserID(c), models.WaterLog{
		Day:      request.Day,
		AmountOz: request.AmountOz,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateWaterLog(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	var request waterLogRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	entry, err := handler.metrics.UpdateWaterLog(currentUserID(c), models.WaterLog{
		ID:       id,
		Day:      request.Day,
		AmountOz: request.AmountOz,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteWaterLog(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	if err := handler.metrics.DeleteWaterLog(currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- shots ---

func (handler *Handler) ListShots(c *fiber.Ctx) error {
	return c.JSON(handler.mirror.Shots(currentUserID(c)))
}

func (handler *Handler) CreateShot(c *fiber.Ctx) error {
	var request shotRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	shot, err := handler.metrics.AddShot(currentUserID(c), models.Shot{
		Day:        request.Day,
		Time:       request.Time,
		Medication: request.Medication,
		Site:       request.Site,
		Notes:      request.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(shot)
}

func (handler *Handler) UpdateShot(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	var request shotRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	shot, err := handler.metrics.UpdateShot(currentUserID(c), models.Shot{
		ID:         id,
		Day:        request.Day,
		Time:       request.Time,
		Medication: request.Medication,
		Site:       request.Site,
		Notes:      request.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(shot)
}

func (handler *Handler) DeleteShot(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	if err := handler.metrics.DeleteShot(currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- side effects ---

func (handler *Handler) ListSideEffects(c *fiber.Ctx) error {
	return c.JSON(handler.mirror.SideEffects(currentUserID(c)))
}

func (handler *Handler) CreateSideEffect(c *fiber.Ctx) error {
	var request sideEffectRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	effect, err := handler.metrics.AddSideEffect(currentUserID(c), models.SideEffect{
		Day:      request.Day,
		Type:     request.Type,
		Severity: request.Severity,
		Notes:    request.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(effect)
}

func (handler *Handler) UpdateSideEffect(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	var request sideEffectRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}
	effect, err := handler.metrics.UpdateSideEffect(currentUserID(c), models.SideEffect{
		ID:       id,
		Day:      request.Day,
		Type:     request.Type,
		Severity: request.Severity,
		Notes:    request.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(effect)
}

func (handler *Handler) DeleteSideEffect(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	if err := handler.metrics.DeleteSideEffect(currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
