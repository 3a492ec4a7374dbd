package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the public auth endpoints and the authenticated API
// group.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth := app.Group("/api/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)

	api := app.Group("/api", handler.RequireAuth)

	api.Get("/me", handler.Me)
	api.Put("/me", handler.UpdateProfile)
	api.Post("/me/password", handler.ChangePassword)

	api.Get("/meals", handler.ListMeals)
	api.Post("/meals", handler.CreateMeal)
	api.Put("/meals/:id", handler.UpdateMeal)
	api.Delete("/meals/:id", handler.DeleteMeal)

	api.Get("/weight-logs", handler.ListWeightLogs)
	api.Post("/weight-logs", handler.CreateWeightLog)
	api.Put("/weight-logs/:id", handler.UpdateWeightLog)
	api.Delete("/weight-logs/:id", handler.DeleteWeightLog)

	api.Get("/step-logs", handler.ListStepLogs)
	api.Post("/step-logs", handler.CreateStepLog)
	api.Put("/step-logs/:id", handler.UpdateStepLog)
	api.Delete("/step-logs/:id", handler.DeleteStepLog)

	api.Get("/water-logs", handler.ListWaterLogs)
	api.Post("/water-logs", handler.CreateWaterLog)
	api.Put("/water-logs/:id", handler.UpdateWaterLog)
	api.Delete("/water-logs/:id", handler.DeleteWaterLog)

	api.Get("/shots", handler.ListShots)
	api.Post("/shots", handler.CreateShot)
	api.Put("/shots/:id", handler.UpdateShot)
	api.Delete("/shots/:id", handler.DeleteShot)

	api.Get("/side-effects", handler.ListSideEffects)
	api.Post("/side-effects", handler.CreateSideEffect)
	api.Put("/side-effects/:id", handler.UpdateSideEffect)
	api.Delete("/side-effects/:id", handler.DeleteSideEffect)

	api.Get("/daily-logs", handler.ListDailyLogs)
	api.Get("/daily-logs/:day", handler.GetDailyLog)
	api.Get("/weekly-score", handler.GetWeeklyScore)

	api.Get("/streaks", handler.GetStreaks)
	api.Get("/points", handler.GetPoints)
	api.Get("/achievements", handler.ListAchievements)
	api.Get("/challenges", handler.ListChallenges)
	api.Get("/challenges/active", handler.ListActiveChallenges)

	api.Get("/journey/stages", handler.ListJourneyStages)
	api.Post("/journey/stages/:code/complete", handler.CompleteJourneyStage)
	api.Get("/goals", handler.ListGoals)
	api.Post("/goals", handler.CreateGoal)
	api.Put("/goals/:id/progress", handler.UpdateGoalProgress)
	api.Delete("/goals/:id", handler.DeleteGoal)
}
