package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oxbowlabs/taper/internal/models"
	"github.com/oxbowlabs/taper/internal/services"
	"go.uber.org/zap"
)

type registerRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8"`
	DisplayName  string  `json:"display_name" validate:"max=100"`
	StartWeight  float64 `json:"start_weight" validate:"gte=0"`
	GoalWeight   float64 `json:"goal_weight" validate:"gte=0"`
	HeightInches float64 `json:"height_inches" validate:"gte=0"`
	StartDay     string  `json:"start_day"`
	TargetDay    string  `json:"target_day"`
	WeightUnit   string  `json:"weight_unit" validate:"omitempty,oneof=lbs kg"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type profileRequest struct {
	DisplayName  string  `json:"display_name" validate:"max=100"`
	StartWeight  float64 `json:"start_weight" validate:"gte=0"`
	GoalWeight   float64 `json:"goal_weight" validate:"gte=0"`
	HeightInches float64 `json:"height_inches" validate:"gte=0"`
	StartDay     string  `json:"start_day"`
	TargetDay    string  `json:"target_day"`
	WeightUnit   string  `json:"weight_unit" validate:"omitempty,oneof=lbs kg"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID                 uint    `json:"id"`
	Email              string  `json:"email"`
	DisplayName        string  `json:"display_name"`
	StartWeight        float64 `json:"start_weight"`
	GoalWeight         float64 `json:"goal_weight"`
	HeightInches       float64 `json:"height_inches"`
	StartDay           string  `json:"start_day"`
	TargetDay          string  `json:"target_day"`
	WeightUnit         string  `json:"weight_unit"`
	MustChangePassword bool    `json:"must_change_password"`
}

func presentUser(user models.User) userResponse {
	return userResponse{
		ID:                 user.ID,
		Email:              user.Email,
		DisplayName:        user.DisplayName,
		StartWeight:        user.StartWeight,
		GoalWeight:         user.GoalWeight,
		HeightInches:       user.HeightInches,
		StartDay:           user.StartDay,
		TargetDay:          user.TargetDay,
		WeightUnit:         user.WeightUnit,
		MustChangePassword: user.MustChangePassword,
	}
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var request registerRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}

	user, err := handler.auth.Register(request.Email, request.Password, models.User{
		DisplayName:  request.DisplayName,
		StartWeight:  request.StartWeight,
		GoalWeight:   request.GoalWeight,
		HeightInches: request.HeightInches,
		StartDay:     request.StartDay,
		TargetDay:    request.TargetDay,
		WeightUnit:   request.WeightUnit,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.journey.SeedStages(user.ID); err != nil {
		handler.logger.Warn("journey seed failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return handler.openSession(c, user, fiber.StatusCreated)
}

// Login verifies credentials, hydrates the session mirror, touches the login
// streak, and makes sure the week's challenges exist.
func (handler *Handler) Login(c *fiber.Ctx) error {
	var request loginRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}

	key := loginLimiterKey(c, services.NormalizeEmail(request.Email))
	now := handler.now()
	if handler.loginLimiter.blocked(key, now) {
		return respondError(c, fiber.StatusTooManyRequests, "too many login attempts, try again later")
	}

	user, err := handler.auth.Login(request.Email, request.Password)
	if err != nil {
		handler.loginLimiter.recordFailure(key, now)
		return respondServiceError(c, err)
	}
	handler.loginLimiter.clear(key)

	return handler.openSession(c, user, fiber.StatusOK)
}

// openSession runs the shared post-authentication sequence and returns the
// signed token.
func (handler *Handler) openSession(c *fiber.Ctx, user models.User, status int) error {
	today := handler.today()

	if err := handler.syncer.Hydrate(user.ID, today); err != nil {
		handler.logger.Warn("session hydrate incomplete", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	if _, err := handler.streaks.Touch(user.ID, models.MetricLogin, today); err != nil {
		handler.logger.Warn("login streak touch failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := issueToken(user.ID, handler.secretKey, handler.tokenTTL, handler.now())
	if err != nil {
		handler.logger.Error("token signing failed", zap.Error(err))
		return respondError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.Status(status).JSON(sessionResponse{Token: token, User: presentUser(user)})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, err := handler.auth.FindByID(currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(presentUser(user))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	var request profileRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}

	user, err := handler.auth.SaveProfile(currentUserID(c), models.User{
		DisplayName:  request.DisplayName,
		StartWeight:  request.StartWeight,
		GoalWeight:   request.GoalWeight,
		HeightInches: request.HeightInches,
		StartDay:     request.StartDay,
		TargetDay:    request.TargetDay,
		WeightUnit:   request.WeightUnit,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(presentUser(user))
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	var request changePasswordRequest
	if err := handler.parseBody(c, &request); err != nil {
		return err
	}

	if err := handler.auth.ChangePassword(currentUserID(c), request.CurrentPassword, request.NewPassword); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
