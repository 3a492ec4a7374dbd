package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "user_id"

// RequireAuth verifies the bearer token and stashes the user ID in locals.
func (handler *Handler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(raw) == "" {
		return respondError(c, fiber.StatusUnauthorized, "missing bearer token")
	}

	userID, err := parseToken(strings.TrimSpace(raw), handler.secretKey)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "invalid or expired token")
	}

	c.Locals(userIDKey, userID)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals(userIDKey).(uint)
	return userID
}
