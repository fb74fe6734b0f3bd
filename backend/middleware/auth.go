package middleware

import (
	"lms/backend/config"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIDKey = "userID"

// AuthMiddleware verifies the bearer token and stores the caller's profile
// id in the request locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "認証されていません")
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated caller id set by AuthMiddleware.
func UserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
