package Controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DefaultUID is the demo user every unauthenticated request belongs to.
const DefaultUID = "default_user"

var validate = validator.New()

// resolveUID prefers an explicit uid query param, then the token subject set
// by middleware.UserContext, then the demo user.
func resolveUID(c *fiber.Ctx) string {
	if uid := c.Query("uid"); uid != "" {
		return uid
	}
	if uid, ok := c.Locals("uid").(string); ok && uid != "" {
		return uid
	}
	return DefaultUID
}

// upstreamError maps a generation-client failure onto a 502 carrying the
// upstream message. Generation failures are never silently swallowed.
func upstreamError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": "Generation request failed: " + err.Error(),
	})
}

// Root is the liveness message.
func Root(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Compass Dashboard API is running",
	})
}
