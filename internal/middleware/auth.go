package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/services"
)

// Auth validates the bearer credential on the request and stores the
// verified user id in the request context. Verification failures surface
// as CustomErrors through the app error handler.
func Auth(provider services.IdentityProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := provider.Verify(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		c.Locals("userID", userID)

		return c.Next()
	}
}
