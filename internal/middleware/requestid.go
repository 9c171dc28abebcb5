package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID tags each request with an id for log correlation, honoring an
// id supplied by the caller and echoing it on the response.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals("requestID", id)
		c.Set("X-Request-Id", id)

		return c.Next()
	}
}
