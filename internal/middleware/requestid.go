package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID ensures each request carries a stable identifier, generating
// one when the caller did not supply it.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
			c.Set(requestIDHeader, reqID)
		}

		c.Locals(requestIDHeader, reqID)

		return c.Next()
	}
}
