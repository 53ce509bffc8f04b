package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit creates a rate limiter keyed by the calling principal, falling
// back to client IP for unauthenticated requests.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			principal := fmt.Sprintf("%v", c.Locals("principal_id"))
			if principal == "" || principal == "<nil>" {
				principal = c.IP()
			}
			return fmt.Sprintf("%s:%s", identifier, principal)
		},
	})
}
