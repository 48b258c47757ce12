// Package rayid assigns every request a correlation id.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the ray id on responses and may supply one on
// requests (so upstream proxies can propagate their own).
const Header = "X-Ray-ID"

// New returns a middleware that stores a ray id in the context locals
// under "ray_id" and echoes it on the response.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
