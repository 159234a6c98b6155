package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is the response header carrying the ray id.
	Header = "X-Ray-Id"
	// RequestHeader is the SDK request id header reused as ray id when present.
	RequestHeader = "X-Atlan-Request-Id"
	// LocalKey is the fiber locals key holding the ray id.
	LocalKey = "ray_id"
)

// New returns a middleware that assigns a ray id to every request.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
