package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/franchisedb/internal/config"
)

// VersionMiddleware stores the requested X-Api-Version in locals and
// reports the served version in the response header
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", config.Version)

		// Support version aliases
		if version == "1" || version == "1.0" {
			version = "1.0.0"
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", config.Version)

		return c.Next()
	}
}
