package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"saldo/helpers"
)

// PlaystarAuth verifies the access_token the vendor echoes back from launch.
// The vendor treats an invalid token like an invalid member, HTTP 200 with
// status_code 1.
func PlaystarAuth(sessionSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(c.Query("access_token"))
		if token == "" {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"status_code": 1})
		}

		claims, err := helpers.ParseSessionToken(sessionSecret, token)
		if err != nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"status_code": 1})
		}

		c.Locals("session", claims)
		return c.Next()
	}
}
