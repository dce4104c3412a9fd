package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// GoldAPIAuth checks the agent credentials the aggregator sends in every
// callback body.
func GoldAPIAuth(agentCode, agentSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			AgentCode   string `json:"agent_code"`
			AgentSecret string `json:"agent_secret"`
		}

		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status": 0,
				"msg":    "INVALID_JSON",
			})
		}

		if body.AgentCode != agentCode || body.AgentSecret != agentSecret {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": 0,
				"msg":    "INVALID_AGENT_CREDENTIALS",
			})
		}

		return c.Next()
	}
}
