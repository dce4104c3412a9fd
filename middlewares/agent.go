package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"saldo/helpers"
	"saldo/models"
)

// AgentAuth protects the integrator routes called by the in-house front-end.
func AgentAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		agentCode := c.Get("X-Agent-Code")
		secretKey := c.Get("X-Secret-Key")

		if agentCode == "" || secretKey == "" {
			return helpers.JSONError(c, "AGENT_CODE_AND_SECRET_REQUIRED")
		}

		var agent models.Agent
		if err := db.Where("agent_code = ? AND secret_key = ? AND is_active = true", agentCode, secretKey).
			First(&agent).Error; err != nil {
			return helpers.JSONError(c, "INVALID_AGENT_CREDENTIALS")
		}

		c.Locals("agent", agent)
		return c.Next()
	}
}
