package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// SboAuth checks the CompanyKey every sportsbook callback carries. The vendor
// expects HTTP 200 with its own error code, never a transport-level 401.
func SboAuth(companyKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			CompanyKey string `json:"CompanyKey"`
		}

		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"AccountName":  "",
				"Balance":      0,
				"ErrorCode":    422,
				"ErrorMessage": "INVALID_JSON",
			})
		}

		if body.CompanyKey != companyKey {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ErrorCode":    4,
				"ErrorMessage": "CompanyKey Error",
				"Balance":      0,
			})
		}

		return c.Next()
	}
}
