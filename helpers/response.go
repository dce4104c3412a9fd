// Package helpers holds the response envelope and session-token utilities
// shared by the integrator controllers and the vendor middlewares.
package helpers

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

// JSONSuccess writes the integrator success envelope. Vendor callbacks use
// their own wire shapes; this one is only for the /user surface.
func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JSONError writes the integrator failure envelope with HTTP 400. The
// message is a stable machine-readable constant, not prose.
func JSONError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

// FormatFloat rounds to the given number of decimal places for vendors whose
// wire shapes expect plain JSON numbers with fixed precision.
func FormatFloat(num float64, precision int) float64 {
	pow := math.Pow(10, float64(precision))
	return math.Round(num*pow) / pow
}
