package user

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"saldo/helpers"
	"saldo/models"
)

type registerRequest struct {
	Provider string `json:"provider"`
	PlayID   string `json:"play_id"`
	Username string `json:"username"`
	Currency string `json:"currency"`
}

// RegisterPlayer pre-creates a player. Launch creates players lazily anyway;
// this endpoint exists for front-ends that provision accounts up front.
func (h *Handler) RegisterPlayer(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	req.PlayID = strings.TrimSpace(req.PlayID)
	if req.Provider == "" || req.PlayID == "" || req.Currency == "" {
		return helpers.JSONError(c, "PROVIDER_PLAY_ID_AND_CURRENCY_REQUIRED")
	}
	if req.Username == "" {
		req.Username = req.PlayID
	}

	if err := h.players.CreateIfAbsent(c.Context(), &models.Player{
		Provider: strings.ToLower(req.Provider),
		PlayID:   req.PlayID,
		Username: req.Username,
		Currency: strings.ToUpper(req.Currency),
		IsActive: true,
	}); err != nil {
		h.log.WithError(err).Error("player registration failed")
		return helpers.JSONError(c, "FAILED_TO_REGISTER_PLAYER")
	}

	return helpers.JSONSuccess(c, "Player registered", fiber.Map{
		"play_id": req.PlayID,
	})
}
