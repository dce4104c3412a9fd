package user

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"saldo/helpers"
	"saldo/models"
	"saldo/providers"
)

const sessionTTL = 12 * time.Hour

// StartGame launches a vendor game for a player: the player row is created
// lazily, a session token is minted, the vendor's launch API is called, and
// the resulting URL goes back to the front-end.
func (h *Handler) StartGame(c *fiber.Ctx) error {
	var req providers.LaunchRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	req.ProviderCode = strings.ToLower(strings.TrimSpace(req.ProviderCode))
	req.PlayID = strings.TrimSpace(req.PlayID)
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.ProviderCode == "" || req.PlayID == "" || req.Currency == "" {
		return helpers.JSONError(c, "PROVIDER_PLAY_ID_AND_CURRENCY_REQUIRED")
	}
	if req.Username == "" {
		req.Username = req.PlayID
	}
	if req.IP == "" {
		req.IP = c.IP()
	}

	launcher := h.launchers.Get(req.ProviderCode)
	if launcher == nil {
		return helpers.JSONError(c, "UNSUPPORTED_PROVIDER")
	}

	if _, err := h.creds.Resolve(req.ProviderCode, req.Currency, h.environment); err != nil {
		h.log.WithError(err).WithField("provider", req.ProviderCode).Warn("launch with unknown credentials")
		return helpers.JSONError(c, "UNKNOWN_PROVIDER_OR_CURRENCY")
	}

	player := &models.Player{
		Provider: req.ProviderCode,
		PlayID:   req.PlayID,
		Username: req.Username,
		Currency: req.Currency,
		IsActive: true,
	}
	if err := h.players.CreateIfAbsent(c.Context(), player); err != nil {
		h.log.WithError(err).Error("player create failed")
		return helpers.JSONError(c, "FAILED_TO_CREATE_PLAYER")
	}
	existing, err := h.players.Find(c.Context(), req.ProviderCode, req.PlayID)
	if err != nil {
		h.log.WithError(err).Error("player lookup failed")
		return helpers.JSONError(c, "FAILED_TO_CREATE_PLAYER")
	}

	session := models.Session{
		PlayerID:  existing.ID,
		Provider:  req.ProviderCode,
		GameCode:  req.GameCode,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := h.db.WithContext(c.Context()).Create(&session).Error; err != nil {
		h.log.WithError(err).Error("session create failed")
		return helpers.JSONError(c, "FAILED_TO_CREATE_SESSION")
	}

	token, err := helpers.MintSessionToken(h.secret, req.ProviderCode, req.PlayID, session.SID, sessionTTL)
	if err != nil {
		h.log.WithError(err).Error("session token mint failed")
		return helpers.JSONError(c, "FAILED_TO_CREATE_SESSION")
	}
	req.SessionToken = token

	gameURL, err := launcher.StartGame(c.Context(), req)
	if err != nil {
		h.log.WithError(err).WithFields(map[string]any{
			"provider": req.ProviderCode,
			"play_id":  req.PlayID,
		}).Error("game launch failed")
		return helpers.JSONError(c, "FAILED_TO_START_GAME")
	}

	if err := h.players.UpdateLaunch(c.Context(), req.ProviderCode, req.PlayID, token, req.GameCode); err != nil {
		h.log.WithError(err).Warn("launch bookkeeping failed")
	}

	return helpers.JSONSuccess(c, "Game started", fiber.Map{
		"launch_url":    gameURL,
		"session_token": token,
	})
}
