package user

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"saldo/helpers"
	"saldo/settlement"
)

// GetBalance proxies a front-end balance query through the settlement engine
// so it follows the same wallet path the vendor callbacks use.
func (h *Handler) GetBalance(c *fiber.Ctx) error {
	provider := strings.TrimSpace(c.Query("provider"))
	playID := strings.TrimSpace(c.Query("play_id"))
	currency := strings.ToUpper(strings.TrimSpace(c.Query("currency")))
	if provider == "" || playID == "" || currency == "" {
		return helpers.JSONError(c, "PROVIDER_PLAY_ID_AND_CURRENCY_REQUIRED")
	}

	creds, err := h.creds.Resolve(provider, currency, h.environment)
	if err != nil {
		h.log.WithError(err).WithField("provider", provider).Warn("balance with unknown credentials")
		return helpers.JSONError(c, "UNKNOWN_PROVIDER_OR_CURRENCY")
	}

	outcome, err := h.engine.GetBalance(c.Context(), settlement.BalanceRequest{
		Creds:    creds,
		Provider: provider,
		PlayID:   playID,
	})
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_BALANCE")
	}

	return helpers.JSONSuccess(c, "Balance fetched", fiber.Map{
		"play_id":  playID,
		"balance":  outcome.Balance,
		"currency": outcome.Currency,
	})
}
