package pragmatic

import (
	"github.com/gofiber/fiber/v2"

	"saldo/settlement"
)

func (h *Handler) Balance(c *fiber.Ctx) error {
	h.count("balance")

	userID := c.FormValue("userId")
	if userID == "" {
		return respond(c, codeMissingParams, "Missing required parameters", h.currency, 0)
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, codeInternal, "Internal error", h.currency, 0)
	}

	out, err := h.engine.GetBalance(c.Context(), settlement.BalanceRequest{
		Creds:    creds,
		Provider: providerName,
		PlayID:   userID,
	})
	if err != nil {
		code, desc := codeFor(err)
		return respond(c, code, desc, h.currency, 0)
	}

	return respond(c, codeOK, "Success", out.Currency, out.Balance.InexactFloat64())
}
