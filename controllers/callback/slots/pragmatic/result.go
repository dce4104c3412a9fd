package pragmatic

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"saldo/settlement"
)

// Result settles a round with the gross win amount.
func (h *Handler) Result(c *fiber.Ctx) error {
	h.count("result")

	userID := c.FormValue("userId")
	roundID := c.FormValue("roundId")
	amountStr := c.FormValue("amount")
	reference := c.FormValue("reference")

	if userID == "" || roundID == "" || amountStr == "" || reference == "" {
		return respond(c, codeMissingParams, "Missing required parameters", h.currency, 0)
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil || amount.IsNegative() {
		return respond(c, codeInvalidAmount, "Invalid amount", h.currency, 0)
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, codeInternal, "Internal error", h.currency, 0)
	}

	out, err := h.engine.Settle(c.Context(), settlement.SettleRequest{
		Creds:      creds,
		Provider:   providerName,
		RoundID:    roundID,
		ExternalID: reference,
		WinAmount:  amount,
		SettledAt:  time.Now().UTC(),
		Net:        settlement.GrossWin,
	})
	if err != nil {
		if errors.Is(err, settlement.ErrTransactionAlreadySettled) {
			return h.replaySuccess(c, creds, userID)
		}
		code, desc := codeFor(err)
		return respond(c, code, desc, h.currency, 0)
	}

	return respond(c, codeOK, "Success", out.Currency, out.Balance.InexactFloat64())
}
