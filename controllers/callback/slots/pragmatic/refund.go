package pragmatic

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"saldo/settlement"
)

// Refund voids a bet. Repeats and refunds of unknown references answer
// success; the vendor retries refunds indefinitely otherwise.
func (h *Handler) Refund(c *fiber.Ctx) error {
	h.count("refund")

	userID := c.FormValue("userId")
	roundID := c.FormValue("roundId")
	if userID == "" || roundID == "" {
		return respond(c, codeMissingParams, "Missing required parameters", h.currency, 0)
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, codeInternal, "Internal error", h.currency, 0)
	}

	out, err := h.engine.Cancel(c.Context(), settlement.CancelRequest{
		Creds:    creds,
		Provider: providerName,
		RoundID:  roundID,
		At:       time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, settlement.ErrTransactionAlreadySettled) ||
			errors.Is(err, settlement.ErrTransactionNotFound) {
			return h.replaySuccess(c, creds, userID)
		}
		code, desc := codeFor(err)
		return respond(c, code, desc, h.currency, 0)
	}

	return respond(c, codeOK, "Success", out.Currency, out.Balance.InexactFloat64())
}
