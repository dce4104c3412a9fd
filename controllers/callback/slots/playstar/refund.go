package playstar

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"saldo/settlement"
)

// Refund voids an unsettled round, returning the stake.
func (h *Handler) Refund(c *fiber.Ctx) error {
	h.count("refund")

	txnID := strings.TrimSpace(c.Query("txn_id"))
	roundID := c.Query("round_id")
	if roundID == "" {
		roundID = txnID
	}
	if roundID == "" {
		return respond(c, statusInvalidTxn, 0)
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, statusInternal, 0)
	}

	out, err := h.engine.Cancel(c.Context(), settlement.CancelRequest{
		Creds:    creds,
		Provider: providerName,
		RoundID:  roundID,
		At:       time.Now().UTC(),
	})
	if err != nil {
		return respond(c, statusFor(err), 0)
	}

	return respond(c, statusOK, out.Balance.IntPart())
}
