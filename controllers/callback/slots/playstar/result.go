package playstar

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"saldo/settlement"
)

// Result settles a round. Playstar sends the gross total win.
func (h *Handler) Result(c *fiber.Ctx) error {
	h.count("result")

	txnID := strings.TrimSpace(c.Query("txn_id"))
	if txnID == "" {
		return respond(c, statusInvalidTxn, 0)
	}

	totalWin, err := strconv.ParseInt(c.Query("total_win"), 10, 64)
	if err != nil || totalWin < 0 {
		return respond(c, statusInternal, 0)
	}

	roundID := c.Query("round_id")
	if roundID == "" {
		roundID = txnID
	}

	ts, _ := strconv.ParseInt(c.Query("ts"), 10, 64)
	settledAt := time.Unix(ts, 0).UTC()
	if ts == 0 {
		settledAt = time.Now().UTC()
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, statusInternal, 0)
	}

	out, err := h.engine.Settle(c.Context(), settlement.SettleRequest{
		Creds:      creds,
		Provider:   providerName,
		RoundID:    roundID,
		ExternalID: txnID,
		WinAmount:  decimal.NewFromInt(totalWin),
		SettledAt:  settledAt,
		Net:        settlement.GrossWin,
	})
	if err != nil {
		return respond(c, statusFor(err), 0)
	}

	return respond(c, statusOK, out.Balance.IntPart())
}
