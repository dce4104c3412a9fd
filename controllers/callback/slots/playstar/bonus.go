package playstar

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"saldo/settlement"
)

// BonusAward credits a standalone promotional win.
func (h *Handler) BonusAward(c *fiber.Ctx) error {
	h.count("bonusaward")

	txnID := strings.TrimSpace(c.Query("txn_id"))
	if txnID == "" {
		return respond(c, statusInvalidTxn, 0)
	}

	memberID := c.Query("member_id")
	if memberID == "" {
		return respond(c, statusInvalidMember, 0)
	}

	amount, err := strconv.ParseInt(c.Query("bonus_win"), 10, 64)
	if err != nil || amount <= 0 {
		return respond(c, statusInternal, 0)
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, statusInternal, 0)
	}

	out, err := h.engine.Bonus(c.Context(), settlement.BonusRequest{
		Creds:      creds,
		Provider:   providerName,
		PlayID:     memberID,
		ExternalID: txnID,
		GameCode:   c.Query("game_id"),
		Amount:     decimal.NewFromInt(amount),
		At:         time.Now().UTC(),
	})
	if err != nil {
		return respond(c, statusFor(err), 0)
	}

	return respond(c, statusOK, out.Balance.IntPart())
}
