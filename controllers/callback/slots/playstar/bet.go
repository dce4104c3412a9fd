package playstar

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"saldo/settlement"
)

func (h *Handler) Bet(c *fiber.Ctx) error {
	h.count("bet")

	txnID := strings.TrimSpace(c.Query("txn_id"))
	if txnID == "" {
		return respond(c, statusInvalidTxn, 0)
	}

	totalBet, err := strconv.ParseInt(c.Query("total_bet"), 10, 64)
	if err != nil || totalBet <= 0 {
		return respond(c, statusInternal, 0)
	}

	memberID := c.Query("member_id")
	if memberID == "" {
		return respond(c, statusInvalidMember, 0)
	}

	gameID := c.Query("game_id")
	ts, _ := strconv.ParseInt(c.Query("ts"), 10, 64)
	betAt := time.Unix(ts, 0).UTC()
	if ts == 0 {
		betAt = time.Now().UTC()
	}

	roundID := c.Query("round_id")
	if roundID == "" {
		// single-spin games reuse the transaction id as the round
		roundID = txnID
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, statusInternal, 0)
	}

	out, err := h.engine.PlaceBet(c.Context(), settlement.BetRequest{
		Creds:      creds,
		Provider:   providerName,
		PlayID:     memberID,
		ExternalID: txnID,
		RoundID:    roundID,
		GameCode:   gameID,
		Amount:     decimal.NewFromInt(totalBet),
		BetAt:      betAt,
	})
	if err != nil {
		return respond(c, statusFor(err), 0)
	}

	return respond(c, statusOK, out.Balance.IntPart())
}
