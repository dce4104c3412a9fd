package pragmatic

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"saldo/settlement"
)

func (h *Handler) Bet(c *fiber.Ctx) error {
	h.count("bet")

	userID := c.FormValue("userId")
	gameID := c.FormValue("gameId")
	roundID := c.FormValue("roundId")
	amountStr := c.FormValue("amount")
	reference := c.FormValue("reference")

	if userID == "" || gameID == "" || roundID == "" || amountStr == "" || reference == "" {
		return respond(c, codeMissingParams, "Missing required parameters", h.currency, 0)
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil || amount.IsNegative() {
		return respond(c, codeInvalidAmount, "Invalid amount", h.currency, 0)
	}

	betAt := time.Now().UTC()
	if tsMS, err := strconv.ParseInt(c.FormValue("timestamp"), 10, 64); err == nil && tsMS > 0 {
		betAt = time.UnixMilli(tsMS).UTC()
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, codeInternal, "Internal error", h.currency, 0)
	}

	out, err := h.engine.PlaceBet(c.Context(), settlement.BetRequest{
		Creds:      creds,
		Provider:   providerName,
		PlayID:     userID,
		ExternalID: reference,
		RoundID:    roundID,
		GameCode:   gameID,
		Amount:     amount,
		BetAt:      betAt,
	})
	if err != nil {
		if errors.Is(err, settlement.ErrTransactionAlreadyExists) {
			return h.replaySuccess(c, creds, userID)
		}
		code, desc := codeFor(err)
		return respond(c, code, desc, h.currency, 0)
	}

	return respond(c, codeOK, "Success", out.Currency, out.Balance.InexactFloat64())
}
