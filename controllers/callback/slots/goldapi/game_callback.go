package goldapi

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"saldo/models"
	"saldo/settlement"
)

type slotDetail struct {
	ProviderCode    string                `json:"provider_code"`
	GameCode        models.FlexibleString `json:"game_code"`
	RoundID         models.FlexibleString `json:"round_id"`
	IsRoundFinished bool                  `json:"is_round_finished"`
	Type            string                `json:"type"`

	Bet models.FlexibleString `json:"bet"`
	Win models.FlexibleString `json:"win"`

	TxnID   models.FlexibleString `json:"txn_id"`
	TxnType string                `json:"txn_type"`

	CreatedAtRaw string `json:"created_at"`
}

type gameCallback struct {
	AgentCode string     `json:"agent_code"`
	UserCode  string     `json:"user_code"`
	GameType  string     `json:"game_type"`
	Slot      slotDetail `json:"slot"`
}

// GameCallback processes one round report. An unfinished round only places
// the wager; a finished round settles the round it opened earlier, or runs
// bet and win in a single wallet round-trip when the round arrives complete.
// A txn_type of "refund" voids the referenced round instead.
func (h *Handler) GameCallback(c *fiber.Ctx) error {
	h.count("game_callback")

	var req gameCallback
	if err := c.BodyParser(&req); err != nil {
		return failure(c, "INVALID_JSON")
	}

	req.UserCode = strings.TrimSpace(req.UserCode)
	txnID := strings.TrimSpace(req.Slot.TxnID.String())
	roundID := strings.TrimSpace(req.Slot.RoundID.String())
	if req.UserCode == "" || txnID == "" || roundID == "" {
		return failure(c, "INVALID_PARAMETER")
	}

	creds, err := h.resolve()
	if err != nil {
		return failure(c, "INTERNAL_ERROR")
	}

	now := time.Now().UTC()

	if strings.EqualFold(req.Slot.TxnType, "refund") {
		out, err := h.engine.Cancel(c.Context(), settlement.CancelRequest{
			Creds:    creds,
			Provider: providerName,
			RoundID:  roundID,
			At:       now,
			// The aggregator refunds rounds it already reported finished, so
			// voiding a settled round is part of its contract.
			AllowSettled: true,
		})
		if err != nil {
			return failure(c, messageFor(err))
		}
		return success(c, out.Balance.IntPart())
	}

	bet, err := req.Slot.Bet.ToDecimal()
	if err != nil {
		return failure(c, "INVALID_PARAMETER")
	}
	win, err := req.Slot.Win.ToDecimal()
	if err != nil {
		return failure(c, "INVALID_PARAMETER")
	}

	payload, _ := json.Marshal(req.Slot)

	if !req.Slot.IsRoundFinished {
		out, err := h.engine.PlaceBet(c.Context(), settlement.BetRequest{
			Creds:      creds,
			Provider:   providerName,
			PlayID:     req.UserCode,
			ExternalID: txnID,
			RoundID:    roundID,
			GameCode:   req.Slot.GameCode.String(),
			Amount:     bet,
			BetAt:      now,
			Payload:    payload,
		})
		if err != nil {
			return failure(c, messageFor(err))
		}
		return success(c, out.Balance.IntPart())
	}

	// A finished round either closes the open round from an earlier
	// callback or, when this is the first report, runs in one shot.
	out, err := h.engine.Settle(c.Context(), settlement.SettleRequest{
		Creds:      creds,
		Provider:   providerName,
		RoundID:    roundID,
		ExternalID: txnID,
		WinAmount:  win,
		SettledAt:  now,
		Net:        settlement.GrossWin,
	})
	if errors.Is(err, settlement.ErrTransactionNotFound) {
		out, err = h.engine.PlaceAndSettle(c.Context(), settlement.BetSettleRequest{
			Creds:      creds,
			Provider:   providerName,
			PlayID:     req.UserCode,
			ExternalID: txnID,
			RoundID:    roundID,
			GameCode:   req.Slot.GameCode.String(),
			BetAmount:  bet,
			WinAmount:  win,
			At:         now,
			Net:        settlement.GrossWin,
			Payload:    payload,
		})
	}
	if err != nil {
		return failure(c, messageFor(err))
	}

	return success(c, out.Balance.IntPart())
}
