package sbo

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"saldo/models"
	"saldo/settlement"
)

type settleRequest struct {
	CompanyKey   string                `json:"CompanyKey"`
	Username     string                `json:"Username"`
	TransferCode models.FlexibleString `json:"TransferCode"`
	WinLoss      float64               `json:"WinLoss"`
	ResultType   int                   `json:"ResultType"`
	ResultTime   string                `json:"ResultTime"`
}

// Settle closes a bet order. WinLoss is the signed net result; a full loss
// arrives as the negated stake.
func (h *Handler) Settle(c *fiber.Ctx) error {
	h.count("settle")

	var req settleRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, codeInvalidRequest, "", 0)
	}

	req.Username = strings.TrimSpace(req.Username)
	transferCode := strings.TrimSpace(req.TransferCode.String())
	if req.Username == "" || transferCode == "" {
		return respond(c, codeInvalidRequest, req.Username, 0)
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, codeInternal, req.Username, 0)
	}

	out, err := h.engine.Settle(c.Context(), settlement.SettleRequest{
		Creds:     creds,
		Provider:  providerName,
		RoundID:   transferCode,
		WinAmount: decimal.NewFromFloat(req.WinLoss),
		SettledAt: parsedTime(req.ResultTime),
		Net:       settlement.NetWinlose,
	})
	if err != nil {
		return respond(c, codeFor(err), req.Username, 0)
	}

	return respond(c, codeOK, req.Username, out.Balance.InexactFloat64())
}
