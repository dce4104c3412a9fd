package sbo

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"saldo/models"
	"saldo/settlement"
)

type bonusRequest struct {
	CompanyKey   string                `json:"CompanyKey"`
	Username     string                `json:"Username"`
	Amount       float64               `json:"Amount"`
	TransferCode models.FlexibleString `json:"TransferCode"`
	BonusTime    string                `json:"BonusTime"`
}

// Bonus credits a promotion, independent of any bet order.
func (h *Handler) Bonus(c *fiber.Ctx) error {
	h.count("bonus")

	var req bonusRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, codeInvalidRequest, "", 0)
	}

	req.Username = strings.TrimSpace(req.Username)
	transferCode := strings.TrimSpace(req.TransferCode.String())
	if req.Username == "" || transferCode == "" || req.Amount <= 0 {
		return respond(c, codeInvalidRequest, req.Username, 0)
	}

	at := time.Now().UTC()
	if req.BonusTime != "" {
		at = parsedTime(req.BonusTime)
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, codeInternal, req.Username, 0)
	}

	out, err := h.engine.Bonus(c.Context(), settlement.BonusRequest{
		Creds:      creds,
		Provider:   providerName,
		PlayID:     req.Username,
		ExternalID: transferCode,
		RoundID:    transferCode,
		Amount:     decimal.NewFromFloat(req.Amount),
		At:         at,
	})
	if err != nil {
		return respond(c, codeFor(err), req.Username, 0)
	}

	return respond(c, codeOK, req.Username, out.Balance.InexactFloat64())
}
