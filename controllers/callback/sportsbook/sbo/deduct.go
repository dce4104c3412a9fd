package sbo

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"saldo/helpers"
	"saldo/models"
	"saldo/settlement"
)

type deductRequest struct {
	CompanyKey    string                `json:"CompanyKey"`
	Username      string                `json:"Username"`
	Amount        float64               `json:"Amount"`
	TransferCode  models.FlexibleString `json:"TransferCode"`
	TransactionId models.FlexibleString `json:"TransactionId"`
	BetTime       string                `json:"BetTime"`
	GameId        int                   `json:"GameId"`
	GameTypeName  *string               `json:"GameTypeName"`
	ExtraInfo     map[string]any        `json:"ExtraInfo"`
}

// Deduct places the wager for a bet order. TransferCode identifies the
// order (round); TransactionId, when present, disambiguates partial bets.
func (h *Handler) Deduct(c *fiber.Ctx) error {
	h.count("deduct")

	var req deductRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, codeInvalidRequest, "", 0)
	}

	req.Username = strings.TrimSpace(req.Username)
	transferCode := strings.TrimSpace(req.TransferCode.String())
	if req.Username == "" || transferCode == "" || req.Amount <= 0 {
		return respond(c, codeInvalidRequest, req.Username, 0)
	}

	externalID := strings.TrimSpace(req.TransactionId.String())
	if externalID == "" {
		externalID = transferCode
	}

	gameCode := ""
	if req.GameTypeName != nil {
		gameCode = *req.GameTypeName
	}

	payload, _ := json.Marshal(req.ExtraInfo)

	creds, err := h.resolve()
	if err != nil {
		return respond(c, codeInternal, req.Username, 0)
	}

	out, err := h.engine.PlaceBet(c.Context(), settlement.BetRequest{
		Creds:      creds,
		Provider:   providerName,
		PlayID:     req.Username,
		ExternalID: externalID,
		RoundID:    transferCode,
		GameCode:   gameCode,
		Amount:     decimal.NewFromFloat(req.Amount),
		BetAt:      parsedTime(req.BetTime),
		Payload:    payload,
	})
	if err != nil {
		return respond(c, codeFor(err), req.Username, 0)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ErrorCode":    codeOK,
		"ErrorMessage": messageFor(codeOK),
		"AccountName":  req.Username,
		"BetAmount":    req.Amount,
		"Balance":      helpers.FormatFloat(out.Balance.InexactFloat64(), 2),
	})
}
