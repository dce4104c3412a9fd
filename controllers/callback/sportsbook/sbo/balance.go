package sbo

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"saldo/settlement"
)

type balanceRequest struct {
	CompanyKey string `json:"CompanyKey"`
	Username   string `json:"Username"`
}

func (h *Handler) GetBalance(c *fiber.Ctx) error {
	h.count("getbalance")

	var req balanceRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, codeInvalidRequest, "", 0)
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return respond(c, codeInvalidRequest, "", 0)
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, codeInternal, req.Username, 0)
	}

	out, err := h.engine.GetBalance(c.Context(), settlement.BalanceRequest{
		Creds:    creds,
		Provider: providerName,
		PlayID:   req.Username,
	})
	if err != nil {
		return respond(c, codeFor(err), req.Username, 0)
	}

	return respond(c, codeOK, req.Username, out.Balance.InexactFloat64())
}
