package goldapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"saldo/settlement"
)

type balanceRequest struct {
	AgentCode string `json:"agent_code"`
	UserCode  string `json:"user_code"`
}

func (h *Handler) UserBalance(c *fiber.Ctx) error {
	h.count("user_balance")

	var req balanceRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, "INVALID_JSON")
	}

	req.UserCode = strings.TrimSpace(req.UserCode)
	if req.UserCode == "" {
		return failure(c, "INVALID_PARAMETER")
	}

	creds, err := h.resolve()
	if err != nil {
		return failure(c, "INTERNAL_ERROR")
	}

	out, err := h.engine.GetBalance(c.Context(), settlement.BalanceRequest{
		Creds:    creds,
		Provider: providerName,
		PlayID:   req.UserCode,
	})
	if err != nil {
		return failure(c, messageFor(err))
	}

	return success(c, out.Balance.IntPart())
}
