package playstar

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"saldo/settlement"
)

func (h *Handler) GetBalance(c *fiber.Ctx) error {
	h.count("getbalance")

	memberID := strings.TrimSpace(c.Query("member_id"))
	if memberID == "" {
		return respond(c, statusInvalidMember, 0)
	}

	creds, err := h.resolve()
	if err != nil {
		return respond(c, statusInternal, 0)
	}

	out, err := h.engine.GetBalance(c.Context(), settlement.BalanceRequest{
		Creds:    creds,
		Provider: providerName,
		PlayID:   memberID,
	})
	if err != nil {
		return respond(c, statusFor(err), 0)
	}

	return respond(c, statusOK, out.Balance.IntPart())
}
