package sbo

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"saldo/models"
	"saldo/settlement"
)

type cancelRequest struct {
	CompanyKey   string                `json:"CompanyKey"`
	Username     string                `json:"Username"`
	TransferCode models.FlexibleString `json:"TransferCode"`
}

// Cancel voids a running bet order. The vendor never cancels a settled
// order through this endpoint; that is Rollback's contract.
func (h *Handler) Cancel(c *fiber.Ctx) error {
	return h.cancel(c, "cancel", false)
}

// Rollback reverts a settled order back to net zero before resettlement.
func (h *Handler) Rollback(c *fiber.Ctx) error {
	return h.cancel(c, "rollback", true)
}

func (h *Handler) cancel(c *fiber.Ctx, endpoint string, allowSettled bool) error {
	h.count(endpoint)

	var req cancelRequest
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

	out, err := h.engine.Cancel(c.Context(), settlement.CancelRequest{
		Creds:        creds,
		Provider:     providerName,
		RoundID:      transferCode,
		At:           time.Now().UTC(),
		AllowSettled: allowSettled,
	})
	if err != nil {
		return respond(c, codeFor(err), req.Username, 0)
	}

	return respond(c, codeOK, req.Username, out.Balance.InexactFloat64())
}
