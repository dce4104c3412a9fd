// Package pragmatic adapts the Pragmatic-style form-urlencoded callback API.
// Duplicate bets and repeated results are replayed as success with the
// current balance; the vendor retries until it sees error 0.
package pragmatic

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"saldo/credentials"
	"saldo/metrics"
	"saldo/settlement"
)

const providerName = "pragmatic"

// Vendor error codes.
const (
	codeOK            = 0
	codeMissingParams = 1001
	codeUserNotFound  = 2001
	codeUserInactive  = 2002
	codeInsufficient  = 3001
	codeInvalidAmount = 3002
	codeBetNotFound   = 3501
	codeInternal      = 5001
)

type Handler struct {
	engine      *settlement.Engine
	creds       *credentials.Registry
	log         *logrus.Logger
	currency    string
	environment string
}

func New(engine *settlement.Engine, creds *credentials.Registry, log *logrus.Logger, currency, environment string) *Handler {
	return &Handler{
		engine:      engine,
		creds:       creds,
		log:         log,
		currency:    currency,
		environment: environment,
	}
}

func (h *Handler) resolve() (credentials.Credentials, error) {
	return h.creds.Resolve(providerName, h.currency, h.environment)
}

func respond(c *fiber.Ctx, code int, description, currency string, cash float64) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"currency":    currency,
		"cash":        cash,
		"bonus":       0.0,
		"usedPromo":   0,
		"error":       code,
		"description": description,
	})
}

func codeFor(err error) (int, string) {
	switch {
	case errors.Is(err, settlement.ErrPlayerNotFound):
		return codeUserNotFound, "User not found"
	case errors.Is(err, settlement.ErrTransactionNotFound):
		return codeBetNotFound, "Bet not found"
	case errors.Is(err, settlement.ErrInsufficientFunds):
		return codeInsufficient, "Insufficient funds"
	case errors.Is(err, settlement.ErrInvalidRequest):
		return codeInvalidAmount, "Invalid request"
	default:
		return codeInternal, "Internal error"
	}
}

// replaySuccess answers an idempotent retry: same error 0, current balance.
func (h *Handler) replaySuccess(c *fiber.Ctx, creds credentials.Credentials, userID string) error {
	out, err := h.engine.GetBalance(c.Context(), settlement.BalanceRequest{
		Creds:    creds,
		Provider: providerName,
		PlayID:   userID,
	})
	if err != nil {
		code, desc := codeFor(err)
		return respond(c, code, desc, h.currency, 0)
	}
	return respond(c, codeOK, "Success", out.Currency, out.Balance.InexactFloat64())
}

func (h *Handler) count(endpoint string) {
	metrics.CallbackRequests.WithLabelValues(providerName, endpoint).Inc()
}
