// Package goldapi adapts the aggregator's gold API. game_callback reports
// rounds either in two phases (bet first, win once finished) or in a single
// finished report, flagged by is_round_finished; refunds void the round.
package goldapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"saldo/credentials"
	"saldo/metrics"
	"saldo/settlement"
)

const providerName = "goldapi"

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

func success(c *fiber.Ctx, userBalance int64) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":       1,
		"user_balance": userBalance,
	})
}

func failure(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":       0,
		"user_balance": 0,
		"msg":          msg,
	})
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, settlement.ErrPlayerNotFound):
		return "INVALID_USER"
	case errors.Is(err, settlement.ErrTransactionNotFound):
		return "TRANSACTION_NOT_FOUND"
	case errors.Is(err, settlement.ErrTransactionAlreadyExists):
		return "DUPLICATE_TRANSACTION"
	case errors.Is(err, settlement.ErrTransactionAlreadySettled):
		return "TRANSACTION_ALREADY_SETTLED"
	case errors.Is(err, settlement.ErrInsufficientFunds):
		return "INSUFFICIENT_USER_BALANCE"
	case errors.Is(err, settlement.ErrInvalidRequest):
		return "INVALID_PARAMETER"
	default:
		return "INTERNAL_ERROR"
	}
}

func (h *Handler) count(endpoint string) {
	metrics.CallbackRequests.WithLabelValues(providerName, endpoint).Inc()
}
