// Package sbo adapts the sportsbook seamless-wallet callbacks. Requests are
// JSON POST bodies keyed by TransferCode; WinLoss at settlement is the
// signed net result, not a gross win.
package sbo

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"saldo/credentials"
	"saldo/helpers"
	"saldo/metrics"
	"saldo/settlement"
)

const providerName = "sbo"

// Vendor error codes.
const (
	codeOK             = 0
	codeMemberNotFound = 1
	codeInvalidRequest = 3
	codeInsufficient   = 5
	codeBetNotFound    = 6
	codeInternal       = 7
	codeAlreadySettled = 2001
	codeDuplicateTxn   = 5003
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

func respond(c *fiber.Ctx, code int, account string, balance float64) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ErrorCode":    code,
		"ErrorMessage": messageFor(code),
		"AccountName":  account,
		"Balance":      helpers.FormatFloat(balance, 2),
	})
}

func messageFor(code int) string {
	switch code {
	case codeOK:
		return "No Error"
	case codeMemberNotFound:
		return "Member not exist"
	case codeInvalidRequest:
		return "Invalid request format"
	case codeInsufficient:
		return "Not enough balance"
	case codeBetNotFound:
		return "Bet not exists"
	case codeAlreadySettled:
		return "Bet Already Settled"
	case codeDuplicateTxn:
		return "Duplicate transaction"
	default:
		return "Internal error"
	}
}

func codeFor(err error) int {
	switch {
	case errors.Is(err, settlement.ErrPlayerNotFound):
		return codeMemberNotFound
	case errors.Is(err, settlement.ErrTransactionNotFound):
		return codeBetNotFound
	case errors.Is(err, settlement.ErrTransactionAlreadyExists):
		return codeDuplicateTxn
	case errors.Is(err, settlement.ErrTransactionAlreadySettled):
		return codeAlreadySettled
	case errors.Is(err, settlement.ErrInsufficientFunds):
		return codeInsufficient
	case errors.Is(err, settlement.ErrInvalidRequest):
		return codeInvalidRequest
	default:
		return codeInternal
	}
}

func parsedTime(s string) time.Time {
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

func (h *Handler) count(endpoint string) {
	metrics.CallbackRequests.WithLabelValues(providerName, endpoint).Inc()
}
