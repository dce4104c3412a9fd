// Package playstar adapts the Playstar slots callback API. Amounts are
// integer IDR units, win amounts are gross, and every response is HTTP 200
// with a status_code.
package playstar

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"saldo/credentials"
	"saldo/metrics"
	"saldo/settlement"
)

const providerName = "playstar"

// Vendor status codes.
const (
	statusOK             = 0
	statusInvalidMember  = 1
	statusInvalidTxn     = 2
	statusInsufficient   = 3
	statusDuplicateTxn   = 4
	statusInternal       = 5
	statusAlreadySettled = 6
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

type response struct {
	StatusCode int   `json:"status_code"`
	Balance    int64 `json:"balance,omitempty"`
}

func respond(c *fiber.Ctx, code int, balance int64) error {
	return c.Status(fiber.StatusOK).JSON(response{StatusCode: code, Balance: balance})
}

// statusFor maps every typed engine failure onto a vendor status code. An
// unmapped failure would be a defect, so the default arm stays total.
func statusFor(err error) int {
	switch {
	case errors.Is(err, settlement.ErrPlayerNotFound):
		return statusInvalidMember
	case errors.Is(err, settlement.ErrTransactionNotFound):
		return statusInvalidTxn
	case errors.Is(err, settlement.ErrTransactionAlreadyExists):
		return statusDuplicateTxn
	case errors.Is(err, settlement.ErrTransactionAlreadySettled):
		return statusAlreadySettled
	case errors.Is(err, settlement.ErrInsufficientFunds):
		return statusInsufficient
	case errors.Is(err, settlement.ErrInvalidRequest):
		return statusInvalidTxn
	default:
		// wallet or storage failure
		return statusInternal
	}
}

func (h *Handler) count(endpoint string) {
	metrics.CallbackRequests.WithLabelValues(providerName, endpoint).Inc()
}
