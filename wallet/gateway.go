// Package wallet talks to the internal ledger service of record. Everything
// money-moving in the gateway goes through the Gateway interface; decorators
// wrap it for logging and metrics.
package wallet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"saldo/credentials"
)

// StatusSuccess is the single success sentinel of the wallet RPC. Every other
// status code is a failure and must not be interpreted as money moved.
const StatusSuccess = 2100

// Result is the structured wallet response. Credit is the balance at read
// time, CreditAfter the balance after a mutation.
type Result struct {
	StatusCode  int             `json:"status_code"`
	Credit      decimal.Decimal `json:"credit"`
	CreditAfter decimal.Decimal `json:"credit_after"`
}

// OK reports whether the wallet accepted the call.
func (r Result) OK() bool {
	return r.StatusCode == StatusSuccess
}

// Report describes a ledger entry for audit: which game, which round, when.
type Report struct {
	GameCode string    `json:"game_code"`
	RoundID  string    `json:"round_id"`
	At       time.Time `json:"at"`
}

// TransferRequest carries one money movement against a player account.
// TransactionID is the provider-side idempotency key, forwarded so the wallet
// keeps its own audit trail keyed the same way.
type TransferRequest struct {
	PlayID        string          `json:"play_id"`
	Currency      string          `json:"currency"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	WinAmount     decimal.Decimal `json:"win_amount,omitempty"`
	Report        Report          `json:"report"`
}

// Gateway is the wallet RPC surface. A transport error and a non-success
// status code are equivalent failures for callers; neither implies the
// movement did not happen, reconciliation is operational tooling's job.
type Gateway interface {
	Balance(ctx context.Context, creds credentials.Credentials, playID, currency string) (Result, error)
	Wager(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error)
	Payout(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error)
	WagerAndPayout(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error)
	Bonus(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error)
	Cancel(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error)
}
