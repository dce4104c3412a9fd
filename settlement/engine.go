// Package settlement is the shared transaction-settlement core. Every
// provider adapter normalizes its wire format into the request structs here;
// the engine runs the canonical sequence (player lookup, idempotency check,
// wallet call, ledger write) and hands back one outcome or one typed failure.
//
// The engine holds no mutable state of its own. Exactly-once bet semantics
// rest on the (provider, external_id) unique index behind
// TransactionStore.Insert; the existence pre-check only saves a wallet call
// on an obviously duplicate request.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"saldo/credentials"
	"saldo/metrics"
	"saldo/models"
	"saldo/store"
	"saldo/wallet"
)

// NetFunc computes the stored net result from the bet amount and the amount
// the vendor sent at settlement. Vendors disagree on whether that amount is
// gross or already net, so the formula travels with the adapter.
type NetFunc func(bet, win decimal.Decimal) decimal.Decimal

// GrossWin is for vendors that send the gross win: net = win - bet.
func GrossWin(bet, win decimal.Decimal) decimal.Decimal {
	return win.Sub(bet)
}

// NetWinlose is for vendors that send the signed net result as-is.
func NetWinlose(_, win decimal.Decimal) decimal.Decimal {
	return win
}

// Outcome is the uniform success payload: the balance after the operation in
// the player's currency. Adapters apply their own conversion factor.
type Outcome struct {
	Balance  decimal.Decimal
	Currency string
}

type BalanceRequest struct {
	Creds    credentials.Credentials
	Provider string
	PlayID   string
}

type BetRequest struct {
	Creds      credentials.Credentials
	Provider   string
	PlayID     string
	ExternalID string
	RoundID    string
	GameCode   string
	Amount     decimal.Decimal
	BetAt      time.Time
	Payload    []byte
}

// SettleRequest carries the vendor's settlement figure as-is; Net tells the
// engine how to read it. The gross amount credited by the wallet is derived
// as bet + net, so a total loss credits nothing.
type SettleRequest struct {
	Creds      credentials.Credentials
	Provider   string
	RoundID    string
	ExternalID string
	WinAmount  decimal.Decimal
	SettledAt  time.Time
	Net        NetFunc
}

// BetSettleRequest is the combined form for vendors whose protocol reports
// bet and result in a single call.
type BetSettleRequest struct {
	Creds      credentials.Credentials
	Provider   string
	PlayID     string
	ExternalID string
	RoundID    string
	GameCode   string
	BetAmount  decimal.Decimal
	WinAmount  decimal.Decimal
	At         time.Time
	Net        NetFunc
	Payload    []byte
}

type BonusRequest struct {
	Creds      credentials.Credentials
	Provider   string
	PlayID     string
	ExternalID string
	RoundID    string
	GameCode   string
	Amount     decimal.Decimal
	At         time.Time
}

type CancelRequest struct {
	Creds    credentials.Credentials
	Provider string
	RoundID  string
	At       time.Time

	// AllowSettled permits voiding a round the vendor already settled.
	// Most vendor contracts forbid it; their adapters leave this false.
	AllowSettled bool
}

// Engine enforces the lifecycle of a wagering action against the wallet and
// the local ledger, independent of vendor wire format.
type Engine struct {
	players store.PlayerStore
	txns    store.TransactionStore
	wallet  wallet.Gateway
	log     *logrus.Logger
}

func NewEngine(players store.PlayerStore, txns store.TransactionStore, gw wallet.Gateway, log *logrus.Logger) *Engine {
	return &Engine{players: players, txns: txns, wallet: gw, log: log}
}

// GetBalance returns the wallet balance for an existing player.
func (e *Engine) GetBalance(ctx context.Context, req BalanceRequest) (Outcome, error) {
	if strings.TrimSpace(req.PlayID) == "" || strings.TrimSpace(req.Provider) == "" {
		return e.fail("balance", ErrInvalidRequest)
	}

	player, err := e.findPlayer(ctx, req.Provider, req.PlayID)
	if err != nil {
		return e.fail("balance", err)
	}

	res, err := e.wallet.Balance(ctx, req.Creds, req.PlayID, player.Currency)
	if werr := walletErr(res, err); werr != nil {
		return e.fail("balance", werr)
	}

	return e.ok("balance", Outcome{Balance: res.Credit, Currency: player.Currency})
}

// PlaceBet debits the stake and opens a round. All read-only checks pass
// before the wallet call; the local row is written only after the wallet
// accepts, so a crash anywhere in between leaves either nothing or a
// wallet-side record reconcilable by the idempotency key.
func (e *Engine) PlaceBet(ctx context.Context, req BetRequest) (Outcome, error) {
	if err := validateBet(req.PlayID, req.ExternalID, req.Amount); err != nil {
		return e.fail("bet", err)
	}

	player, err := e.findPlayer(ctx, req.Provider, req.PlayID)
	if err != nil {
		return e.fail("bet", err)
	}

	if err := e.rejectDuplicate(ctx, req.Provider, req.ExternalID); err != nil {
		return e.fail("bet", err)
	}

	bal, err := e.wallet.Balance(ctx, req.Creds, req.PlayID, player.Currency)
	if werr := walletErr(bal, err); werr != nil {
		return e.fail("bet", werr)
	}
	if bal.Credit.LessThan(req.Amount) {
		return e.fail("bet", ErrInsufficientFunds)
	}

	res, err := e.wallet.Wager(ctx, req.Creds, wallet.TransferRequest{
		PlayID:        req.PlayID,
		Currency:      player.Currency,
		TransactionID: req.ExternalID,
		Amount:        req.Amount,
		Report:        wallet.Report{GameCode: req.GameCode, RoundID: req.RoundID, At: req.BetAt},
	})
	if werr := walletErr(res, err); werr != nil {
		return e.fail("bet", werr)
	}

	txn := &models.ProviderTransaction{
		Provider:   req.Provider,
		ExternalID: req.ExternalID,
		RoundID:    req.RoundID,
		PlayID:     req.PlayID,
		GameCode:   req.GameCode,
		BetAmount:  req.Amount,
		BetValid:   req.Amount,
		Currency:   player.Currency,
		Status:     models.TxStatusOpen,
		BetAt:      req.BetAt,
		Payload:    req.Payload,
	}
	if err := e.txns.Insert(ctx, txn); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost the race after the wallet accepted the wager. The wallet
			// dedupes on the same idempotency key, so the losing request did
			// not double-debit; reject it like any other duplicate.
			e.log.WithFields(logrus.Fields{
				"provider":    req.Provider,
				"external_id": req.ExternalID,
			}).Warn("duplicate bet detected at insert")
			return e.fail("bet", ErrTransactionAlreadyExists)
		}
		return e.fail("bet", err)
	}

	return e.ok("bet", Outcome{Balance: res.CreditAfter, Currency: player.Currency})
}

// Settle closes an open round exactly once. The local row is mutated only
// after the wallet accepted the payout.
func (e *Engine) Settle(ctx context.Context, req SettleRequest) (Outcome, error) {
	if strings.TrimSpace(req.RoundID) == "" || req.Net == nil {
		return e.fail("settle", ErrInvalidRequest)
	}

	txn, err := e.txns.FindByRound(ctx, req.Provider, req.RoundID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return e.fail("settle", fmt.Errorf("%w: round %s", ErrTransactionNotFound, req.RoundID))
		}
		return e.fail("settle", err)
	}
	if !txn.Open() {
		return e.fail("settle", ErrTransactionAlreadySettled)
	}

	net := req.Net(txn.BetAmount, req.WinAmount)
	payout := txn.BetAmount.Add(net)
	if payout.IsNegative() {
		return e.fail("settle", fmt.Errorf("%w: settlement below total loss", ErrInvalidRequest))
	}

	externalID := req.ExternalID
	if externalID == "" {
		externalID = txn.ExternalID
	}

	res, err := e.wallet.Payout(ctx, req.Creds, wallet.TransferRequest{
		PlayID:        txn.PlayID,
		Currency:      txn.Currency,
		TransactionID: externalID,
		Amount:        payout,
		Report:        wallet.Report{GameCode: txn.GameCode, RoundID: txn.RoundID, At: req.SettledAt},
	})
	if werr := walletErr(res, err); werr != nil {
		return e.fail("settle", werr)
	}

	err = e.txns.UpdateSettlement(ctx, req.Provider, txn.ExternalID, store.Settlement{
		WinAmount:  payout,
		BetWinlose: net,
		Status:     models.TxStatusSettled,
		SettledAt:  req.SettledAt,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The open row vanished between read and write: a concurrent
			// settle won. The write-once guard keeps this a rejection, not a
			// double credit on the local ledger.
			return e.fail("settle", ErrTransactionAlreadySettled)
		}
		return e.fail("settle", err)
	}

	return e.ok("settle", Outcome{Balance: res.CreditAfter, Currency: txn.Currency})
}

// PlaceAndSettle handles vendors that report a finished round in one call:
// one wallet round-trip, one already-terminal ledger row.
func (e *Engine) PlaceAndSettle(ctx context.Context, req BetSettleRequest) (Outcome, error) {
	if err := validateBet(req.PlayID, req.ExternalID, req.BetAmount); err != nil {
		return e.fail("bet_settle", err)
	}
	if req.Net == nil {
		return e.fail("bet_settle", ErrInvalidRequest)
	}
	net := req.Net(req.BetAmount, req.WinAmount)
	payout := req.BetAmount.Add(net)
	if payout.IsNegative() {
		return e.fail("bet_settle", fmt.Errorf("%w: settlement below total loss", ErrInvalidRequest))
	}

	player, err := e.findPlayer(ctx, req.Provider, req.PlayID)
	if err != nil {
		return e.fail("bet_settle", err)
	}

	if err := e.rejectDuplicate(ctx, req.Provider, req.ExternalID); err != nil {
		return e.fail("bet_settle", err)
	}

	bal, err := e.wallet.Balance(ctx, req.Creds, req.PlayID, player.Currency)
	if werr := walletErr(bal, err); werr != nil {
		return e.fail("bet_settle", werr)
	}
	if bal.Credit.LessThan(req.BetAmount) {
		return e.fail("bet_settle", ErrInsufficientFunds)
	}

	res, err := e.wallet.WagerAndPayout(ctx, req.Creds, wallet.TransferRequest{
		PlayID:        req.PlayID,
		Currency:      player.Currency,
		TransactionID: req.ExternalID,
		Amount:        req.BetAmount,
		WinAmount:     payout,
		Report:        wallet.Report{GameCode: req.GameCode, RoundID: req.RoundID, At: req.At},
	})
	if werr := walletErr(res, err); werr != nil {
		return e.fail("bet_settle", werr)
	}

	settledAt := req.At
	txn := &models.ProviderTransaction{
		Provider:   req.Provider,
		ExternalID: req.ExternalID,
		RoundID:    req.RoundID,
		PlayID:     req.PlayID,
		GameCode:   req.GameCode,
		BetAmount:  req.BetAmount,
		BetValid:   req.BetAmount,
		WinAmount:  payout,
		BetWinlose: net,
		Currency:   player.Currency,
		Status:     models.TxStatusSettled,
		BetAt:      req.At,
		SettledAt:  &settledAt,
		Payload:    req.Payload,
	}
	if err := e.txns.Insert(ctx, txn); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return e.fail("bet_settle", ErrTransactionAlreadyExists)
		}
		return e.fail("bet_settle", err)
	}

	return e.ok("bet_settle", Outcome{Balance: res.CreditAfter, Currency: player.Currency})
}

// Bonus credits a standalone award, independent of any bet. Same idempotency
// protocol as PlaceBet; the stored row is terminal with a zero stake.
func (e *Engine) Bonus(ctx context.Context, req BonusRequest) (Outcome, error) {
	if strings.TrimSpace(req.PlayID) == "" || strings.TrimSpace(req.ExternalID) == "" || req.Amount.IsNegative() {
		return e.fail("bonus", ErrInvalidRequest)
	}

	player, err := e.findPlayer(ctx, req.Provider, req.PlayID)
	if err != nil {
		return e.fail("bonus", err)
	}

	if err := e.rejectDuplicate(ctx, req.Provider, req.ExternalID); err != nil {
		return e.fail("bonus", err)
	}

	res, err := e.wallet.Bonus(ctx, req.Creds, wallet.TransferRequest{
		PlayID:        req.PlayID,
		Currency:      player.Currency,
		TransactionID: req.ExternalID,
		Amount:        req.Amount,
		Report:        wallet.Report{GameCode: req.GameCode, RoundID: req.RoundID, At: req.At},
	})
	if werr := walletErr(res, err); werr != nil {
		return e.fail("bonus", werr)
	}

	settledAt := req.At
	txn := &models.ProviderTransaction{
		Provider:   req.Provider,
		ExternalID: req.ExternalID,
		RoundID:    req.RoundID,
		PlayID:     req.PlayID,
		GameCode:   req.GameCode,
		BetAmount:  decimal.Zero,
		WinAmount:  req.Amount,
		BetWinlose: req.Amount,
		Currency:   player.Currency,
		Status:     models.TxStatusSettled,
		BetAt:      req.At,
		SettledAt:  &settledAt,
	}
	if err := e.txns.Insert(ctx, txn); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return e.fail("bonus", ErrTransactionAlreadyExists)
		}
		return e.fail("bonus", err)
	}

	return e.ok("bonus", Outcome{Balance: res.CreditAfter, Currency: player.Currency})
}

// Cancel voids a round, refunding the original stake. Whether a settled
// round may still be voided is the vendor's contract, carried in the request.
func (e *Engine) Cancel(ctx context.Context, req CancelRequest) (Outcome, error) {
	if strings.TrimSpace(req.RoundID) == "" {
		return e.fail("cancel", ErrInvalidRequest)
	}

	txn, err := e.txns.FindByRound(ctx, req.Provider, req.RoundID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return e.fail("cancel", fmt.Errorf("%w: round %s", ErrTransactionNotFound, req.RoundID))
		}
		return e.fail("cancel", err)
	}

	if txn.Status == models.TxStatusVoided {
		return e.fail("cancel", ErrTransactionAlreadySettled)
	}
	if txn.Status == models.TxStatusSettled && !req.AllowSettled {
		return e.fail("cancel", ErrTransactionAlreadySettled)
	}

	res, err := e.wallet.Cancel(ctx, req.Creds, wallet.TransferRequest{
		PlayID:        txn.PlayID,
		Currency:      txn.Currency,
		TransactionID: txn.ExternalID,
		Amount:        txn.BetAmount.Neg(),
		Report:        wallet.Report{GameCode: txn.GameCode, RoundID: txn.RoundID, At: req.At},
	})
	if werr := walletErr(res, err); werr != nil {
		return e.fail("cancel", werr)
	}

	if err := e.txns.MarkVoided(ctx, req.Provider, txn.ExternalID, req.At); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return e.fail("cancel", ErrTransactionAlreadySettled)
		}
		return e.fail("cancel", err)
	}

	return e.ok("cancel", Outcome{Balance: res.CreditAfter, Currency: txn.Currency})
}

func (e *Engine) findPlayer(ctx context.Context, provider, playID string) (*models.Player, error) {
	player, err := e.players.Find(ctx, provider, playID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", ErrPlayerNotFound, provider, playID)
		}
		return nil, err
	}
	return player, nil
}

// rejectDuplicate is the fast-path existence check. The authoritative guard
// is the unique index hit by Insert.
func (e *Engine) rejectDuplicate(ctx context.Context, provider, externalID string) error {
	_, err := e.txns.FindByExternalID(ctx, provider, externalID)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrTransactionAlreadyExists, externalID)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

func validateBet(playID, externalID string, amount decimal.Decimal) error {
	if strings.TrimSpace(playID) == "" || strings.TrimSpace(externalID) == "" {
		return ErrInvalidRequest
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: negative amount", ErrInvalidRequest)
	}
	return nil
}

// walletErr folds a transport error and a non-success status into one
// uniform failure. A timeout is never success.
func walletErr(res wallet.Result, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWallet, err)
	}
	if !res.OK() {
		return fmt.Errorf("%w: status %d", ErrWallet, res.StatusCode)
	}
	return nil
}

func (e *Engine) ok(op string, out Outcome) (Outcome, error) {
	metrics.SettlementOutcomes.WithLabelValues(op, "ok").Inc()
	return out, nil
}

func (e *Engine) fail(op string, err error) (Outcome, error) {
	metrics.SettlementOutcomes.WithLabelValues(op, outcomeLabel(err)).Inc()
	return Outcome{}, err
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, ErrTransactionNotFound):
		return "transaction_not_found"
	case errors.Is(err, ErrTransactionAlreadyExists):
		return "duplicate"
	case errors.Is(err, ErrTransactionAlreadySettled):
		return "already_settled"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrWallet):
		return "wallet_error"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return "internal"
	}
}
