package wallet

import (
	"context"

	"github.com/sirupsen/logrus"

	"saldo/credentials"
)

// loggingGateway wraps a Gateway and logs every call with request-scoped
// fields. Composition, not subtyping: the inner gateway never knows.
type loggingGateway struct {
	next Gateway
	log  *logrus.Logger
}

// WithLogging decorates gw so every wallet call is logged with its outcome.
func WithLogging(gw Gateway, log *logrus.Logger) Gateway {
	return &loggingGateway{next: gw, log: log}
}

func (l *loggingGateway) Balance(ctx context.Context, creds credentials.Credentials, playID, currency string) (Result, error) {
	res, err := l.next.Balance(ctx, creds, playID, currency)
	l.report("balance", creds, playID, "", res, err)
	return res, err
}

func (l *loggingGateway) Wager(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	res, err := l.next.Wager(ctx, creds, req)
	l.report("wager", creds, req.PlayID, req.TransactionID, res, err)
	return res, err
}

func (l *loggingGateway) Payout(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	res, err := l.next.Payout(ctx, creds, req)
	l.report("payout", creds, req.PlayID, req.TransactionID, res, err)
	return res, err
}

func (l *loggingGateway) WagerAndPayout(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	res, err := l.next.WagerAndPayout(ctx, creds, req)
	l.report("wager_payout", creds, req.PlayID, req.TransactionID, res, err)
	return res, err
}

func (l *loggingGateway) Bonus(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	res, err := l.next.Bonus(ctx, creds, req)
	l.report("bonus", creds, req.PlayID, req.TransactionID, res, err)
	return res, err
}

func (l *loggingGateway) Cancel(ctx context.Context, creds credentials.Credentials, req TransferRequest) (Result, error) {
	res, err := l.next.Cancel(ctx, creds, req)
	l.report("cancel", creds, req.PlayID, req.TransactionID, res, err)
	return res, err
}

func (l *loggingGateway) report(method string, creds credentials.Credentials, playID, txnID string, res Result, err error) {
	entry := l.log.WithFields(logrus.Fields{
		"component":      "wallet",
		"method":         method,
		"provider":       creds.Provider,
		"play_id":        playID,
		"transaction_id": txnID,
	})

	switch {
	case err != nil:
		entry.WithError(err).Warn("wallet call failed")
	case !res.OK():
		entry.WithField("status_code", res.StatusCode).Warn("wallet rejected call")
	default:
		entry.WithField("credit_after", res.CreditAfter.String()).Debug("wallet call ok")
	}
}
